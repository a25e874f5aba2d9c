package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/media"
	"github.com/phanxgames/folio/viewer"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		paths   []string
		dir     string
		showFPS bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a viewer window",
		Example: `  # View two documents
  folio run --doc report.pdf --doc memo.pdf

  # View every PDF in a directory
  folio run --dir ./papers --config folio.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := loadDocuments(cmd.Context(), paths, dir)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return errors.New("no documents: pass --doc or --dir")
			}

			scene := folio.NewScene()
			scene.SetLogger(a.log)
			scene.ClearColor = folio.Color{R: 0.2, G: 0.22, B: 0.25, A: 1}
			v := viewer.New(scene, viewer.OptionsFromConfig(a.cfg, a.log))
			layoutDocuments(v, docs)

			a.log.Info().Int("documents", len(docs)).Msg("viewer started")
			return folio.Run(scene, folio.RunConfig{
				Title:   a.cfg.Window.Title,
				Width:   a.cfg.Window.Width,
				Height:  a.cfg.Window.Height,
				ShowFPS: showFPS,
			})
		},
	}
	cmd.Flags().StringArrayVar(&paths, "doc", nil, "PDF file to open (repeatable)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory of PDF files to open")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show the FPS counter")
	return cmd
}

func newScriptCmd(a *app) *cobra.Command {
	var (
		paths    []string
		fakes    []string
		maxSteps int
		step     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "script <script.json>",
		Short: "Run a JSON input script against a headless viewer",
		Example: `  # Hover a fake 3-page document and click through it
  folio script --fake report=3 steps.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := folio.LoadTestScript(data)
			if err != nil {
				return err
			}

			docs, err := loadDocuments(cmd.Context(), paths, "")
			if err != nil {
				return err
			}
			for _, f := range fakes {
				doc, err := parseFakeDocument(f)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}

			scene := folio.NewScene()
			scene.SetLogger(a.log)
			v := viewer.New(scene, viewer.OptionsFromConfig(a.cfg, a.log))
			nodes := layoutDocuments(v, docs)
			scene.SetTestRunner(runner)
			clicks := 0
			scene.OnClick(func(folio.PointerContext) { clicks++ })

			steps := 0
			for ; steps < maxSteps && !runner.Done(); steps++ {
				scene.Step(step)
			}
			if !runner.Done() {
				return fmt.Errorf("script did not finish within %d steps", maxSteps)
			}
			return printSummary(cmd, v, docs, nodes, steps, clicks)
		},
	}
	cmd.Flags().StringArrayVar(&paths, "doc", nil, "PDF file to load (repeatable)")
	cmd.Flags().StringArrayVar(&fakes, "fake", nil, "fake document as name=pages (repeatable)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10000, "step limit")
	cmd.Flags().DurationVar(&step, "step", time.Second/60, "simulated time per step")
	return cmd
}

func printSummary(cmd *cobra.Command, v *viewer.Viewer, docs []media.Document, nodes []*folio.Node, steps, clicks int) error {
	out := cmd.OutOrStdout()
	res := v.Last()
	fmt.Fprintf(out, "steps: %d\n", steps)
	fmt.Fprintf(out, "clicks: %d\n", clicks)
	fmt.Fprintf(out, "menu: visible=%t target=%d label=%q\n", res.Visible, res.Target, v.Label().Text())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tPAGE\tPAGES\tSTATE")
	for i, n := range nodes {
		state := "open"
		page := "-"
		if n.IsDisposed() {
			state = "removed"
		} else {
			page = fmt.Sprint(v.Pages().Page(n.EntityID()))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", docs[i].Name, page, docs[i].NumPages, state)
	}
	return tw.Flush()
}

func newPagesCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "pages [file.pdf...]",
		Short: "Print the page count of PDF documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := loadDocuments(cmd.Context(), args, dir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range docs {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Name, d.NumPages, d.Path)
			}
			a.log.Debug().Int("documents", len(docs)).Msg("pages counted")
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of PDF files")
	return cmd
}
