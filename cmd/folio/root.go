package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/config"
	"github.com/phanxgames/folio/media"
	"github.com/phanxgames/folio/viewer"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "Shared document viewer with a floating page menu",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides the config file)")
	cmd.AddCommand(newRunCmd(a), newScriptCmd(a), newPagesCmd(a))
	return cmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.log = config.NewLogger(level, cmd.ErrOrStderr())
	return nil
}

// loadDocuments loads PDFs named by paths and every PDF inside dir.
func loadDocuments(ctx context.Context, paths []string, dir string) ([]media.Document, error) {
	var docs []media.Document
	for _, p := range paths {
		doc, err := media.Load(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if dir != "" {
		found, err := media.LoadDirectory(ctx, dir)
		if err != nil && len(found) == 0 {
			return nil, err
		}
		docs = append(docs, found...)
	}
	return docs, nil
}

// parseFakeDocument parses "name=pages" into a document without a backing
// file.
func parseFakeDocument(s string) (media.Document, error) {
	name, pages, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return media.Document{}, fmt.Errorf("fake document %q: want name=pages", s)
	}
	n, err := strconv.Atoi(pages)
	if err != nil || n < 0 {
		return media.Document{}, fmt.Errorf("fake document %q: invalid page count", s)
	}
	return media.Document{Name: name, NumPages: n}, nil
}

// Document layout in the viewer window.
const (
	docWidth  = 200
	docHeight = 280
	docMargin = 40
	docTop    = 80
)

// layoutDocuments adds docs to v in a single row and returns the document
// nodes in order.
func layoutDocuments(v *viewer.Viewer, docs []media.Document) []*folio.Node {
	nodes := make([]*folio.Node, 0, len(docs))
	for i, doc := range docs {
		bounds := folio.Rect{
			X:      float64(docMargin + i*(docWidth+docMargin)),
			Y:      docTop,
			Width:  docWidth,
			Height: docHeight,
		}
		nodes = append(nodes, v.AddDocument(doc, bounds))
	}
	return nodes
}
