// Package viewer assembles a shared document viewer: a folio scene holding
// document nodes, the networked page store, the document resource map, the
// pin permission oracle and the floating page menu that ties them together.
package viewer

import (
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/config"
	"github.com/phanxgames/folio/ecs"
	"github.com/phanxgames/folio/media"
	"github.com/phanxgames/folio/menu"
	"github.com/phanxgames/folio/permission"
)

// Menu layout in local units.
const (
	menuWidth   = 160
	menuHeight  = 28
	buttonSize  = 24
	buttonInset = 2
	menuGap     = 4
)

var (
	menuPanelColor  = folio.Color{R: 0.12, G: 0.12, B: 0.14, A: 0.9}
	menuButtonColor = folio.Color{R: 0.35, G: 0.55, B: 0.9, A: 1}
	documentColor   = folio.Color{R: 0.95, G: 0.95, B: 0.92, A: 1}
	documentText    = folio.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}
)

// Options configures a Viewer.
type Options struct {
	Channel     string
	GracePeriod time.Duration
	FadeIn      time.Duration
	FollowLerp  float64
	Policies    map[string]permission.Policy
	// Participant identifies the local participant. A new ID is generated
	// when zero.
	Participant xid.ID
	Logger      zerolog.Logger
	// OnSync receives every dirty page state flushed at the end of a step.
	OnSync func(ecs.PageChanged)
}

// OptionsFromConfig maps a loaded configuration to viewer options.
func OptionsFromConfig(cfg config.Config, log zerolog.Logger) Options {
	return Options{
		Channel:     cfg.Menu.Channel,
		GracePeriod: cfg.Menu.GracePeriod,
		FadeIn:      cfg.Menu.FadeIn,
		FollowLerp:  cfg.Menu.FollowLerp,
		Policies:    cfg.Permissions,
		Logger:      log,
	}
}

// Viewer owns a scene with one page menu and any number of documents.
type Viewer struct {
	scene     *folio.Scene
	world     donburi.World
	pages     *ecs.PageStore
	resources *media.ResourceMap
	perms     *permission.Oracle
	system    *menu.System

	menuNode  *folio.Node
	panel     *folio.Node
	prev      *folio.Node
	next      *folio.Node
	label     *folio.Node
	documents map[menu.EntityID]*folio.Node

	fadeIn  time.Duration
	visible bool
	last    menu.Result
	log     zerolog.Logger
	onSync  func(ecs.PageChanged)
}

// New creates a viewer on scene and registers its menu system. The scene's
// entity store is replaced by a donburi bridge on the viewer's ECS world.
func New(scene *folio.Scene, opts Options) *Viewer {
	participant := opts.Participant
	if participant.IsNil() {
		participant = xid.New()
	}
	w := donburi.NewWorld()
	v := &Viewer{
		scene:     scene,
		world:     w,
		pages:     ecs.NewPageStore(w, participant),
		resources: media.NewResourceMap(),
		perms:     permission.NewOracle(opts.Policies),
		documents: make(map[menu.EntityID]*folio.Node),
		fadeIn:    opts.FadeIn,
		log:       opts.Logger,
		onSync:    opts.OnSync,
	}
	v.pages.SetLogger(v.log)
	v.perms.SetLogger(v.log)
	scene.SetEntityStore(ecs.NewDonburiStore(w))

	v.buildMenu(opts.FollowLerp)
	refs := menu.Refs{
		Menu:       v.menuNode.EntityID(),
		PrevButton: v.prev.EntityID(),
		NextButton: v.next.EntityID(),
		PageLabel:  v.label.EntityID(),
	}
	v.system = menu.NewSystem(&world{
		scene:     scene,
		pages:     v.pages,
		resources: v.resources,
		perms:     v.perms,
	}, scene, refs,
		menu.WithGracePeriod(opts.GracePeriod),
		menu.WithChannel(opts.Channel),
		menu.WithLogger(v.log),
		menu.WithTurnHandler(v.turned),
	)

	ecs.PageChangedEvent.Subscribe(w, v.pageChanged)
	ecs.InteractionEventType.Subscribe(w, v.interaction)

	scene.AddSystem(v.step)
	return v
}

// buildMenu creates the menu subtree. The menu starts hidden; the system
// shows it once a document is targeted.
func (v *Viewer) buildMenu(lerp float64) {
	m := folio.NewContainer("page_menu")
	m.Capabilities = menu.CapMenu
	m.Interactable = true
	m.Visible = false
	m.SetZIndex(1 << 10)
	m.Follow = folio.FollowTransform{OffsetY: -(menuHeight + menuGap), Lerp: lerp}

	panel := folio.NewSprite("page_menu_panel", menuWidth, menuHeight)
	panel.Color = menuPanelColor
	panel.Interactable = true
	m.AddChild(panel)

	prev := folio.NewSprite("page_menu_prev", buttonSize, buttonSize)
	prev.Color = menuButtonColor
	prev.Interactable = true
	prev.SetPosition(buttonInset, buttonInset)
	prev.SetZIndex(1)
	m.AddChild(prev)

	next := folio.NewSprite("page_menu_next", buttonSize, buttonSize)
	next.Color = menuButtonColor
	next.Interactable = true
	next.SetPosition(menuWidth-buttonSize-buttonInset, buttonInset)
	next.SetZIndex(1)
	m.AddChild(next)

	label := folio.NewText("page_menu_label", "")
	label.TextBlock.Align = folio.TextAlignCenter
	label.SetPosition(menuWidth/2, (menuHeight-16)/2)
	label.SetZIndex(1)
	m.AddChild(label)

	v.scene.Root().AddChild(m)
	v.menuNode, v.panel, v.prev, v.next, v.label = m, panel, prev, next, label
}

// Scene returns the viewer's scene.
func (v *Viewer) Scene() *folio.Scene { return v.scene }

// Pages returns the networked page store.
func (v *Viewer) Pages() *ecs.PageStore { return v.pages }

// Resources returns the document resource map.
func (v *Viewer) Resources() *media.ResourceMap { return v.resources }

// Permissions returns the pin permission oracle.
func (v *Viewer) Permissions() *permission.Oracle { return v.perms }

// System returns the menu system.
func (v *Viewer) System() *menu.System { return v.system }

// Menu returns the menu container node.
func (v *Viewer) Menu() *folio.Node { return v.menuNode }

// PrevButton returns the previous-page button.
func (v *Viewer) PrevButton() *folio.Node { return v.prev }

// NextButton returns the next-page button.
func (v *Viewer) NextButton() *folio.Node { return v.next }

// Label returns the page label node.
func (v *Viewer) Label() *folio.Node { return v.label }

// Last returns the result of the most recent menu step.
func (v *Viewer) Last() menu.Result { return v.last }

// AddDocument places a document inside its own media root at bounds and
// returns the document node. Documents with a page count are registered as
// loaded; documents without one stay unloaded until SetLoaded.
func (v *Viewer) AddDocument(doc media.Document, bounds folio.Rect) *folio.Node {
	root := folio.NewContainer("media_" + doc.Name)
	root.Capabilities = menu.CapMediaRoot
	root.Interactable = true
	root.SetPosition(bounds.X, bounds.Y)

	page := folio.NewSprite(doc.Name, bounds.Width, bounds.Height)
	page.Capabilities = menu.CapDocument
	page.Color = documentColor
	page.Interactable = true
	root.AddChild(page)

	title := folio.NewText(doc.Name+"_title", doc.Name)
	title.TextBlock.Color = documentText
	title.SetPosition(6, 6)
	page.AddChild(title)

	v.scene.Root().AddChild(root)

	id := page.EntityID()
	v.documents[id] = page
	v.pages.Register(id, 1, v.pages.Local())
	if doc.NumPages > 0 {
		v.resources.Set(id, doc)
	}
	v.log.Debug().
		Uint32("document", uint32(id)).
		Str("name", doc.Name).
		Int("pages", doc.NumPages).
		Msg("document added")
	return page
}

// SetLoaded records the loaded descriptor of a document added earlier.
func (v *Viewer) SetLoaded(id menu.EntityID, doc media.Document) {
	if _, ok := v.documents[id]; !ok {
		return
	}
	v.resources.Set(id, doc)
}

// RemoveDocument disposes the media root of the document and drops its
// state.
func (v *Viewer) RemoveDocument(id menu.EntityID) {
	n, ok := v.documents[id]
	if !ok {
		return
	}
	if root := n.Parent; root != nil && root.Capabilities&menu.CapMediaRoot != 0 {
		root.Dispose()
	} else {
		n.Dispose()
	}
	v.forget(id)
}

// Documents returns the number of documents in the viewer.
func (v *Viewer) Documents() int {
	return len(v.documents)
}

// ApplyRemote stores a page update received from another participant.
func (v *Viewer) ApplyRemote(id menu.EntityID, page int, owner xid.ID) {
	v.pages.ApplyRemote(id, page, owner)
}

func (v *Viewer) forget(id menu.EntityID) {
	delete(v.documents, id)
	v.resources.Delete(id)
	v.pages.Unregister(id)
	v.log.Debug().Uint32("document", uint32(id)).Msg("document removed")
}

// step runs the menu controller once per scene step.
func (v *Viewer) step(s *folio.Scene, _ time.Duration) {
	v.prune()

	v.last = v.system.Step(menu.Frame{
		Now:       s.Now(),
		Frozen:    s.Frozen(),
		Hovered:   s.Hovered(),
		Activated: s.Activated,
	})
	if v.last.Visible && !v.visible && v.fadeIn > 0 {
		s.AddTween(folio.FadeIn(v.menuNode, v.fadeIn))
	}
	v.visible = v.last.Visible

	v.pages.Flush(v.sync)
	ecs.PageChangedEvent.ProcessEvents(v.world)
	ecs.InteractionEventType.ProcessEvents(v.world)
}

// prune forgets documents whose nodes were disposed or detached from the
// scene by other code, then drops resource and page state left behind for
// entities the viewer no longer tracks.
func (v *Viewer) prune() {
	root := v.scene.Root()
	for id, n := range v.documents {
		if n.IsDisposed() || !attached(root, n) {
			delete(v.documents, id)
			v.log.Debug().Uint32("document", uint32(id)).Msg("document detached")
		}
	}
	resources := v.resources.Prune(v.tracked)
	pages := v.pages.Prune(v.tracked)
	if resources > 0 || pages > 0 {
		v.log.Debug().Int("resources", resources).Int("pages", pages).Msg("stale document state pruned")
	}
}

func (v *Viewer) tracked(id menu.EntityID) bool {
	_, ok := v.documents[id]
	return ok
}

func attached(root, n *folio.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

func (v *Viewer) sync(c ecs.PageChanged) {
	v.log.Debug().
		Uint32("document", uint32(c.Document)).
		Int("page", c.Page).
		Str("owner", c.Owner.String()).
		Msg("page state flushed")
	if v.onSync != nil {
		v.onSync(c)
	}
}

func (v *Viewer) turned(t menu.Turn) {
	v.log.Info().
		Uint32("document", uint32(t.Document)).
		Str("dir", t.Dir.String()).
		Int("page", t.To).
		Msg("page turned")
}

func (v *Viewer) pageChanged(_ donburi.World, c ecs.PageChanged) {
	if c.Remote {
		v.log.Debug().
			Uint32("document", uint32(c.Document)).
			Int("page", c.Page).
			Msg("remote page change applied")
	}
}

func (v *Viewer) interaction(_ donburi.World, e folio.InteractionEvent) {
	if e.Type != folio.EventClick {
		return
	}
	v.log.Trace().
		Uint32("node", e.NodeID).
		Float64("x", e.GlobalX).
		Float64("y", e.GlobalY).
		Msg("click")
}
