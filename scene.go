package folio

import (
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/folio/menu"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type    EventType
	NodeID  uint32
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

// System is a per-step callback run after input has been processed.
type System func(s *Scene, dt time.Duration)

// Scene is the top-level object that owns the node tree, the simulation
// clock, input state and the systems run each step.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool
	log   zerolog.Logger

	// ClearColor fills the screen before drawing.
	ClearColor Color

	clock  time.Duration
	frozen bool

	// index maps node IDs to live nodes; rebuilt every step.
	index     map[uint32]*Node
	followBuf []*Node
	updateBuf []*Node

	systems []System
	tweens  []*TweenGroup

	commands []RenderCommand

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	hitOut      []*Node
	hovered     []menu.EntityID
	activated   []uint32
	injectQueue []syntheticPointerEvent
	liveInput   bool
	testRunner  *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{
		root:  root,
		log:   zerolog.Nop(),
		index: make(map[uint32]*Node),
	}
	s.index[root.ID] = root
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances the scene by one tick at ebiten's TPS. It is the
// ebiten.Game hook; headless callers use Step.
func (s *Scene) Update() {
	s.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Step advances the simulation clock by dt and runs one step:
// transforms and the node index are refreshed, input is processed, systems
// run in registration order, then followers and tweens advance.
func (s *Scene) Step(dt time.Duration) {
	s.clock += dt
	s.refresh()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	s.runNodeUpdates(dt)
	for _, sys := range s.systems {
		sys(s, dt)
	}

	s.updateFollowers()
	s.updateTweens(dt)
}

// refresh recomputes world transforms and rebuilds the node index.
func (s *Scene) refresh() {
	clear(s.index)
	updateWorldTransform(s.root, identityTransform, 1.0, false, s.index)
}

func (s *Scene) runNodeUpdates(dt time.Duration) {
	s.updateBuf = s.updateBuf[:0]
	for _, n := range s.index {
		if n.OnUpdate != nil {
			s.updateBuf = append(s.updateBuf, n)
		}
	}
	sortByID(s.updateBuf)
	for _, n := range s.updateBuf {
		if !n.disposed && n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
	}
}

// Now returns the simulation clock.
func (s *Scene) Now() time.Duration {
	return s.clock
}

// SetFrozen sets the scene-wide frozen mode. Systems read it each step.
func (s *Scene) SetFrozen(frozen bool) {
	if s.frozen != frozen {
		s.log.Debug().Bool("frozen", frozen).Msg("scene frozen mode changed")
	}
	s.frozen = frozen
}

// Frozen reports whether the scene is frozen.
func (s *Scene) Frozen() bool {
	return s.frozen
}

// AddSystem registers a per-step system.
func (s *Scene) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetLogger sets the logger used for debug diagnostics.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
	if globalDebug {
		debugLog = l
	}
}

// Logger returns the scene logger.
func (s *Scene) Logger() zerolog.Logger {
	return s.log
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLog = s.log
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// --- Entity lookup ---

// lookup resolves a weak reference. Nodes that were disposed, detached from
// the tree, or not yet indexed resolve to nil.
func (s *Scene) lookup(id menu.EntityID) *Node {
	if id == menu.None {
		return nil
	}
	n := s.index[uint32(id)]
	if n == nil || n.disposed || n.ID != uint32(id) {
		return nil
	}
	if !isAncestor(s.root, n) {
		return nil
	}
	return n
}

// Node returns the live node with the given ID, or nil.
func (s *Scene) Node(id uint32) *Node {
	return s.lookup(menu.EntityID(id))
}

// EntityExists reports whether id refers to a live node in this scene.
// Nodes attached during a step become visible to lookups on the next step.
func (s *Scene) EntityExists(id menu.EntityID) bool {
	return s.lookup(id) != nil
}

// FindAncestorWithCapability walks from id (inclusive) to the root and
// returns the nearest node whose capabilities intersect c.
func (s *Scene) FindAncestorWithCapability(id menu.EntityID, c menu.Capability) menu.EntityID {
	for p := s.lookup(id); p != nil; p = p.Parent {
		if p.Capabilities&c != 0 {
			return p.EntityID()
		}
	}
	return menu.None
}

// --- menu.Renderer ---

// SetVisible sets the Visible flag of a live node.
func (s *Scene) SetVisible(id menu.EntityID, visible bool) {
	if n := s.lookup(id); n != nil {
		n.Visible = visible
	}
}

// EnableFollow binds the follow behavior of node to target.
func (s *Scene) EnableFollow(node, target menu.EntityID) {
	if n := s.lookup(node); n != nil {
		n.Follow.Bind(uint32(target))
	}
}

// DisableFollow turns off the follow behavior of node.
func (s *Scene) DisableFollow(node menu.EntityID) {
	if n := s.lookup(node); n != nil {
		n.Follow.Disable()
	}
}

// SetText replaces the content of a live text node.
func (s *Scene) SetText(id menu.EntityID, text string) {
	if n := s.lookup(id); n != nil {
		n.SetText(text)
	}
}

func sortByID(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
