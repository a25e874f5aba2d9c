package folio

import (
	"testing"
	"time"

	"github.com/phanxgames/folio/menu"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if !s.EntityExists(s.Root().EntityID()) {
		t.Error("root should exist before the first step")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneClockAndSystems(t *testing.T) {
	s := NewScene()
	var order []string
	var seen []time.Duration
	s.AddSystem(func(sc *Scene, dt time.Duration) {
		order = append(order, "a")
		seen = append(seen, sc.Now())
	})
	s.AddSystem(func(sc *Scene, dt time.Duration) { order = append(order, "b") })

	s.Step(10 * time.Millisecond)
	s.Step(15 * time.Millisecond)

	if s.Now() != 25*time.Millisecond {
		t.Errorf("Now() = %v, want 25ms", s.Now())
	}
	if len(order) != 4 || order[0] != "a" || order[1] != "b" {
		t.Errorf("order = %v, want [a b a b]", order)
	}
	if seen[0] != 10*time.Millisecond || seen[1] != 25*time.Millisecond {
		t.Errorf("clock seen by systems = %v", seen)
	}
}

func TestSceneFrozen(t *testing.T) {
	s := NewScene()
	if s.Frozen() {
		t.Error("new scene should not be frozen")
	}
	s.SetFrozen(true)
	if !s.Frozen() {
		t.Error("Frozen() should be true")
	}
}

func TestEntityExistsAfterStep(t *testing.T) {
	s := NewScene()
	n := NewSprite("n", 1, 1)
	s.Root().AddChild(n)

	if s.EntityExists(n.EntityID()) {
		t.Error("node attached mid-step should not exist until the next step")
	}
	s.Step(0)
	if !s.EntityExists(n.EntityID()) {
		t.Error("node should exist after a step")
	}
	if s.Node(n.ID) != n {
		t.Error("Node() should return the live node")
	}
	if s.EntityExists(menu.None) {
		t.Error("None should never exist")
	}
}

func TestEntityExistsDisposed(t *testing.T) {
	s := NewScene()
	n := NewSprite("n", 1, 1)
	s.Root().AddChild(n)
	s.Step(0)
	id := n.EntityID()

	n.Dispose()
	if s.EntityExists(id) {
		t.Error("disposed node should not exist")
	}
}

func TestEntityExistsDetached(t *testing.T) {
	s := NewScene()
	n := NewSprite("n", 1, 1)
	s.Root().AddChild(n)
	s.Step(0)

	n.RemoveFromParent()
	if s.EntityExists(n.EntityID()) {
		t.Error("detached node should not exist")
	}
}

func TestFindAncestorWithCapability(t *testing.T) {
	s := NewScene()
	mediaRoot := NewContainer("media")
	mediaRoot.Capabilities = menu.CapMediaRoot
	doc := NewSprite("doc", 10, 10)
	doc.Capabilities = menu.CapDocument
	mesh := NewSprite("mesh", 5, 5)
	s.Root().AddChild(mediaRoot)
	mediaRoot.AddChild(doc)
	doc.AddChild(mesh)
	s.Step(0)

	if got := s.FindAncestorWithCapability(mesh.EntityID(), menu.CapDocument); got != doc.EntityID() {
		t.Errorf("document ancestor = %d, want %d", got, doc.ID)
	}
	if got := s.FindAncestorWithCapability(doc.EntityID(), menu.CapDocument); got != doc.EntityID() {
		t.Error("search should include the start node")
	}
	if got := s.FindAncestorWithCapability(mesh.EntityID(), menu.CapMediaRoot); got != mediaRoot.EntityID() {
		t.Errorf("media root = %d, want %d", got, mediaRoot.ID)
	}
	if got := s.FindAncestorWithCapability(mesh.EntityID(), menu.CapMenu); got != menu.None {
		t.Errorf("menu ancestor = %d, want None", got)
	}
	if got := s.FindAncestorWithCapability(menu.EntityID(9999999), menu.CapDocument); got != menu.None {
		t.Error("unknown entity should resolve to None")
	}
}

func TestRendererMethods(t *testing.T) {
	s := NewScene()
	m := NewContainer("menu")
	label := NewText("label", "")
	target := NewSprite("target", 10, 10)
	s.Root().AddChild(m)
	m.AddChild(label)
	s.Root().AddChild(target)
	s.Step(0)

	s.SetVisible(m.EntityID(), false)
	if m.Visible {
		t.Error("SetVisible(false) had no effect")
	}
	s.SetText(label.EntityID(), "2 / 5")
	if label.Text() != "2 / 5" {
		t.Errorf("label = %q", label.Text())
	}
	s.EnableFollow(m.EntityID(), target.EntityID())
	if !m.Follow.Enabled() || m.Follow.TargetRef != target.ID {
		t.Error("EnableFollow did not bind the target")
	}
	s.DisableFollow(m.EntityID())
	if m.Follow.Enabled() || m.Follow.TargetRef != target.ID {
		t.Error("DisableFollow should clear the enabled bit and keep the binding")
	}

	// Dead references are ignored.
	s.SetVisible(menu.EntityID(9999999), true)
	s.SetText(menu.None, "x")
}

func TestOnUpdateRunsInIDOrder(t *testing.T) {
	s := NewScene()
	a := NewContainer("a")
	b := NewContainer("b")
	s.Root().AddChild(b)
	s.Root().AddChild(a)
	var order []uint32
	a.OnUpdate = func(time.Duration) { order = append(order, a.ID) }
	b.OnUpdate = func(time.Duration) { order = append(order, b.ID) }

	s.Step(time.Millisecond)

	if len(order) != 2 || order[0] > order[1] {
		t.Errorf("update order = %v, want ascending IDs", order)
	}
}
