package folio

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/folio/menu"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// --- Pointer state ---

// pointerState tracks the single dominant pointer. Hover is derived from
// its last known position every step, so a stationary pointer keeps
// hovering whatever is under it.
type pointerState struct {
	down      bool
	x, y      float64
	hitNode   *Node // node under the pointer at press time
	hoverNode *Node // topmost hovered node, for enter/leave
	button    MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	click  []pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.click
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.click = s[:len(s)-1]
			return
		}
	}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's size. Containers with no
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	x0 := 0.0
	if n.TextBlock != nil {
		x0 = n.TextBlock.alignOffset()
	}
	return lx >= x0 && lx <= x0+w && ly >= 0 && ly <= h
}

// nodeDimensions returns the local size of a node's visual.
func nodeDimensions(n *Node) (float64, float64) {
	switch n.Type {
	case NodeTypeSprite:
		return n.Width, n.Height
	case NodeTypeText:
		if n.TextBlock != nil {
			return n.TextBlock.Measure()
		}
	}
	return 0, 0
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.orderedChildren() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTestAll returns every interactable node containing (worldX, worldY),
// topmost first. The slice is reused across calls.
func (s *Scene) hitTestAll(worldX, worldY float64) []*Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	s.hitOut = s.hitOut[:0]
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			s.hitOut = append(s.hitOut, n)
		}
	}
	return s.hitOut
}

// --- Hover signal ---

// Hovered returns the entities under the pointer this step, topmost first.
// The returned slice MUST NOT be mutated and is only valid until the next
// step.
func (s *Scene) Hovered() []menu.EntityID {
	return s.hovered
}

// Activated reports whether the node was clicked this step.
func (s *Scene) Activated(id menu.EntityID) bool {
	for _, a := range s.activated {
		if a == uint32(id) {
			return true
		}
	}
	return false
}

// PointerPosition returns the last known world position of the pointer.
func (s *Scene) PointerPosition() (float64, float64) {
	return s.pointer.x, s.pointer.y
}

// --- Input processing ---

// processInput is called once per step. Injected events take precedence
// over live mouse input; with neither, the pointer stays where it was and
// hover is re-evaluated against the current tree.
func (s *Scene) processInput() {
	s.activated = s.activated[:0]

	if s.processInjectedInput() {
		return
	}
	if s.liveInput {
		mx, my := ebiten.CursorPosition()
		pressed, button := readMouseButtons()
		s.processPointer(float64(mx), float64(my), pressed, button)
		return
	}
	s.processPointer(s.pointer.x, s.pointer.y, s.pointer.down, s.pointer.button)
}

func readMouseButtons() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// processPointer runs the pointer state machine for one step.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	moved := wx != ps.x || wy != ps.y

	hits := s.hitTestAll(wx, wy)
	s.hovered = s.hovered[:0]
	for _, n := range hits {
		s.hovered = append(s.hovered, n.EntityID())
	}
	var target *Node
	if len(hits) > 0 {
		target = hits[0]
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			s.fire(EventPointerLeave, ps.hoverNode, wx, wy, button)
		}
		if target != nil {
			s.fire(EventPointerEnter, target, wx, wy, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.fire(EventPointerDown, target, wx, wy, button)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.activated = append(s.activated, target.ID)
			s.fire(EventClick, target, wx, wy, ps.button)
		}
		s.fire(EventPointerUp, target, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
	case !pressed && moved:
		s.fire(EventPointerMove, target, wx, wy, button)
	}
	ps.x, ps.y = wx, wy
}

// --- Event dispatch ---

func (s *Scene) fire(ev EventType, node *Node, wx, wy float64, button MouseButton) {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy, Button: button,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.UserData = node.UserData
	}

	switch ev {
	case EventClick:
		for _, h := range s.handlers.click {
			h.fn(ctx)
		}
		if node != nil && node.OnClick != nil {
			node.OnClick(ctx)
		}
	case EventPointerEnter:
		if node != nil && node.OnPointerEnter != nil {
			node.OnPointerEnter(ctx)
		}
	case EventPointerLeave:
		if node != nil && node.OnPointerLeave != nil {
			node.OnPointerLeave(ctx)
		}
	}

	s.emitInteractionEvent(ev, ctx)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(ev EventType, ctx PointerContext) {
	if s.store == nil || ctx.Node == nil {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:    ev,
		NodeID:  ctx.Node.ID,
		GlobalX: ctx.GlobalX,
		GlobalY: ctx.GlobalY,
		LocalX:  ctx.LocalX,
		LocalY:  ctx.LocalY,
		Button:  ctx.Button,
	})
}
