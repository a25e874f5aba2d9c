package folio

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via TweenAlpha or FadeIn and either call Update(dt)
// yourself or hand it to Scene.AddTween. The group writes values to the
// node and marks it dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is
// set to true and no writes occur.
func (g *TweenGroup) Update(dt time.Duration) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt.Seconds()))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Stop ends the group without further writes.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenAlpha creates a TweenGroup that animates node.Alpha from its current
// value to the target over duration using the easing function.
func TweenAlpha(node *Node, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), float32(duration.Seconds()), fn)
	g.fields[0] = &node.Alpha
	return g
}

// FadeIn resets node.Alpha to 0 and tweens it to 1 over duration.
func FadeIn(node *Node, duration time.Duration) *TweenGroup {
	node.SetAlpha(0)
	return TweenAlpha(node, 1, duration, ease.OutQuad)
}

// AddTween runs g once per step until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// updateTweens advances registered tweens and drops finished ones.
func (s *Scene) updateTweens(dt time.Duration) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}
