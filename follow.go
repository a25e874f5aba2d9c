package folio

import "github.com/phanxgames/folio/menu"

// FollowFlags is a bitmask controlling a FollowTransform.
type FollowFlags uint8

const (
	FollowEnabled FollowFlags = 1 << iota // follow the target each step
	FollowSnap                            // jump to the target on the next step, then ease
)

// FollowTransform keeps a node positioned relative to another node. The
// target is a weak reference by node ID; a missing target leaves the node
// where it is.
type FollowTransform struct {
	Flags     FollowFlags
	TargetRef uint32
	OffsetX   float64
	OffsetY   float64
	// Lerp is the fraction of the remaining distance covered per step.
	// 1 snaps immediately; 0 is treated as 1.
	Lerp float64
}

// Enabled reports whether the follow behavior is active.
func (f *FollowTransform) Enabled() bool {
	return f.Flags&FollowEnabled != 0
}

// Bind targets id and enables following. Binding a different target
// snaps to it on the next step.
func (f *FollowTransform) Bind(id uint32) {
	if f.TargetRef != id || !f.Enabled() {
		f.Flags |= FollowSnap
	}
	f.TargetRef = id
	f.Flags |= FollowEnabled
}

// Disable clears the enabled bit. The binding is kept.
func (f *FollowTransform) Disable() {
	f.Flags &^= FollowEnabled | FollowSnap
}

// updateFollowers moves every enabled follower toward its target. Targets
// are resolved through the scene index so removed nodes are ignored.
func (s *Scene) updateFollowers() {
	for _, n := range s.followers() {
		f := &n.Follow
		target := s.lookup(menu.EntityID(f.TargetRef))
		if target == nil {
			continue
		}
		tx, ty := target.WorldPosition()
		tx += f.OffsetX
		ty += f.OffsetY
		if n.Parent != nil {
			tx, ty = n.Parent.WorldToLocal(tx, ty)
		}
		lerp := f.Lerp
		if lerp <= 0 || lerp > 1 || f.Flags&FollowSnap != 0 {
			lerp = 1
		}
		f.Flags &^= FollowSnap
		nx := n.X + (tx-n.X)*lerp
		ny := n.Y + (ty-n.Y)*lerp
		if nx != n.X || ny != n.Y {
			n.SetPosition(nx, ny)
		}
	}
}

// followers collects enabled followers from the scene index in ID order.
func (s *Scene) followers() []*Node {
	s.followBuf = s.followBuf[:0]
	for _, n := range s.index {
		if n.Follow.Enabled() && !n.disposed {
			s.followBuf = append(s.followBuf, n)
		}
	}
	sortByID(s.followBuf)
	return s.followBuf
}
