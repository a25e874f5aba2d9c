package menu

import (
	"time"

	"github.com/rs/zerolog"
)

// Result summarizes one Step.
type Result struct {
	Transition Transition
	Target     EntityID
	// Turn is valid when Turned is true.
	Turn   Turn
	Turned bool
	Visuals
}

// Option configures a System.
type Option func(*System)

// WithGracePeriod overrides DefaultGracePeriod. Non-positive values are
// ignored.
func WithGracePeriod(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithLogger sets the logger used for target transitions and page turns.
func WithLogger(l zerolog.Logger) Option {
	return func(s *System) { s.log = l }
}

// WithChannel sets the permission channel passed to the oracle.
func WithChannel(channel string) Option {
	return func(s *System) { s.channel = channel }
}

// WithTurnHandler registers fn to be called after every applied page turn.
func WithTurnHandler(fn func(Turn)) Option {
	return func(s *System) { s.onTurn = fn }
}

// System runs the menu controller against one menu instance. It is not safe
// for concurrent use.
type System struct {
	world    World
	renderer Renderer
	refs     Refs
	state    State

	grace   time.Duration
	channel string
	log     zerolog.Logger
	onTurn  func(Turn)
}

// NewSystem creates a System for the menu described by refs.
func NewSystem(w World, r Renderer, refs Refs, opts ...Option) *System {
	s := &System{
		world:    w,
		renderer: r,
		refs:     refs,
		grace:    DefaultGracePeriod,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refs returns the menu references.
func (s *System) Refs() Refs {
	return s.refs
}

// State returns the controller state after the last Step.
func (s *System) State() State {
	return s.state
}

// SetState replaces the controller state.
func (s *System) SetState(st State) {
	s.state = st
}

// GracePeriod returns the configured grace period.
func (s *System) GracePeriod() time.Duration {
	return s.grace
}

// Step resolves the target, applies page commands and flushes visuals.
func (s *System) Step(f Frame) Result {
	prev := s.state.TargetRef
	st, t := Resolve(s.world, s.state, s.refs.Menu, f, s.grace)
	s.state = st

	res := Result{Transition: t, Target: st.TargetRef}
	if t != TransitionHold && t != TransitionRenewed && t != TransitionRefreshed {
		s.log.Debug().
			Str("transition", t.String()).
			Uint32("from", uint32(prev)).
			Uint32("to", uint32(st.TargetRef)).
			Dur("now", f.Now).
			Msg("menu target changed")
	}

	if st.TargetRef != None {
		acquired := t == TransitionAcquired || t == TransitionRetargeted
		if _, ok := s.world.Resource(st.TargetRef); !ok && acquired {
			s.log.Warn().
				Uint32("document", uint32(st.TargetRef)).
				Msg("menu target has no loaded resource")
		}
		res.Turn, res.Turned = HandleCommands(s.world, s.refs, st.TargetRef, f)
		if res.Turned {
			s.log.Debug().
				Uint32("document", uint32(res.Turn.Document)).
				Str("dir", res.Turn.Dir.String()).
				Int("from", res.Turn.From).
				Int("to", res.Turn.To).
				Msg("page turned")
			if s.onTurn != nil {
				s.onTurn(res.Turn)
			}
		}
	}

	res.Visuals = Flush(s.world, s.renderer, s.refs, st.TargetRef, f.Frozen, s.channel)
	return res
}
