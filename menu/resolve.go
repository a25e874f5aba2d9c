package menu

import "time"

// DefaultGracePeriod is how long a target survives without hover evidence.
const DefaultGracePeriod = time.Second

// Transition describes what Resolve did to the target.
type Transition uint8

const (
	TransitionHold       Transition = iota // nothing changed
	TransitionDropped                      // target entity was removed
	TransitionFrozen                       // scene frozen, target discarded
	TransitionAcquired                     // target set from none
	TransitionRetargeted                   // target switched documents
	TransitionRefreshed                    // same target hovered again
	TransitionRenewed                      // menu control hovered, timer renewed
	TransitionExpired                      // grace period elapsed
)

var transitionNames = [...]string{
	TransitionHold:       "hold",
	TransitionDropped:    "dropped",
	TransitionFrozen:     "frozen",
	TransitionAcquired:   "acquired",
	TransitionRetargeted: "retargeted",
	TransitionRefreshed:  "refreshed",
	TransitionRenewed:    "renewed",
	TransitionExpired:    "expired",
}

func (t Transition) String() string {
	if int(t) < len(transitionNames) {
		return transitionNames[t]
	}
	return "unknown"
}

// Resolve computes the menu target for this step.
//
// When several hovered entities resolve to documents, the first one in
// hover order wins. That order belongs to the hover subsystem and is not
// normalized here.
func Resolve(sc Scene, st State, menu EntityID, f Frame, grace time.Duration) (State, Transition) {
	t := TransitionHold

	if st.TargetRef != None && !sc.EntityExists(st.TargetRef) {
		st.TargetRef = None
		t = TransitionDropped
	}

	if f.Frozen {
		if st.TargetRef != None {
			t = TransitionFrozen
		}
		st.TargetRef = None
		return st, t
	}

	for _, h := range f.Hovered {
		doc := sc.FindAncestorWithCapability(h, CapDocument)
		if doc == None {
			continue
		}
		switch st.TargetRef {
		case None:
			t = TransitionAcquired
		case doc:
			t = TransitionRefreshed
		default:
			t = TransitionRetargeted
		}
		st.TargetRef = doc
		st.ClearTargetTimer = f.Now + grace
		return st, t
	}

	for _, h := range f.Hovered {
		if sc.FindAncestorWithCapability(h, CapMenu) == menu && menu != None {
			if st.TargetRef != None {
				t = TransitionRenewed
			}
			st.ClearTargetTimer = f.Now + grace
			return st, t
		}
	}

	if f.Now > st.ClearTargetTimer {
		if st.TargetRef != None {
			t = TransitionExpired
		}
		st.TargetRef = None
	}
	return st, t
}
