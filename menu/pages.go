package menu

// Wrap folds n into the inclusive range [min, max]. A value one above max
// becomes min and a value one below min becomes max.
//
// Wrap is not a modulo: callers must never pass a value more than one step
// outside the range. The result for such input is unspecified.
func Wrap(n, min, max int) int {
	if n < min {
		return max
	}
	if n > max {
		return min
	}
	return n
}

// PageTurn is the direction of a page command.
type PageTurn int8

const (
	TurnNone PageTurn = 0
	TurnPrev PageTurn = -1
	TurnNext PageTurn = 1
)

func (p PageTurn) String() string {
	switch p {
	case TurnPrev:
		return "prev"
	case TurnNext:
		return "next"
	default:
		return "none"
	}
}

// Turn records a page change applied by HandleCommands.
type Turn struct {
	Document EntityID
	Dir      PageTurn
	From, To int
}

// HandleCommands applies the next/previous button activations of this step
// to target. Next wins when both were activated. Targets without a loaded
// resource are left alone.
func HandleCommands(w World, refs Refs, target EntityID, f Frame) (Turn, bool) {
	var dir PageTurn
	switch {
	case f.activated(refs.NextButton):
		dir = TurnNext
	case f.activated(refs.PrevButton):
		dir = TurnPrev
	default:
		return Turn{}, false
	}

	res, ok := w.Resource(target)
	if !ok || res.NumPages < 1 {
		return Turn{}, false
	}

	from := w.Page(target)
	to := Wrap(from+int(dir), 1, res.NumPages)
	setPage(w, target, to)
	return Turn{Document: target, Dir: dir, From: from, To: to}, true
}

// setPage takes ownership, flags the entity for propagation and writes the
// page, in that order.
func setPage(p Pages, id EntityID, page int) {
	p.AcquireAuthority(id)
	p.MarkDirty(id)
	p.SetPage(id, page)
}
