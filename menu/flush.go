package menu

import "strconv"

// Visuals is the state Flush pushed to the renderer.
type Visuals struct {
	Visible        bool
	CanPin         bool
	ButtonsVisible bool
	// Label is the page label text; empty when the label was not touched.
	Label string
}

// Flush writes the menu's visibility, follow binding, button visibility and
// page label for the resolved target.
//
// Pinning is decided on the media root above the document, which outlives
// the loader that created it. Buttons are hidden individually because a
// hidden parent does not stop its children from being hit-tested.
func Flush(w World, r Renderer, refs Refs, target EntityID, frozen bool, channel string) Visuals {
	v := Visuals{Visible: target != None && !frozen}

	r.SetVisible(refs.Menu, v.Visible)
	if v.Visible {
		r.EnableFollow(refs.Menu, target)
	} else {
		r.DisableFollow(refs.Menu)
	}

	if target != None {
		if root := w.FindAncestorWithCapability(target, CapMediaRoot); root != None {
			v.CanPin = w.CanPin(channel, root)
		}
	}

	v.ButtonsVisible = v.Visible && v.CanPin
	r.SetVisible(refs.PrevButton, v.ButtonsVisible)
	r.SetVisible(refs.NextButton, v.ButtonsVisible)

	if target == None {
		return v
	}
	res, ok := w.Resource(target)
	if !ok {
		return v
	}
	v.Label = PageLabel(w.Page(target), res.NumPages)
	r.SetText(refs.PageLabel, v.Label)
	return v
}

// PageLabel formats the label shown between the pagination buttons.
func PageLabel(page, numPages int) string {
	return strconv.Itoa(page) + " / " + strconv.Itoa(numPages)
}
