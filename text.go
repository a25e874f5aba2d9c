package folio

import "unicode/utf8"

// Glyph metrics of basicfont.Face7x13, the face labels are drawn with.
const (
	labelGlyphW = 7
	labelGlyphH = 13
)

// TextAlign controls horizontal text alignment around the node origin.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // text starts at the origin (default)
	TextAlignCenter                  // text is centered on the origin
	TextAlignRight                   // text ends at the origin
)

// TextBlock holds label content and formatting.
type TextBlock struct {
	Content string
	Align   TextAlign
	Color   Color

	measuredW float64
	measured  string
}

// Measure returns the rendered size of the content.
func (tb *TextBlock) Measure() (w, h float64) {
	if tb.measured != tb.Content {
		tb.measuredW = float64(utf8.RuneCountInString(tb.Content) * labelGlyphW)
		tb.measured = tb.Content
	}
	return tb.measuredW, labelGlyphH
}

// alignOffset returns the x offset applied to the content for its alignment.
func (tb *TextBlock) alignOffset() float64 {
	w, _ := tb.Measure()
	switch tb.Align {
	case TextAlignCenter:
		return -w / 2
	case TextAlignRight:
		return -w
	default:
		return 0
	}
}

// SetText replaces the content of a text node. No-op for other node types.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.Content = content
}

// Text returns the content of a text node, or "" for other node types.
func (n *Node) Text() string {
	if n.TextBlock == nil {
		return ""
	}
	return n.TextBlock.Content
}
