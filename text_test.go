package folio

import "testing"

func TestTextMeasure(t *testing.T) {
	tb := &TextBlock{Content: "1 / 5"}
	w, h := tb.Measure()
	if w != 5*labelGlyphW || h != labelGlyphH {
		t.Errorf("Measure() = (%v, %v), want (%d, %d)", w, h, 5*labelGlyphW, labelGlyphH)
	}

	tb.Content = "12 / 15"
	w, _ = tb.Measure()
	if w != 7*labelGlyphW {
		t.Errorf("Measure() after change = %v, want %d", w, 7*labelGlyphW)
	}
}

func TestTextMeasureCountsRunes(t *testing.T) {
	tb := &TextBlock{Content: "é/ü"}
	w, _ := tb.Measure()
	if w != 3*labelGlyphW {
		t.Errorf("Measure() = %v, want %d", w, 3*labelGlyphW)
	}
}

func TestTextAlignOffset(t *testing.T) {
	tests := []struct {
		align TextAlign
		want  float64
	}{
		{TextAlignLeft, 0},
		{TextAlignCenter, -14},
		{TextAlignRight, -28},
	}
	for _, tt := range tests {
		tb := &TextBlock{Content: "abcd", Align: tt.align}
		if got := tb.alignOffset(); got != tt.want {
			t.Errorf("align %d: offset = %v, want %v", tt.align, got, tt.want)
		}
	}
}

func TestSetText(t *testing.T) {
	n := NewText("label", "")
	n.SetText("3 / 4")
	if n.Text() != "3 / 4" {
		t.Errorf("Text() = %q, want %q", n.Text(), "3 / 4")
	}

	sprite := NewSprite("s", 1, 1)
	sprite.SetText("ignored")
	if sprite.Text() != "" {
		t.Error("SetText on a sprite should be a no-op")
	}
}
