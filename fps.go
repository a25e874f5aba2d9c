package folio

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a text node that displays the current FPS and TPS,
// refreshed every half second.
func NewFPSWidget() *Node {
	node := NewText("fps_widget", "")
	node.SetZIndex(1 << 20)

	var since time.Duration
	node.OnUpdate = func(dt time.Duration) {
		since += dt
		if since < 500*time.Millisecond {
			return
		}
		since = 0
		node.SetText(fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
