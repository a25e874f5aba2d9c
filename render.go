package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // solid rectangle
	CommandText                      // single-line label
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type      CommandType
	Transform [6]float64
	Width     float64
	Height    float64
	Color     Color
	Text      string
}

// whitePixel is the 1x1 source image for solid sprites. Created lazily so
// headless scenes never touch the graphics driver.
var whitePixel *ebiten.Image

// labelFace draws every text node.
var labelFace *text.GoXFace

// emitCommands walks the visible tree in painter order and appends a
// command per drawable node. World transforms must be current.
func (s *Scene) emitCommands(n *Node, buf []RenderCommand) []RenderCommand {
	if !n.Visible {
		return buf
	}
	alpha := n.worldAlpha
	switch n.Type {
	case NodeTypeSprite:
		c := n.Color
		c.A *= alpha
		buf = append(buf, RenderCommand{
			Type:      CommandSprite,
			Transform: n.worldTransform,
			Width:     n.Width,
			Height:    n.Height,
			Color:     c,
		})
	case NodeTypeText:
		if n.TextBlock != nil && n.TextBlock.Content != "" && alpha > 0 {
			x, y := n.LocalToWorld(n.TextBlock.alignOffset(), 0)
			c := n.TextBlock.Color
			c.A *= alpha
			buf = append(buf, RenderCommand{
				Type:      CommandText,
				Transform: [6]float64{1, 0, 0, 1, x, y},
				Color:     c,
				Text:      n.TextBlock.Content,
			})
		}
	}
	for _, child := range n.orderedChildren() {
		buf = s.emitCommands(child, buf)
	}
	return buf
}

// Draw renders the scene to screen. It is the ebiten.Game hook.
func (s *Scene) Draw(screen *ebiten.Image) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
		labelFace = text.NewGoXFace(basicfont.Face7x13)
	}
	screen.Fill(s.ClearColor.toRGBA())

	s.commands = s.emitCommands(s.root, s.commands[:0])
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(cmd.Width, cmd.Height)
			op.GeoM.Concat(geoM(cmd.Transform))
			op.ColorScale = colorScale(cmd.Color)
			screen.DrawImage(whitePixel, &op)
		case CommandText:
			var op text.DrawOptions
			op.GeoM.Translate(cmd.Transform[4], cmd.Transform[5])
			op.ColorScale = colorScale(cmd.Color)
			text.Draw(screen, cmd.Text, labelFace, &op)
		}
	}
}

// colorScale converts a straight-alpha color to a premultiplied scale.
func colorScale(c Color) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	return cs
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
