package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"forge/layout"
	"forge/parse"
)

const (
	playTop    = 50.0
	playHeight = 294.0
	noteRadius = 16.0
)

type canvas struct {
	img    *image.RGBA
	scale  float64
	ox, oy float64
	face   font.Face
}

// frame maps normalized note coordinates into page pixels for one position
// function.
type frame struct {
	y1, y2 float64
}

func newFrame(pf *parse.PositionFunction) frame {
	height, centre := 1.0, 0.0
	if pf != nil {
		height, centre = pf.Arguments[0], pf.Arguments[1]
	}
	h := height * playHeight
	p := (1 - centre) / 2
	return frame{
		y1: playTop + playHeight*p - h/2,
		y2: playTop + playHeight*p + h/2,
	}
}

func (f frame) x(x float64) float64 {
	pad := PageWidth / 12.0
	return x*(PageWidth-2*pad) + pad
}

func (f frame) y(y float64) float64 {
	return f.y1 + (f.y2-f.y1)*y
}

func (c *canvas) page(p layout.PageView, ghosts bool) {
	c.rect(0, 0, PageWidth, PageHeight, colorPage)

	fr := newFrame(p.PositionFunction)
	c.line(0, fr.y1, PageWidth, fr.y1, 1, colorGuide)
	c.line(0, fr.y2, PageWidth, fr.y2, 1, colorGuide)

	if ghosts && len(p.GhostNotes) > 0 {
		c.notes(p.GhostNotes, newFrame(p.GhostPositionFunction), 77)
	}
	c.notes(p.Notes, fr, 255)

	for _, ev := range p.Scanline.Events {
		y := fr.y(ev.Y)
		c.line(0, y, 14, y, 3, eventColor(ev.Type))
	}

	c.text(10, 30, fmt.Sprintf("%d", p.PageIndex), colorWhite)
}

// eventColor is red for a speed-up, green for a slow-down.
func eventColor(t layout.ScanlineEventType) color.RGBA {
	switch t {
	case layout.Accelerate:
		return colorAccel
	case layout.Decelerate:
		return colorDecel
	}
	return colorWhite
}

// notes draws hold bodies, then drag links, then heads from the largest id
// down so smaller ids end on top.
func (c *canvas) notes(views []layout.NoteView, fr frame, alpha uint8) {
	heads := make(map[uint32]layout.NoteView, len(views))
	for _, v := range views {
		if !v.IsHoldBody() {
			heads[v.ID] = v
		}
	}

	for _, v := range views {
		if v.IsHoldBody() {
			c.holdBody(v, fr, alpha)
		}
	}
	for _, v := range views {
		if v.IsHoldBody() || v.NextID < 0 || !v.Type.Links() {
			continue
		}
		next, ok := heads[uint32(v.NextID)]
		if !ok {
			continue
		}
		c.line(fr.x(v.Position.X), fr.y(v.Position.Y), fr.x(next.Position.X), fr.y(next.Position.Y), 4, fade(colorLink, alpha))
	}
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		if v.IsHoldBody() {
			continue
		}
		x, y := fr.x(v.Position.X), fr.y(v.Position.Y)
		r := noteRadius
		if v.Type == parse.DragChild || v.Type == parse.ClickDragChild {
			r = noteRadius * 0.6
		}
		c.disc(x, y, r+3, fade(colorOutline, alpha))
		c.disc(x, y, r, fade(noteColor(v.Type), alpha))
		if v.HasSibling {
			c.disc(x, y, r*0.35, fade(colorWhite, alpha))
		}
	}
}

func (c *canvas) holdBody(v layout.NoteView, fr frame, alpha uint8) {
	hb := v.HoldBody
	x := fr.x(v.Position.X)
	y1, y2 := fr.y(hb.StartY), fr.y(hb.EndY)
	if hb.LongHold {
		c.line(x-15, y1, x-15, y2, 4, fade(colorWhite, alpha))
		c.line(x+15, y1, x+15, y2, 4, fade(colorWhite, alpha))
		c.line(x, y1, x, y2, 20, fade(colorHoldBody, alpha))
	} else {
		c.line(x, y1, x, y2, 14, fade(colorWhite, alpha))
	}
	if hb.WithTail {
		c.line(x-20, y2, x+20, y2, 5, fade(colorWhite, alpha))
	}
}

func (c *canvas) text(x, y float64, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int((c.ox + x) * c.scale)),
			Y: fixed.I(int((c.oy + y) * c.scale)),
		},
	}
	d.DrawString(s)
}

func noteColor(t parse.NoteType) color.RGBA {
	switch t {
	case parse.Click:
		return color.RGBA{153, 255, 255, 255}
	case parse.Hold:
		return color.RGBA{198, 105, 161, 255}
	case parse.LongHold:
		return colorHoldBody
	case parse.Drag, parse.DragChild:
		return color.RGBA{170, 102, 255, 255}
	case parse.Flick:
		return color.RGBA{41, 170, 220, 255}
	case parse.ClickDrag, parse.ClickDragChild:
		return color.RGBA{246, 102, 255, 255}
	}
	return color.RGBA{175, 190, 206, 255}
}

func fade(c color.RGBA, alpha uint8) color.Color {
	return color.NRGBA{c.R, c.G, c.B, alpha}
}
