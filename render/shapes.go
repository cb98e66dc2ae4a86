package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

type point struct{ x, y float64 }

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// toPixels maps page coordinates to clamped sheet pixels.
func (c *canvas) toPixels(pts []point) []point {
	b := c.img.Bounds()
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{
			x: math.Min(math.Max((c.ox+p.x)*c.scale, float64(b.Min.X)), float64(b.Max.X)),
			y: math.Min(math.Max((c.oy+p.y)*c.scale, float64(b.Min.Y)), float64(b.Max.Y)),
		}
	}
	return out
}

// fill rasterizes a closed path. segs groups the points: 1 for a line, 3 for
// a cubic curve.
func (c *canvas) fill(pts []point, segs []int, col color.Color) {
	px := c.toPixels(pts)
	if len(px) == 0 {
		return
	}
	minX, minY, maxX, maxY := px[0].x, px[0].y, px[0].x, px[0].y
	for _, p := range px[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	at := func(p point) (float32, float32) {
		return float32(p.x - float64(r.Min.X)), float32(p.y - float64(r.Min.Y))
	}
	z.MoveTo(at(px[0]))
	i := 1
	for _, n := range segs {
		switch n {
		case 1:
			z.LineTo(at(px[i]))
		case 3:
			ax, ay := at(px[i])
			bx, by := at(px[i+1])
			cx, cy := at(px[i+2])
			z.CubeTo(ax, ay, bx, by, cx, cy)
		}
		i += n
	}
	z.ClosePath()
	z.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

func (c *canvas) rect(x, y, w, h float64, col color.Color) {
	c.fill([]point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, []int{1, 1, 1}, col)
}

func (c *canvas) line(x1, y1, x2, y2, width float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.fill([]point{
		{x1 + nx, y1 + ny},
		{x2 + nx, y2 + ny},
		{x2 - nx, y2 - ny},
		{x1 - nx, y1 - ny},
	}, []int{1, 1, 1}, col)
}

func (c *canvas) disc(cx, cy, r float64, col color.Color) {
	k := r * kappa
	c.fill([]point{
		{cx + r, cy},
		{cx + r, cy + k}, {cx + k, cy + r}, {cx, cy + r},
		{cx - k, cy + r}, {cx - r, cy + k}, {cx - r, cy},
		{cx - r, cy - k}, {cx - k, cy - r}, {cx, cy - r},
		{cx + k, cy - r}, {cx + r, cy - k}, {cx + r, cy},
	}, []int{3, 3, 3, 3}, col)
}
