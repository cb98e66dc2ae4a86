// Package render draws a chart layout as a PNG contact sheet, one panel per
// page, in the style of the Cylheim page viewer.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"forge/layout"
)

const (
	PageWidth  = 512
	PageHeight = 384
	Gap        = 20
	Margin     = 24
)

type Options struct {
	Columns        int
	ShowGhostNotes bool
	// Scale is the supersampling factor; values below 2 draw directly.
	Scale int
}

func DefaultOptions() Options {
	return Options{Columns: 4, Scale: 2}
}

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// SheetSize returns the pixel size of the sheet for n pages.
func SheetSize(n, columns int) (int, int) {
	cols, rows := grid(n, columns)
	w := 2*Margin + cols*PageWidth + max(cols-1, 0)*Gap
	h := 2*Margin + rows*PageHeight + max(rows-1, 0)*Gap
	return w, h
}

func grid(n, columns int) (int, int) {
	if n == 0 {
		return 0, 0
	}
	cols := columns
	if cols <= 0 || cols > n {
		cols = n
	}
	return cols, (n + cols - 1) / cols
}

// Sheet renders every page of l into a single image.
func Sheet(l layout.Layout, opts Options) (*image.RGBA, error) {
	scale := max(opts.Scale, 1)
	w, h := SheetSize(len(l.Pages), opts.Columns)

	face, err := newFace(24 * float64(scale))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	big := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.Draw(big, big.Bounds(), image.NewUniform(colorSheet), image.Point{}, draw.Src)

	cols, _ := grid(len(l.Pages), opts.Columns)
	for i, p := range l.Pages {
		col, row := i%cols, i/cols
		c := &canvas{
			img:   big,
			scale: float64(scale),
			ox:    float64(Margin + col*(PageWidth+Gap)),
			oy:    float64(Margin + row*(PageHeight+Gap)),
			face:  face,
		}
		c.page(p, opts.ShowGhostNotes)
	}

	if scale == 1 {
		return big, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)
	return out, nil
}

// WritePNG renders l and encodes it to w.
func WritePNG(w io.Writer, l layout.Layout, opts Options) error {
	img, err := Sheet(l, opts)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "encode png")
}

func newFace(size float64) (font.Face, error) {
	f, err := goRegular()
	if err != nil {
		return nil, errors.Wrap(err, "parse go regular")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, errors.Wrap(err, "font face")
}

var (
	colorSheet    = color.RGBA{18, 18, 24, 255}
	colorPage     = color.RGBA{0, 0, 0, 255}
	colorGuide    = color.RGBA{60, 60, 72, 255}
	colorOutline  = color.RGBA{23, 24, 34, 255}
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorHoldBody = color.RGBA{255, 204, 102, 255}
	colorLink     = color.RGBA{220, 220, 220, 255}
	colorAccel    = color.RGBA{198, 72, 72, 255}
	colorDecel    = color.RGBA{39, 191, 141, 255}
)
