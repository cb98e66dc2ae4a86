package layout

// NoteY maps a tick to a vertical position in [0,1]. Pages scanning upward
// (direction >= 0) put the page start at the bottom.
func NoteY(tick, start, end uint32, direction int32) float64 {
	f := (float64(tick) - float64(start)) / (float64(end) - float64(start))
	y := 1 - f
	if direction < 0 {
		y = f
	}
	return clamp01(y)
}

// Fraction undoes the scan direction of a y value, returning how far
// through the page it lies.
func Fraction(y float64, direction int32) float64 {
	if direction < 0 {
		return y
	}
	return 1 - y
}

// ScanlineSpeed is the visual speed of the scanline for a tempo value in
// microseconds per beat. A zero tempo (a legacy placeholder) has speed 0.
func ScanlineSpeed(tempo, pageSize uint32, height float64) float64 {
	if tempo == 0 || pageSize == 0 {
		return 0
	}
	return (60_000_000 / float64(tempo)) * height * 960 / float64(pageSize)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
