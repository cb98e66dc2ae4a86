package validate

import "forge/parse"

// Compatibility checks that a chart can be expressed in the Cytus1 format:
// one page size, one tempo, and only click, hold and drag notes on [0,1].
func Compatibility(chart parse.Chart) error {
	if err := NotEmpty(chart); err != nil {
		return err
	}
	if chart.TimeBase == 0 {
		return Invalid("time_base is 0")
	}

	for _, n := range chart.Notes {
		if !convertible(n.Type) {
			return InvalidNote(n.ID, n.Tick, "note type %d (%s) is not supported", uint32(n.Type), n.Type)
		}
		if !(n.X >= 0 && n.X <= 1) {
			return InvalidNote(n.ID, n.Tick, "x %g out of range [0,1]", n.X)
		}
	}

	size := chart.Pages[0].Size()
	if size == 0 {
		return atTick(ErrInvalidChart, chart.Pages[0].StartTick, "page 0 has no length")
	}
	for i, p := range chart.Pages {
		if p.EndTick < p.StartTick || p.Size() != size {
			return atTick(ErrInvalidChart, p.StartTick, "page %d size %d differs from first page size %d",
				i, int64(p.EndTick)-int64(p.StartTick), size)
		}
	}

	value := chart.Tempos[0].Value
	if value == 0 {
		return atTick(ErrInvalidChart, chart.Tempos[0].Tick, "tempo value is 0")
	}
	for _, t := range chart.Tempos {
		if t.Value != value {
			return atTick(ErrInvalidChart, t.Tick, "tempo %d differs from first tempo %d", t.Value, value)
		}
	}
	return nil
}

// NotEmpty requires at least one page and one tempo.
func NotEmpty(chart parse.Chart) error {
	if len(chart.Pages) == 0 {
		return Empty("no pages")
	}
	if len(chart.Tempos) == 0 {
		return Empty("no tempo entries")
	}
	return nil
}

func convertible(t parse.NoteType) bool {
	switch t {
	case parse.Click, parse.Hold, parse.Drag, parse.DragChild:
		return true
	}
	return false
}
