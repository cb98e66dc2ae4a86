package verify

import (
	"fmt"

	"forge/layout"
)

// Layout checks a built layout: every note id 0..noteCount-1 appears exactly
// once as a head, positions are normalized and hold bodies stay inside their
// note's span on their page.
func Layout(l layout.Layout, noteCount int) error {
	var details []string

	seen := make([]int, noteCount)
	for _, p := range l.Pages {
		for _, v := range p.Notes {
			if !inUnit(v.Position.X) || !inUnit(v.Position.Y) {
				details = append(details, fmt.Sprintf("page %d note %d: position (%g,%g) outside [0,1]",
					p.PageIndex, v.ID, v.Position.X, v.Position.Y))
			}
			if v.IsHoldBody() {
				details = append(details, checkHoldBody(p, v)...)
				continue
			}
			if int(v.ID) >= noteCount {
				details = append(details, fmt.Sprintf("page %d: note id %d beyond note count %d", p.PageIndex, v.ID, noteCount))
				continue
			}
			seen[v.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			details = append(details, fmt.Sprintf("note id %d placed %d times", id, n))
		}
	}

	if len(details) > 0 {
		return NewError("layout", "layout invariants violated", details...)
	}
	return nil
}

func checkHoldBody(p layout.PageView, v layout.NoteView) []string {
	var details []string
	hb := v.HoldBody
	start := layout.Fraction(hb.StartY, p.ScanDirection)
	end := layout.Fraction(hb.EndY, p.ScanDirection)
	if start > end+Tolerance {
		details = append(details, fmt.Sprintf("page %d hold %d: start %g after end %g", p.PageIndex, v.ID, start, end))
	}

	size := float64(p.EndTick - p.StartTick)
	lo := (float64(max(v.Tick, p.StartTick)) - float64(p.StartTick)) / size
	hi := (float64(min(uint64(v.Tick)+uint64(v.HoldTick), uint64(p.EndTick))) - float64(p.StartTick)) / size
	lo, hi = clampUnit(lo), clampUnit(hi)
	if start < lo-Tolerance || end > hi+Tolerance {
		details = append(details, fmt.Sprintf("page %d hold %d: span [%g,%g] outside note span [%g,%g]",
			p.PageIndex, v.ID, start, end, lo, hi))
	}
	return details
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
