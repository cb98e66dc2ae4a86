package verify

import (
	"fmt"

	"forge/parse"
)

// Parse checks the structural invariants of a decoded chart: contiguous
// pages, ascending tempos and resolvable note references.
func Parse(chart parse.Chart) error {
	var details []string

	if len(chart.Pages) == 0 {
		details = append(details, "no pages")
	}
	if len(chart.Tempos) == 0 {
		details = append(details, "no tempo entries")
	}
	if chart.TimeBase == 0 {
		details = append(details, "time_base is 0")
	}

	for i, p := range chart.Pages {
		if p.EndTick <= p.StartTick {
			details = append(details, fmt.Sprintf("page %d: empty range [%d,%d)", i, p.StartTick, p.EndTick))
		}
		if p.ScanDirection != 1 && p.ScanDirection != -1 {
			details = append(details, fmt.Sprintf("page %d: scan direction %d", i, p.ScanDirection))
		}
		if i > 0 && p.StartTick != chart.Pages[i-1].EndTick {
			details = append(details, fmt.Sprintf("page %d: starts at %d, previous page ends at %d",
				i, p.StartTick, chart.Pages[i-1].EndTick))
		}
	}

	for i := 1; i < len(chart.Tempos); i++ {
		if chart.Tempos[i].Tick < chart.Tempos[i-1].Tick {
			details = append(details, fmt.Sprintf("tempo %d: tick %d before previous tick %d",
				i, chart.Tempos[i].Tick, chart.Tempos[i-1].Tick))
		}
	}

	ids := make(map[uint32]bool, len(chart.Notes))
	for _, n := range chart.Notes {
		if ids[n.ID] {
			details = append(details, fmt.Sprintf("note %d: duplicate id", n.ID))
		}
		ids[n.ID] = true
	}

	for _, n := range chart.Notes {
		pg := n.ResolvedPage()
		if pg < 0 || int(n.PageIndex) >= len(chart.Pages) {
			details = append(details, fmt.Sprintf("note %d: page_index %d (forward %v) out of range",
				n.ID, n.PageIndex, n.IsForward))
			continue
		}
		if p := chart.Pages[n.PageIndex]; !p.Contains(n.Tick) && n.Tick != p.EndTick {
			details = append(details, fmt.Sprintf("note %d: tick %d outside page %d [%d,%d)",
				n.ID, n.Tick, n.PageIndex, p.StartTick, p.EndTick))
		}
		if n.HasNext() && !ids[uint32(n.NextID)] {
			details = append(details, fmt.Sprintf("note %d: next_id %d does not exist", n.ID, n.NextID))
		}
	}

	if len(details) > 0 {
		return NewError("parse", "chart has invalid structure", details...)
	}
	return nil
}
