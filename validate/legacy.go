package validate

import (
	"strings"

	"forge/parse"
)

// LegacyMarker is the text the editor stores in the args of the single
// tick-0 event of a chart authored for Cytus1 export.
const LegacyMarker = "cytus1_flag"

// LegacyTempo is the tempo that survives legacy-mode preprocessing.
type LegacyTempo struct {
	// Tick is where the real tempo starts; every note moves back by this much.
	Tick  uint32
	Value uint32
}

// HasLegacyMarker reports whether the event list is exactly one tick-0 entry
// holding exactly one event whose args contain LegacyMarker.
func HasLegacyMarker(chart parse.Chart) bool {
	if len(chart.EventOrders) != 1 {
		return false
	}
	order := chart.EventOrders[0]
	if order.Tick != 0 || len(order.Events) != 1 {
		return false
	}
	return strings.Contains(order.Events[0].Args, LegacyMarker)
}

// LegacyMode checks the preconditions of page-shift conversion and returns
// the tempo to keep.
func LegacyMode(chart parse.Chart) (LegacyTempo, error) {
	if !HasLegacyMarker(chart) {
		return LegacyTempo{}, newError(ErrMissingLegacyMarker, "expected one tick-0 event containing %q", LegacyMarker)
	}
	if err := NotEmpty(chart); err != nil {
		return LegacyTempo{}, err
	}

	switch len(chart.Tempos) {
	case 1:
		t := chart.Tempos[0]
		if t.Tick != 0 || t.Value == 0 {
			return LegacyTempo{}, atTick(ErrInvalidTempoForLegacyMode, t.Tick, "single tempo must be at tick 0 with a positive value")
		}
		return LegacyTempo{Tick: 0, Value: t.Value}, nil
	case 2:
		first, second := chart.Tempos[0], chart.Tempos[1]
		if first.Tick != 0 || first.Value != 0 {
			return LegacyTempo{}, atTick(ErrInvalidTempoForLegacyMode, first.Tick, "first tempo must be a zero placeholder at tick 0")
		}
		if second.Value == 0 {
			return LegacyTempo{}, atTick(ErrInvalidTempoForLegacyMode, second.Tick, "second tempo value is 0")
		}
		limit := 2 * uint64(chart.FirstPageSize())
		if second.Tick == 0 || uint64(second.Tick) >= limit {
			return LegacyTempo{}, atTick(ErrInvalidTempoForLegacyMode, second.Tick,
				"offset tempo must start within (0, %d)", limit)
		}
		if chart.Pages[0].ScanDirection != 1 {
			return LegacyTempo{}, newError(ErrInvalidTempoForLegacyMode, "first page must scan upward, got direction %d",
				chart.Pages[0].ScanDirection)
		}
		return LegacyTempo{Tick: second.Tick, Value: second.Value}, nil
	default:
		return LegacyTempo{}, newError(ErrInvalidTempoForLegacyMode, "expected 1 or 2 tempo entries, got %d", len(chart.Tempos))
	}
}
