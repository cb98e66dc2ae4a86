package verify

import (
	"fmt"
	"math"
	"slices"

	"forge/serialize"
	"forge/transform"
)

// Tolerance is the largest difference allowed after a trip through the six
// decimal line format.
const Tolerance = 1e-6

// RoundTrip serializes a converted chart, parses it back and checks that
// nothing was lost.
func RoundTrip(chart transform.LegacyChart) error {
	back, err := serialize.Parse(serialize.Format(chart))
	if err != nil {
		return Fail("serialize", "reparse failed: %v", err)
	}

	var details []string
	if back.Version != chart.Version {
		details = append(details, fmt.Sprintf("VERSION: got %d, want %d", back.Version, chart.Version))
	}
	for _, f := range []struct {
		name      string
		got, want float64
	}{
		{"BPM", back.BPM, chart.BPM},
		{"PAGE_SHIFT", back.PageShift, chart.PageShift},
		{"PAGE_SIZE", back.PageSize, chart.PageSize},
	} {
		if !near(f.got, f.want) {
			details = append(details, fmt.Sprintf("%s: got %.9f, want %.9f", f.name, f.got, f.want))
		}
	}

	if len(back.Notes) != len(chart.Notes) {
		details = append(details, fmt.Sprintf("notes: got %d, want %d", len(back.Notes), len(chart.Notes)))
	} else {
		for i, want := range chart.Notes {
			got := back.Notes[i]
			if got.ID != want.ID || !near(got.Time, want.Time) || !near(got.X, want.X) || !near(got.HoldLength, want.HoldLength) {
				details = append(details, fmt.Sprintf("note %d: got %+v, want %+v", i, got, want))
			}
		}
	}

	if len(back.Links) != len(chart.Links) {
		details = append(details, fmt.Sprintf("links: got %d, want %d", len(back.Links), len(chart.Links)))
	} else {
		for i, want := range chart.Links {
			if !slices.Equal(back.Links[i].IDs, want.IDs) {
				details = append(details, fmt.Sprintf("link %d: got %v, want %v", i, back.Links[i].IDs, want.IDs))
			}
		}
	}

	if len(details) > 0 {
		return NewError("serialize", "round trip mismatch", details...)
	}
	return nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}
