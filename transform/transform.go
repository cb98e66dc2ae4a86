package transform

import (
	"cmp"
	"slices"

	"forge/parse"
	"forge/validate"
)

// Transform converts a chart with the given options. It never returns a
// partially converted chart.
func Transform(chart parse.Chart, opts Options) (LegacyChart, error) {
	if opts.Legacy {
		return ConvertLegacy(chart, opts)
	}
	return convert(chart, opts.PageShift, opts.TolerateBrokenLinks)
}

// Convert converts a chart using pageShift as the PAGE_SHIFT value.
func Convert(chart parse.Chart, pageShift float64) (LegacyChart, error) {
	return convert(chart, pageShift, false)
}

func convert(chart parse.Chart, pageShift float64, tolerateBrokenLinks bool) (LegacyChart, error) {
	if err := validate.Compatibility(chart); err != nil {
		return LegacyChart{}, err
	}

	tempo := chart.Tempos[0].Value
	bpm := 2 * 60_000_000 / float64(tempo)
	result := LegacyChart{
		Version:   LegacyVersion,
		BPM:       bpm,
		PageShift: pageShift,
		PageSize:  240 / bpm,
		Notes:     make([]LegacyNote, 0, len(chart.Notes)),
	}

	for _, n := range chart.Notes {
		note := LegacyNote{
			ID:   n.ID,
			Time: tickToSeconds(n.Tick, chart.TimeBase, tempo),
			X:    n.X,
		}
		if n.Type == parse.Hold {
			note.HoldLength = tickToSeconds(n.HoldTick, chart.TimeBase, tempo)
		}
		result.Notes = append(result.Notes, note)
	}
	slices.SortStableFunc(result.Notes, func(a, b LegacyNote) int {
		return cmp.Compare(a.ID, b.ID)
	})

	links, err := extractLinks(chart.Notes, tolerateBrokenLinks)
	if err != nil {
		return LegacyChart{}, err
	}
	result.Links = links

	return result, nil
}

// tickToSeconds converts a tick count at a fixed tempo, where tempo is in
// microseconds per beat and timeBase is ticks per beat.
func tickToSeconds(tick, timeBase, tempo uint32) float64 {
	return float64(tick) / float64(timeBase) * float64(tempo) / 1e6
}
