package transform

import (
	"forge/parse"
	"forge/validate"
)

// ConvertLegacy converts a chart prepared for Cytus1 export. The leading
// placeholder tempo becomes PAGE_SHIFT and notes are rebased to the real
// tempo's start. opts.PageShift is ignored.
func ConvertLegacy(chart parse.Chart, opts Options) (LegacyChart, error) {
	tempo, err := validate.LegacyMode(chart)
	if err != nil {
		return LegacyChart{}, err
	}
	if chart.TimeBase == 0 {
		return LegacyChart{}, validate.Invalid("time_base is 0")
	}

	shift := tickToSeconds(tempo.Tick, chart.TimeBase, tempo.Value)

	work := chart.Clone()
	work.EventOrders = []parse.EventOrder{}
	work.Tempos = []parse.Tempo{{Tick: 0, Value: tempo.Value}}
	for i := range work.Notes {
		n := &work.Notes[i]
		if n.Tick < tempo.Tick {
			return LegacyChart{}, validate.InvalidNote(n.ID, n.Tick, "note precedes offset tempo at tick %d", tempo.Tick)
		}
		n.Tick -= tempo.Tick
	}

	return convert(work, shift, opts.TolerateBrokenLinks)
}
