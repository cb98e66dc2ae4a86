package pipeline

import (
	"forge/layout"
	"forge/transform"
)

// Output is everything produced from one chart's bytes. It is shared through
// the cache and must not be modified.
type Output struct {
	Converted  transform.LegacyChart
	Text       string
	Layout     layout.Layout
	LayoutJSON []byte
	PNG        []byte
	// BrokenLinks counts next_id references cut before conversion.
	BrokenLinks int
	// ConvertErr and LayoutErr record a failed stage. The other stage's
	// products are still valid.
	ConvertErr error
	LayoutErr  error
}

type Result struct {
	Input string
	Files []string
	Notes int
	Links int
	Pages int
	BPM   float64
	// BrokenLinks counts drag chains truncated at a missing note.
	BrokenLinks int
	Cached      bool
	// Err is set when the chart was not converted. Preview files may still
	// have been written.
	Err error
	// LayoutErr is set when no layout could be built for a converted chart.
	LayoutErr error
}

type Report struct {
	Results []Result
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
