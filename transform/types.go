package transform

// LegacyVersion is the VERSION header written for every converted chart.
const LegacyVersion = 2

type LegacyNote struct {
	ID         uint32
	Time       float64
	X          float64
	HoldLength float64
}

// Link is one drag chain as an ordered list of note ids.
type Link struct {
	IDs []uint32
}

// LegacyChart is a Cytus1 chart: one global tempo, fixed-size pages and
// note times in seconds.
type LegacyChart struct {
	Version   uint32
	BPM       float64
	PageShift float64
	PageSize  float64
	Notes     []LegacyNote
	Links     []Link
}

type Options struct {
	// Legacy enables page-shift mode: the chart must carry the legacy marker
	// and PageShift is computed from its offset tempo instead.
	Legacy    bool
	PageShift float64
	// TolerateBrokenLinks truncates a drag chain at a missing next_id
	// instead of failing the conversion.
	TolerateBrokenLinks bool
}
