package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/parse"
	"forge/validate"
)

// threePages has pages of 480 ticks scanning up, down, up. Note ids are
// deliberately sparse and out of tick order.
func threePages() parse.Chart {
	return parse.Chart{
		TimeBase: 480,
		Pages: []parse.Page{
			{StartTick: 0, EndTick: 480, ScanDirection: 1},
			{StartTick: 480, EndTick: 960, ScanDirection: -1},
			{StartTick: 960, EndTick: 1440, ScanDirection: 1},
		},
		Tempos: []parse.Tempo{{Tick: 0, Value: 500000}},
		Notes: []parse.Note{
			{ID: 10, Type: parse.Click, Tick: 240, X: 0.5, NextID: -1},
			{ID: 20, Type: parse.Hold, Tick: 0, X: 0.1, HoldTick: 120, NextID: -1},
			{ID: 30, Type: parse.LongHold, Tick: 360, X: 0.9, HoldTick: 720, NextID: -1},
			{ID: 40, Type: parse.Drag, Tick: 600, X: 0.2, NextID: 50, PageIndex: 1},
			{ID: 50, Type: parse.DragChild, Tick: 720, X: 0.4, NextID: -1, PageIndex: 1},
		},
	}
}

func heads(p PageView) []NoteView {
	var out []NoteView
	for _, v := range p.Notes {
		if !v.IsHoldBody() {
			out = append(out, v)
		}
	}
	return out
}

func bodies(p PageView) []NoteView {
	var out []NoteView
	for _, v := range p.Notes {
		if v.IsHoldBody() {
			out = append(out, v)
		}
	}
	return out
}

func TestBuildPositions(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)
	require.Len(t, l.Pages, 3)
	assert.Equal(t, uint32(480), l.TimeBase)

	p0 := heads(l.Pages[0])
	require.Len(t, p0, 3)
	assert.Equal(t, []uint32{0, 1, 2}, []uint32{p0[0].ID, p0[1].ID, p0[2].ID})
	assert.Equal(t, Position{X: 0.1, Y: 1}, p0[0].Position)
	assert.Equal(t, Position{X: 0.5, Y: 0.5}, p0[1].Position)
	assert.Equal(t, Position{X: 0.9, Y: 0.25}, p0[2].Position)

	p1 := heads(l.Pages[1])
	require.Len(t, p1, 2)
	assert.Equal(t, uint32(3), p1[0].ID)
	assert.Equal(t, int32(4), p1[0].NextID)
	assert.Equal(t, Position{X: 0.2, Y: 0.25}, p1[0].Position)
	assert.Equal(t, Position{X: 0.4, Y: 0.5}, p1[1].Position)

	assert.Empty(t, heads(l.Pages[2]))
}

func TestBuildDenseIDs(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)

	seen := map[uint32]int{}
	for _, p := range l.Pages {
		for _, v := range heads(p) {
			seen[v.ID]++
			assert.GreaterOrEqual(t, v.Position.X, 0.0)
			assert.LessOrEqual(t, v.Position.X, 1.0)
			assert.GreaterOrEqual(t, v.Position.Y, 0.0)
			assert.LessOrEqual(t, v.Position.Y, 1.0)
		}
	}
	assert.Equal(t, map[uint32]int{0: 1, 1: 1, 2: 1, 3: 1, 4: 1}, seen)
}

func TestBuildHoldBodies(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)

	b0 := bodies(l.Pages[0])
	require.Len(t, b0, 2)
	assert.Equal(t, uint32(0), b0[0].ID)
	assert.Equal(t, HoldBody{LongHold: false, WithTail: true, StartY: 1, EndY: 0.75}, *b0[0].HoldBody)
	assert.Equal(t, 1.0, b0[0].Position.Y)

	assert.Equal(t, uint32(2), b0[1].ID)
	assert.Equal(t, HoldBody{LongHold: true, WithTail: false, StartY: 0.25, EndY: 0}, *b0[1].HoldBody)

	b1 := bodies(l.Pages[1])
	require.Len(t, b1, 1)
	assert.Equal(t, HoldBody{LongHold: true, WithTail: false, StartY: 0, EndY: 1}, *b1[0].HoldBody)
	assert.Equal(t, 1, b1[0].PageIndex)

	b2 := bodies(l.Pages[2])
	require.Len(t, b2, 1)
	assert.Equal(t, HoldBody{LongHold: true, WithTail: true, StartY: 1, EndY: 0.75}, *b2[0].HoldBody)
}

func TestBuildHoldSpanContainment(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)

	for _, p := range l.Pages {
		for _, v := range bodies(p) {
			start := Fraction(v.HoldBody.StartY, p.ScanDirection)
			end := Fraction(v.HoldBody.EndY, p.ScanDirection)
			assert.LessOrEqual(t, start, end, "page %d note %d", p.PageIndex, v.ID)

			size := float64(p.EndTick - p.StartTick)
			lo := (float64(max(v.Tick, p.StartTick)) - float64(p.StartTick)) / size
			hi := (float64(min(uint64(v.Tick)+uint64(v.HoldTick), uint64(p.EndTick))) - float64(p.StartTick)) / size
			assert.InDelta(t, lo, start, 1e-9)
			assert.InDelta(t, hi, end, 1e-9)
		}
	}
}

func TestBuildHoldEndSaturates(t *testing.T) {
	c := threePages()
	c.Pages = c.Pages[:2]
	c.Notes = []parse.Note{{ID: 1, Type: parse.LongHold, Tick: 240, X: 0.5, HoldTick: 4294967200, NextID: -1}}

	l, err := Build(c)
	require.NoError(t, err)

	b0 := bodies(l.Pages[0])
	require.Len(t, b0, 1)
	assert.Equal(t, HoldBody{LongHold: true, WithTail: false, StartY: 0.5, EndY: 0}, *b0[0].HoldBody)

	b1 := bodies(l.Pages[1])
	require.Len(t, b1, 1)
	assert.Equal(t, HoldBody{LongHold: true, WithTail: false, StartY: 0, EndY: 1}, *b1[0].HoldBody)
}

func TestBuildDragArrows(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)

	p1 := heads(l.Pages[1])
	require.NotNil(t, p1[0].DragChild)
	assert.Equal(t, Position{X: 0.4, Y: 0.5}, *p1[0].DragChild)
	assert.Nil(t, p1[0].DragParent)
	require.NotNil(t, p1[1].DragParent)
	assert.Equal(t, Position{X: 0.2, Y: 0.25}, *p1[1].DragParent)
	assert.Nil(t, p1[1].DragChild)
}

func TestBuildGhosts(t *testing.T) {
	chart := threePages()
	chart.Pages[2].PositionFunction = &parse.PositionFunction{Arguments: [2]float64{0.5, 0}}
	l, err := Build(chart)
	require.NoError(t, err)

	assert.Equal(t, int32(-1), l.Pages[0].GhostScanDirection)
	assert.Equal(t, l.Pages[1].Notes, l.Pages[0].GhostNotes)
	assert.Equal(t, l.Pages[2].Notes, l.Pages[1].GhostNotes)
	require.NotNil(t, l.Pages[1].GhostPositionFunction)
	assert.Equal(t, 0.5, l.Pages[1].GhostPositionFunction.Arguments[0])
	assert.NotNil(t, l.Pages[2].GhostNotes)
	assert.Empty(t, l.Pages[2].GhostNotes)

	// ghost records are copies
	l.Pages[0].GhostNotes[0].Position.X = 0.99
	l.Pages[0].GhostNotes[0].DragChild.X = 0.99
	assert.Equal(t, 0.2, l.Pages[1].Notes[0].Position.X)
	assert.Equal(t, 0.4, l.Pages[1].Notes[0].DragChild.X)
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	chart := threePages()
	_, err := Build(chart)
	require.NoError(t, err)
	assert.Equal(t, threePages(), chart)
}

func TestBuildForwardNote(t *testing.T) {
	chart := threePages()
	chart.Notes = append(chart.Notes, parse.Note{
		ID: 60, Type: parse.Click, Tick: 500, X: 0.3, NextID: -1, PageIndex: 1, IsForward: true,
	})
	l, err := Build(chart)
	require.NoError(t, err)

	var found bool
	for _, v := range heads(l.Pages[0]) {
		if v.Tick == 500 {
			found = true
			assert.True(t, v.IsForward)
			assert.Equal(t, 0, v.PageIndex)
			assert.Equal(t, 0.0, v.Position.Y)
		}
	}
	assert.True(t, found)
}

func TestBuildLabels(t *testing.T) {
	labels := map[uint32]map[string]string{1: {"judge": "perfect"}}
	l, err := BuildWithLabels(threePages(), labels)
	require.NoError(t, err)

	p0 := heads(l.Pages[0])
	assert.Equal(t, map[string]string{"judge": "perfect"}, p0[1].Labels)
	assert.Nil(t, p0[0].Labels)

	labels[1]["judge"] = "miss"
	assert.Equal(t, "perfect", p0[1].Labels["judge"])
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*parse.Chart)
		kind   error
	}{
		{"no pages", func(c *parse.Chart) { c.Pages = nil }, validate.ErrEmptyChart},
		{"no tempos", func(c *parse.Chart) { c.Tempos = nil }, validate.ErrEmptyChart},
		{"missing next", func(c *parse.Chart) { c.Notes[3].NextID = 77 }, validate.ErrDanglingReference},
		{"page out of range", func(c *parse.Chart) { c.Notes[0].PageIndex = 3 }, validate.ErrDanglingReference},
		{"forward from first page", func(c *parse.Chart) { c.Notes[0].IsForward = true }, validate.ErrDanglingReference},
		{"duplicate id", func(c *parse.Chart) { c.Notes[1].ID = 10 }, validate.ErrInvalidChart},
		{"empty page", func(c *parse.Chart) { c.Pages[1].EndTick = 480 }, validate.ErrInvalidChart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := threePages()
			tt.mutate(&c)
			_, err := Build(c)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestNoteYDirectionSymmetry(t *testing.T) {
	for _, tick := range []uint32{0, 60, 240, 479, 480} {
		up := NoteY(tick, 0, 480, 1)
		down := NoteY(tick, 0, 480, -1)
		assert.InDelta(t, 1.0, up+down, 1e-12, "tick %d", tick)
		assert.InDelta(t, Fraction(up, 1), Fraction(down, -1), 1e-12)
	}
	assert.Equal(t, 0.0, NoteY(600, 0, 480, 1))
	assert.Equal(t, 1.0, NoteY(600, 0, 480, -1))
}

func TestScanlineSpeed(t *testing.T) {
	assert.InDelta(t, 240.0, ScanlineSpeed(500000, 480, 1), 1e-9)
	assert.InDelta(t, 120.0, ScanlineSpeed(500000, 480, 0.5), 1e-9)
	assert.Equal(t, 0.0, ScanlineSpeed(0, 480, 1))
	assert.Equal(t, 0.0, ScanlineSpeed(500000, 0, 1))
}

func TestScanlineStable(t *testing.T) {
	l, err := Build(threePages())
	require.NoError(t, err)

	s0 := l.Pages[0].Scanline
	assert.True(t, s0.Stable)
	assert.Equal(t, 240.0, s0.Min)
	assert.Equal(t, 240.0, s0.Max)
	assert.Equal(t, []ScanlineEvent{{Speed: 240, Y: 1, Type: Stable}}, s0.Events)

	s1 := l.Pages[1].Scanline
	assert.True(t, s1.Stable)
	assert.Equal(t, 240.0, s1.Min)
	assert.Empty(t, s1.Events)
	assert.NotNil(t, s1.Events)
}

func TestScanlineTempoChange(t *testing.T) {
	chart := threePages()
	chart.Tempos = append(chart.Tempos, parse.Tempo{Tick: 720, Value: 250000})
	chart.Pages[2].PositionFunction = &parse.PositionFunction{Arguments: [2]float64{0.5, 0}}

	l, err := Build(chart)
	require.NoError(t, err)

	s1 := l.Pages[1].Scanline
	assert.False(t, s1.Stable)
	assert.Equal(t, 240.0, s1.Min)
	assert.Equal(t, 480.0, s1.Max)
	assert.Equal(t, []ScanlineEvent{{Speed: 480, Y: 0.5, Type: Accelerate}}, s1.Events)
	assert.Equal(t, []parse.Tempo{{Tick: 720, Value: 250000}}, l.Pages[1].Tempos)

	// the shorter playfield halves the speed carried into page 2
	s2 := l.Pages[2].Scanline
	assert.True(t, s2.Stable)
	assert.Equal(t, 240.0, s2.Min)
	assert.Equal(t, []ScanlineEvent{{Speed: 240, Y: 1, Type: Decelerate}}, s2.Events)
}

func TestScanlineZeroTempo(t *testing.T) {
	chart := threePages()
	chart.Tempos = []parse.Tempo{{Tick: 0, Value: 0}, {Tick: 240, Value: 500000}}

	l, err := Build(chart)
	require.NoError(t, err)

	s0 := l.Pages[0].Scanline
	assert.Equal(t, 0.0, s0.Min)
	assert.Equal(t, 240.0, s0.Max)
	assert.False(t, s0.Stable)
	require.Len(t, s0.Events, 2)
	assert.Equal(t, Accelerate, s0.Events[1].Type)
}

func TestScanlineEventTypeText(t *testing.T) {
	for _, typ := range []ScanlineEventType{Stable, Accelerate, Decelerate} {
		text, err := typ.MarshalText()
		require.NoError(t, err)
		var back ScanlineEventType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, typ, back)
	}
}
