package parse

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = `{
  "format_version": 0,
  "time_base": 480,
  "start_offset_time": 0.0,
  "page_list": [
    {"start_tick": 0, "end_tick": 480, "scan_line_direction": 1},
    {"start_tick": 480, "end_tick": 960, "scan_line_direction": -1,
     "PositionFunction": {"Type": 0, "Arguments": [0.5, 0.25]}}
  ],
  "tempo_list": [{"tick": 0, "value": 500000}],
  "event_order_list": [],
  "note_list": [
    {"page_index": 0, "type": 3, "id": 0, "tick": 120, "x": 0.25, "has_sibling": false,
     "hold_tick": 0, "next_id": 1, "is_forward": false},
    {"page_index": 1, "type": 4, "id": 1, "tick": 600, "x": 0.75, "has_sibling": true,
     "hold_tick": 0, "next_id": -1, "is_forward": true, "NoteDirection": 1, "approach_rate": 1.5}
  ]
}`

func TestParse(t *testing.T) {
	chart, err := Parse([]byte(sampleChart))
	require.NoError(t, err)

	assert.Equal(t, uint32(480), chart.TimeBase)
	require.Len(t, chart.Pages, 2)
	assert.Equal(t, int32(-1), chart.Pages[1].ScanDirection)
	require.NotNil(t, chart.Pages[1].PositionFunction)
	assert.Equal(t, [2]float64{0.5, 0.25}, chart.Pages[1].PositionFunction.Arguments)
	assert.Equal(t, 0.5, chart.Pages[1].Height())
	assert.Equal(t, 1.0, chart.Pages[0].Height())

	require.Len(t, chart.Notes, 2)
	assert.Equal(t, Drag, chart.Notes[0].Type)
	assert.Equal(t, int32(1), chart.Notes[0].NextID)
	assert.True(t, chart.Notes[0].HasNext())
	assert.False(t, chart.Notes[1].HasNext())
	assert.Equal(t, 0, chart.Notes[1].ResolvedPage())
	require.NotNil(t, chart.Notes[1].FallingDirection)
	assert.Equal(t, uint32(1), *chart.Notes[1].FallingDirection)
	require.NotNil(t, chart.Notes[1].ApproachRate)
	assert.Equal(t, 1.5, *chart.Notes[1].ApproachRate)
	assert.Nil(t, chart.Notes[0].ApproachRate)
}

func TestParseByteOrderMark(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"utf8", append([]byte{0xEF, 0xBB, 0xBF}, sampleChart...)},
		{"utf16le", utf16LE(sampleChart)},
		{"plain", []byte(sampleChart)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Len(t, chart.Notes, 2)
			assert.Equal(t, uint32(480), chart.TimeBase)
		})
	}
}

func utf16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"page_list": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode chart")
}

func TestMarshalRoundTrip(t *testing.T) {
	chart, err := Parse([]byte(sampleChart))
	require.NoError(t, err)

	raw, err := Marshal(chart)
	require.NoError(t, err)
	back, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, chart, back)
}

func TestNoteType(t *testing.T) {
	assert.Equal(t, "Click", Click.String())
	assert.Equal(t, "DropDrag", DropDrag.String())
	assert.Equal(t, "Custom(42)", NoteType(42).String())
	assert.True(t, ClickDrag.Known())
	assert.False(t, NoteType(10).Known())
	assert.True(t, LongHold.IsHold())
	assert.False(t, Drag.IsHold())
	assert.True(t, ClickDragChild.Links())
	assert.False(t, Flick.Links())
}

func TestCloneIsIndependent(t *testing.T) {
	chart, err := Parse([]byte(sampleChart))
	require.NoError(t, err)
	chart.EventOrders = []EventOrder{{Tick: 0, Events: []Event{{Type: 1, Args: "a"}}}}

	c := chart.Clone()
	c.Pages[1].PositionFunction.Arguments[0] = 9
	c.Notes[0].X = 0.9
	*c.Notes[1].ApproachRate = 7
	c.Tempos[0].Value = 1
	c.EventOrders[0].Events[0].Args = "b"

	assert.Equal(t, 0.5, chart.Pages[1].PositionFunction.Arguments[0])
	assert.Equal(t, 0.25, chart.Notes[0].X)
	assert.Equal(t, 1.5, *chart.Notes[1].ApproachRate)
	assert.Equal(t, uint32(500000), chart.Tempos[0].Value)
	assert.Equal(t, "a", chart.EventOrders[0].Events[0].Args)
}

func TestSortInternalData(t *testing.T) {
	c := Chart{
		TimeBase: 480,
		Pages: []Page{
			{StartTick: 480, EndTick: 960, ScanDirection: -1},
			{StartTick: 0, EndTick: 480, ScanDirection: 1},
		},
		Tempos: []Tempo{{Tick: 480, Value: 2}, {Tick: 0, Value: 1}},
		Notes: []Note{
			{ID: 5, Tick: 600, PageIndex: 0},
			{ID: 3, Tick: 100, PageIndex: 1},
			{ID: 1, Tick: 600, PageIndex: 0},
		},
	}
	c.SortInternalData()

	assert.Equal(t, uint32(0), c.Pages[0].StartTick)
	assert.Equal(t, uint32(0), c.Tempos[0].Tick)
	assert.Equal(t, []uint32{3, 1, 5}, []uint32{c.Notes[0].ID, c.Notes[1].ID, c.Notes[2].ID})
	// page indices follow the moved pages
	assert.Equal(t, uint32(0), c.Notes[0].PageIndex)
	assert.Equal(t, uint32(1), c.Notes[1].PageIndex)
	assert.Equal(t, uint32(1), c.Notes[2].PageIndex)
	assert.Equal(t, uint32(480), c.FirstPageSize())
}

func TestPageHelpers(t *testing.T) {
	p := Page{StartTick: 100, EndTick: 200}
	assert.Equal(t, uint32(100), p.Size())
	assert.True(t, p.Contains(100))
	assert.False(t, p.Contains(200))
	assert.Equal(t, uint32(0), Page{StartTick: 5, EndTick: 1}.Size())
	assert.Equal(t, uint32(0), Chart{}.FirstPageSize())
	assert.Equal(t, uint32(150), Note{Tick: 100, HoldTick: 50}.EndTick())
	assert.Equal(t, uint32(math.MaxUint32), Note{Tick: 240, HoldTick: math.MaxUint32 - 95}.EndTick())
}

func TestParseProject(t *testing.T) {
	raw := []byte(`{
  "Version": 1,
  "ChartInfos": [
    {"DiffName": "EASY", "Diff": "3", "FileName": "charts/easy.json", "Bg": "bg.png", "SongName": "song"},
    {"DiffName": "HARD", "Diff": "9", "FileName": ""},
    {"DiffName": "CHAOS", "Diff": "14", "FileName": "chaos.json"}
  ],
  "LastEditedTime": 1700000000
}`)
	p, err := ParseProject(raw)
	require.NoError(t, err)
	require.Len(t, p.ChartInfos, 3)
	assert.Equal(t, "bg.png", p.ChartInfos[0].Background)
	assert.Nil(t, p.LastOpenedChart)

	dir := filepath.Join("songs", "demo")
	assert.Equal(t, []string{
		filepath.Join(dir, "charts", "easy.json"),
		filepath.Join(dir, "chaos.json"),
	}, p.ChartPaths(dir))
}

func TestParseLevel(t *testing.T) {
	raw := []byte("\xef\xbb\xbf" + `{
  "schema_version": 2,
  "version": 1,
  "id": "demo.level",
  "title": "Demo",
  "artist": "someone",
  "illustrator": "someone else",
  "charter": "me",
  "music": {"path": "music.ogg"},
  "music_preview": {"path": "preview.ogg"},
  "background": {"path": "bg.png"},
  "charts": [
    {"type": "easy", "name": "EASY", "difficulty": 3, "path": "easy.json"},
    {"type": "hard", "name": "HARD", "difficulty": 11.5, "path": "charts/hard.json",
     "storyboard": {"path": "sb.json"}},
    {"type": "extreme", "difficulty": 15, "path": ""}
  ]
}`)
	l, err := ParseLevel(raw)
	require.NoError(t, err)
	assert.Equal(t, "demo.level", l.ID)
	assert.Equal(t, "bg.png", l.Background.Path)
	require.Len(t, l.Charts, 3)
	assert.Equal(t, 11.5, l.Charts[1].Difficulty)
	require.NotNil(t, l.Charts[1].Storyboard)
	assert.Nil(t, l.Charts[0].MusicOverride)

	dir := filepath.Join("levels", "demo")
	assert.Equal(t, []string{
		filepath.Join(dir, "easy.json"),
		filepath.Join(dir, "charts", "hard.json"),
	}, l.ChartPaths(dir))

	_, err = ParseLevel([]byte("{"))
	assert.Error(t, err)
}
