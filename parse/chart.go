package parse

import "math"

// Chart is a Cylheim chart as stored on disk. Field names follow the JSON
// schema written by the editor.
type Chart struct {
	FormatVersion    uint32       `json:"format_version"`
	TimeBase         uint32       `json:"time_base"`
	StartOffsetTime  float64      `json:"start_offset_time"`
	EndOffsetTime    *float64     `json:"end_offset_time,omitempty"`
	IsStartWithoutUI *bool        `json:"is_start_without_ui,omitempty"`
	Pages            []Page       `json:"page_list"`
	Tempos           []Tempo      `json:"tempo_list"`
	EventOrders      []EventOrder `json:"event_order_list"`
	Notes            []Note       `json:"note_list"`
}

type Page struct {
	StartTick        uint32            `json:"start_tick"`
	EndTick          uint32            `json:"end_tick"`
	ScanDirection    int32             `json:"scan_line_direction"`
	PositionFunction *PositionFunction `json:"PositionFunction,omitempty"`
}

// PositionFunction scales the playfield of a page. Arguments[0] is the
// height ratio and Arguments[1] the vertical offset ratio.
type PositionFunction struct {
	Type      uint32     `json:"Type"`
	Arguments [2]float64 `json:"Arguments"`
}

type Tempo struct {
	Tick  uint32 `json:"tick"`
	Value uint32 `json:"value"`
}

type EventOrder struct {
	Tick   uint32  `json:"tick"`
	Events []Event `json:"event_list"`
}

type Event struct {
	Type uint32 `json:"type"`
	Args string `json:"args"`
}

type Note struct {
	PageIndex        uint32   `json:"page_index"`
	Type             NoteType `json:"type"`
	ID               uint32   `json:"id"`
	Tick             uint32   `json:"tick"`
	X                float64  `json:"x"`
	HasSibling       bool     `json:"has_sibling"`
	HoldTick         uint32   `json:"hold_tick"`
	NextID           int32    `json:"next_id"`
	IsForward        bool     `json:"is_forward"`
	FallingDirection *uint32  `json:"NoteDirection,omitempty"`
	ApproachRate     *float64 `json:"approach_rate,omitempty"`
}

// Size returns the page length in ticks.
func (p Page) Size() uint32 {
	if p.EndTick < p.StartTick {
		return 0
	}
	return p.EndTick - p.StartTick
}

// Height returns the position function height ratio, 1.0 without one.
func (p Page) Height() float64 {
	if p.PositionFunction == nil {
		return 1.0
	}
	return p.PositionFunction.Arguments[0]
}

// Contains reports whether tick lies in [StartTick, EndTick).
func (p Page) Contains(tick uint32) bool {
	return tick >= p.StartTick && tick < p.EndTick
}

// ResolvedPage is the page the note is displayed on. Forward notes are shown
// one page early.
func (n Note) ResolvedPage() int {
	if n.IsForward {
		return int(n.PageIndex) - 1
	}
	return int(n.PageIndex)
}

// EndTick is the tick where the note's hold ends, saturated at
// math.MaxUint32.
func (n Note) EndTick() uint32 {
	return uint32(min(uint64(n.Tick)+uint64(n.HoldTick), math.MaxUint32))
}

func (n Note) HasNext() bool {
	return n.NextID >= 0
}
