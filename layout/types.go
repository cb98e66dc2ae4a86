// Package layout builds the per-page preview model of a chart: note
// positions, hold bodies across pages, drag arrows and scanline speed.
package layout

import "forge/parse"

type Layout struct {
	TimeBase uint32     `json:"time_base"`
	Pages    []PageView `json:"pages"`
}

type PageView struct {
	TimeBase              uint32                  `json:"time_base"`
	PageIndex             int                     `json:"page_index"`
	StartTick             uint32                  `json:"start_tick"`
	EndTick               uint32                  `json:"end_tick"`
	ScanDirection         int32                   `json:"scan_line_direction"`
	GhostScanDirection    int32                   `json:"ghost_scan_line_direction"`
	Tempos                []parse.Tempo           `json:"tempo_list"`
	Notes                 []NoteView              `json:"note_list"`
	GhostNotes            []NoteView              `json:"ghost_note_list"`
	PositionFunction      *parse.PositionFunction `json:"PositionFunction,omitempty"`
	GhostPositionFunction *parse.PositionFunction `json:"GhostPositionFunction,omitempty"`
	Scanline              ScanlineInfo            `json:"scanline"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NoteView struct {
	PageIndex  int            `json:"page_index"`
	Type       parse.NoteType `json:"type"`
	ID         uint32         `json:"id"`
	Tick       uint32         `json:"tick"`
	Position   Position       `json:"position"`
	HasSibling bool           `json:"has_sibling"`
	// HoldBody is set only on synthesized hold-body records.
	HoldBody *HoldBody `json:"hold_body_handler,omitempty"`
	// DragParent is the position of the drag note pointing at this one.
	DragParent *Position `json:"drag_parent_pos,omitempty"`
	// DragChild is the position of this note's successor.
	DragChild        *Position         `json:"drag_child_pos,omitempty"`
	HoldTick         uint32            `json:"hold_tick"`
	NextID           int32             `json:"next_id"`
	IsForward        bool              `json:"is_forward"`
	FallingDirection *uint32           `json:"NoteDirection,omitempty"`
	ApproachRate     *float64          `json:"approach_rate,omitempty"`
	Labels           map[string]string `json:"label,omitempty"`
}

type HoldBody struct {
	LongHold bool    `json:"is_long_hold"`
	WithTail bool    `json:"with_tail"`
	StartY   float64 `json:"start_y"`
	EndY     float64 `json:"end_y"`
}

type ScanlineInfo struct {
	Stable bool            `json:"is_stable"`
	Min    float64         `json:"min_scanline"`
	Max    float64         `json:"max_scanline"`
	Events []ScanlineEvent `json:"scanline_event"`
}

type ScanlineEvent struct {
	Speed float64           `json:"scanline"`
	Y     float64           `json:"y"`
	Type  ScanlineEventType `json:"event_type"`
}

type ScanlineEventType int

const (
	Stable ScanlineEventType = iota
	Accelerate
	Decelerate
)

func (t ScanlineEventType) String() string {
	switch t {
	case Accelerate:
		return "Accelerate"
	case Decelerate:
		return "Decelerate"
	}
	return "Stable"
}

func (t ScanlineEventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ScanlineEventType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Accelerate":
		*t = Accelerate
	case "Decelerate":
		*t = Decelerate
	default:
		*t = Stable
	}
	return nil
}

// IsHoldBody reports whether v is a synthesized hold-body record rather than
// a note head.
func (v NoteView) IsHoldBody() bool {
	return v.HoldBody != nil
}

func (v NoteView) clone() NoteView {
	out := v
	if v.HoldBody != nil {
		hb := *v.HoldBody
		out.HoldBody = &hb
	}
	out.DragParent = clonePos(v.DragParent)
	out.DragChild = clonePos(v.DragChild)
	if v.FallingDirection != nil {
		d := *v.FallingDirection
		out.FallingDirection = &d
	}
	if v.ApproachRate != nil {
		r := *v.ApproachRate
		out.ApproachRate = &r
	}
	if v.Labels != nil {
		out.Labels = make(map[string]string, len(v.Labels))
		for k, val := range v.Labels {
			out.Labels[k] = val
		}
	}
	return out
}

func clonePos(p *Position) *Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneViews(views []NoteView) []NoteView {
	out := make([]NoteView, len(views))
	for i, v := range views {
		out[i] = v.clone()
	}
	return out
}

func clonePositionFunction(pf *parse.PositionFunction) *parse.PositionFunction {
	if pf == nil {
		return nil
	}
	c := *pf
	return &c
}
