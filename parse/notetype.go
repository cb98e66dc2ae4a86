package parse

import "fmt"

type NoteType uint32

const (
	Click NoteType = iota
	Hold
	LongHold
	Drag
	DragChild
	Flick
	ClickDrag
	ClickDragChild
	DropClick
	DropDrag
)

var noteTypeNames = [...]string{
	Click:          "Click",
	Hold:           "Hold",
	LongHold:       "LongHold",
	Drag:           "Drag",
	DragChild:      "DragChild",
	Flick:          "Flick",
	ClickDrag:      "ClickDrag",
	ClickDragChild: "ClickDragChild",
	DropClick:      "DropClick",
	DropDrag:       "DropDrag",
}

func (t NoteType) String() string {
	if int(t) < len(noteTypeNames) {
		return noteTypeNames[t]
	}
	return fmt.Sprintf("Custom(%d)", uint32(t))
}

// Known reports whether t is one of the editor's built-in note types.
func (t NoteType) Known() bool {
	return int(t) < len(noteTypeNames)
}

func (t NoteType) IsHold() bool {
	return t == Hold || t == LongHold
}

// Links reports whether notes of this type point at a successor through
// next_id and are drawn with a drag arrow.
func (t NoteType) Links() bool {
	switch t {
	case Drag, DragChild, ClickDrag, ClickDragChild:
		return true
	}
	return false
}
