package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrInvalidChart              = errors.New("invalid chart")
	ErrMissingLegacyMarker       = errors.New("missing legacy marker")
	ErrInvalidTempoForLegacyMode = errors.New("invalid tempo for legacy mode")
	ErrDanglingReference         = errors.New("dangling reference")
	ErrEmptyChart                = errors.New("empty chart")
)

// NoRef marks an absent tick or id on an Error.
const NoRef = -1

type Error struct {
	Kind    error
	Tick    int64
	ID      int64
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.ID != NoRef {
		fmt.Fprintf(&b, ": note %d", e.ID)
	}
	if e.Tick != NoRef {
		fmt.Fprintf(&b, ": tick %d", e.Tick)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Tick: NoRef, ID: NoRef, Message: fmt.Sprintf(format, args...)}
}

func atNote(kind error, id, tick uint32, format string, args ...any) *Error {
	e := newError(kind, format, args...)
	e.ID = int64(id)
	e.Tick = int64(tick)
	return e
}

func atTick(kind error, tick uint32, format string, args ...any) *Error {
	e := newError(kind, format, args...)
	e.Tick = int64(tick)
	return e
}

func Invalid(format string, args ...any) *Error {
	return newError(ErrInvalidChart, format, args...)
}

func InvalidNote(id, tick uint32, format string, args ...any) *Error {
	return atNote(ErrInvalidChart, id, tick, format, args...)
}

func Dangling(id, tick uint32, format string, args ...any) *Error {
	return atNote(ErrDanglingReference, id, tick, format, args...)
}

func Empty(format string, args ...any) *Error {
	return newError(ErrEmptyChart, format, args...)
}
