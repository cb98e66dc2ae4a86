package verify

import (
	"fmt"
	"strings"
)

// maxDetails caps how many findings one Error carries; large charts can
// produce thousands of identical complaints.
const maxDetails = 20

type Error struct {
	Stage   string
	Message string
	Details []string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Stage, e.Message)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "\n  - %s", d)
	}
	return b.String()
}

func NewError(stage, message string, details ...string) *Error {
	if len(details) > maxDetails {
		extra := len(details) - maxDetails
		details = append(details[:maxDetails:maxDetails], fmt.Sprintf("... and %d more", extra))
	}
	return &Error{Stage: stage, Message: message, Details: details}
}

func Fail(stage, format string, args ...interface{}) *Error {
	return &Error{Stage: stage, Message: fmt.Sprintf(format, args...)}
}
