package zdump

import (
	"errors"

	"github.com/ngrash/go-zdump/posixtz"
	"github.com/ngrash/go-zdump/tzif"
)

var (
	// ErrInvalidInterval is returned when a query ends before it starts.
	ErrInvalidInterval = errors.New("zdump: end before start")
	// ErrDirPath is reported when no zone information directory exists.
	ErrDirPath = errors.New("zdump: zoneinfo directory not found")
	// ErrOpen is reported when a zone file cannot be opened.
	ErrOpen = errors.New("zdump: cannot open zone file")
	// ErrRead is reported when a zone file cannot be read.
	ErrRead = errors.New("zdump: cannot read zone file")
	// ErrBufferLimit is returned when a result would exceed the entry
	// limit set with WithMaxEntries.
	ErrBufferLimit = errors.New("zdump: result buffer limit exceeded")
)

// Exit codes reported by Code.
const (
	CodeSuccess   = 0
	CodeFailure   = -1
	CodeBadValues = 5001 // end before start
	CodeDirPath   = 5002 // zoneinfo directory not found
	CodeOpen      = 5003 // zone file not found
	CodeRead      = 5004 // zone file unreadable
	CodeAlloc     = 5005 // result buffer limit exceeded
	CodeHeader    = 5006 // malformed TZif data
	CodeRule      = 5007 // malformed TZ rule string
)

// Code maps err to one of the Code constants.
func Code(err error) int {
	var (
		fe *tzif.FormatError
		be *tzif.BoundsError
		re *posixtz.RuleError
	)
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrInvalidInterval):
		return CodeBadValues
	case errors.Is(err, ErrDirPath):
		return CodeDirPath
	case errors.Is(err, ErrOpen):
		return CodeOpen
	case errors.Is(err, ErrRead):
		return CodeRead
	case errors.Is(err, ErrBufferLimit):
		return CodeAlloc
	case errors.As(err, &fe), errors.As(err, &be):
		return CodeHeader
	case errors.As(err, &re):
		return CodeRule
	}
	return CodeFailure
}
