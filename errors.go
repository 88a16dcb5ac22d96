package jsoncomb

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrKind is returned by Node accessors called on the wrong kind.
	ErrKind = errors.New("jsoncomb: wrong node kind")
	// ErrDepth reports that MaxDepth was exceeded while parsing.
	ErrDepth = errors.New("jsoncomb: max depth exceeded")
	// ErrDuplicateKey reports a repeated object key under OnDuplicateKey=Error.
	ErrDuplicateKey = errors.New("jsoncomb: duplicate key")
	// ErrTrailingData reports input after the top-level value.
	ErrTrailingData = errors.New("jsoncomb: trailing data")
)

// KindError builds the error returned by an accessor called on the wrong kind.
func KindError(want, got Kind) error {
	return errors.Wrapf(ErrKind, "expected %s, got %s", want, got)
}

// ParseError is returned by drivers when input cannot be turned into a tree.
type ParseError struct {
	Driver string
	Path   string // JSON Pointer, empty when unknown
	Offset int64  // byte offset, -1 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Driver + ": " + e.Err.Error()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }
