package decode

import (
	"strings"

	"github.com/reoring/jsoncomb/i18n"
)

// Error codes used when flattening an Error into Issues.
const (
	CodeInvalidType = "invalid_type"
	CodeNotFound    = "not_found"
	CodeCustom      = "custom"
	CodeParseError  = "parse_error"
)

// Error is a decode failure. It is a closed set of variants: TypeMismatch,
// NotFound, AtField, AtIndex, Multiple and Custom. Paths are recorded by
// wrapping one segment per AtField/AtIndex, so the location of every leaf can
// be reconstructed with Flatten.
type Error interface {
	error
	isDecodeError()
}

// TypeMismatch reports a node of the wrong kind.
type TypeMismatch struct {
	Expected string
	Actual   string
}

// NotFound reports a missing object key or an out-of-range array index.
type NotFound struct{}

// AtField locates Cause under the object member Name.
type AtField struct {
	Name  string
	Cause Error
}

// AtIndex locates Cause under the array element Index.
type AtIndex struct {
	Index int
	Cause Error
}

// Multiple holds sibling failures in the order they were discovered.
type Multiple struct {
	Errors []Error
}

// Custom is a failure raised by user code, typically a validation.
type Custom struct {
	Message string
}

func (*TypeMismatch) isDecodeError() {}
func (*NotFound) isDecodeError()     {}
func (*AtField) isDecodeError()      {}
func (*AtIndex) isDecodeError()      {}
func (*Multiple) isDecodeError()     {}
func (*Custom) isDecodeError()       {}

func (e *TypeMismatch) Error() string {
	return i18n.T(CodeInvalidType, map[string]string{"expected": e.Expected, "actual": e.Actual})
}

func (*NotFound) Error() string { return i18n.T(CodeNotFound, nil) }

func (e *Custom) Error() string { return e.Message }

func (e *AtField) Error() string  { return Flatten(e).Error() }
func (e *AtIndex) Error() string  { return Flatten(e).Error() }
func (e *Multiple) Error() string { return Flatten(e).Error() }

func (e *AtField) Unwrap() error { return e.Cause }
func (e *AtIndex) Unwrap() error { return e.Cause }

func (e *Multiple) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, c := range e.Errors {
		out[i] = c
	}
	return out
}

// Render returns a multi-line report with one "path: message" line per leaf
// failure. Errors that are not decode errors render as their message.
func Render(err error) string {
	if err == nil {
		return ""
	}
	iss := Flatten(err)
	b := &strings.Builder{}
	for i, it := range iss {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(it.Path.String())
		b.WriteString(": ")
		b.WriteString(it.Message)
	}
	return b.String()
}
