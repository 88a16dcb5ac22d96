package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Segment is one step of a Path: an object member or an array index.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

// Path is the location of a failure, outermost segment first.
type Path []Segment

// Pointer renders the path as an RFC 6901 JSON Pointer. The root is "", so
// it stays distinct from "/", the member named "".
func (p Path) Pointer() string {
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.Field, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// String renders the path in accessor form, e.g. $.items[2]["odd key"].
func (p Path) String() string {
	b := &strings.Builder{}
	b.WriteByte('$')
	for _, s := range p {
		switch {
		case s.IsIndex:
			fmt.Fprintf(b, "[%d]", s.Index)
		case isIdent(s.Field):
			b.WriteByte('.')
			b.WriteString(s.Field)
		default:
			fmt.Fprintf(b, "[%s]", strconv.Quote(s.Field))
		}
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Issue is one leaf failure with its location.
type Issue struct {
	Path    Path
	Code    string
	Message string
}

// Issues is a flattened decode failure that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", iss[i].Path, iss[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Flatten walks an error tree depth-first and returns its leaf failures in
// discovery order. Errors that are not decode errors become a single
// parse_error issue at the root.
func Flatten(err error) Issues {
	if err == nil {
		return nil
	}
	var de Error
	if !errors.As(err, &de) {
		return Issues{{Path: Path{}, Code: CodeParseError, Message: err.Error()}}
	}
	var out Issues
	flatten(de, Path{}, &out)
	return out
}

func flatten(e Error, p Path, out *Issues) {
	switch v := e.(type) {
	case *AtField:
		flatten(v.Cause, append(p[:len(p):len(p)], Segment{Field: v.Name}), out)
	case *AtIndex:
		flatten(v.Cause, append(p[:len(p):len(p)], Segment{Index: v.Index, IsIndex: true}), out)
	case *Multiple:
		for _, c := range v.Errors {
			flatten(c, p, out)
		}
	case *TypeMismatch:
		*out = append(*out, Issue{Path: p, Code: CodeInvalidType, Message: v.Error()})
	case *NotFound:
		*out = append(*out, Issue{Path: p, Code: CodeNotFound, Message: v.Error()})
	default:
		*out = append(*out, Issue{Path: p, Code: CodeCustom, Message: e.Error()})
	}
}
