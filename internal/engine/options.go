package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness selects how repeated object keys are treated.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupError
)

// BuildOptions controls enforcement while building a tree.
type BuildOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
}

// Build error codes.
const (
	CodeDepth     = "max_depth"
	CodeDuplicate = "duplicate_key"
	CodeTrailing  = "trailing_data"
)

// BuildError reports an enforcement failure at a JSON Pointer path.
type BuildError struct {
	Code    string
	Path    string
	Offset  int64
	Message string
}

func (e *BuildError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Message + " at " + e.Path
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// escape applies RFC 6901 escaping to a single reference token.
func escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func itoa(i int) string { return strconv.Itoa(i) }
