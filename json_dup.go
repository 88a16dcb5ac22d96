package jsoncomb

import (
	"io"

	eng "github.com/reoring/jsoncomb/internal/engine"
)

// DuplicateKeys lists the JSON Pointer of every repeated object key in data,
// in document order. Parsing keeps only the last value of such keys, so this
// is how callers find out what was dropped. maxReports < 0 means unlimited.
func DuplicateKeys(data []byte, maxReports int) ([]string, error) {
	src := eng.NewBytes(data)
	paths, err := eng.Duplicates(src, maxReports)
	if err != nil {
		return paths, &ParseError{Driver: "go-json", Offset: src.Location(), Err: err}
	}
	return paths, nil
}

// DuplicateKeysReader is DuplicateKeys over a reader; r is consumed.
func DuplicateKeysReader(r io.Reader, maxReports int) ([]string, error) {
	src := eng.NewReader(r)
	paths, err := eng.Duplicates(src, maxReports)
	if err != nil {
		return paths, &ParseError{Driver: "go-json", Offset: src.Location(), Err: err}
	}
	return paths, nil
}
