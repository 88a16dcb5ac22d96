package encode

import (
	"io"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v2"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const flushThreshold = 4096

// StreamOption configures a StreamWriter.
type StreamOption func(*StreamWriter)

// WithIndent writes one member or element per line, indented by indent per
// nesting level.
func WithIndent(indent string) StreamOption {
	return func(s *StreamWriter) { s.indent = indent }
}

// WithEscapeHTML escapes <, > and & inside strings.
func WithEscapeHTML(on bool) StreamOption {
	return func(s *StreamWriter) { s.escapeHTML = on }
}

// StreamWriter is a Writer that serializes JSON text to an io.Writer. Output
// is buffered; the first I/O error is kept and returned by Flush, later
// writes are dropped. Non-finite floats and decimals are written as null.
type StreamWriter struct {
	out        io.Writer
	buf        []byte
	indent     string
	escapeHTML bool
	counts     []int // entries written per open container
	afterKey   bool
	err        error
}

var _ Writer = (*StreamWriter)(nil)

// NewStreamWriter returns a StreamWriter over w.
func NewStreamWriter(w io.Writer, opts ...StreamOption) *StreamWriter {
	s := &StreamWriter{out: w}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *StreamWriter) WriteStartObject() { s.open('{') }
func (s *StreamWriter) WriteEndObject()   { s.close('}') }
func (s *StreamWriter) WriteStartArray()  { s.open('[') }
func (s *StreamWriter) WriteEndArray()    { s.close(']') }

func (s *StreamWriter) WriteField(key string) {
	s.entry()
	s.appendString(key)
	s.buf = append(s.buf, ':')
	if s.indent != "" {
		s.buf = append(s.buf, ' ')
	}
	s.afterKey = true
}

func (s *StreamWriter) WriteNull() {
	s.value()
	s.buf = append(s.buf, "null"...)
	s.maybeFlush()
}

func (s *StreamWriter) WriteBool(b bool) {
	s.value()
	s.buf = strconv.AppendBool(s.buf, b)
	s.maybeFlush()
}

func (s *StreamWriter) WriteString(str string) {
	s.value()
	s.appendString(str)
	s.maybeFlush()
}

func (s *StreamWriter) WriteNumber(n Number) {
	s.value()
	switch n := n.(type) {
	case Integer:
		s.buf = strconv.AppendInt(s.buf, int64(n), 10)
	case Float:
		s.buf = appendFloat(s.buf, float64(n))
	case Decimal:
		if n.d != nil && n.d.Form != apd.Finite {
			s.buf = append(s.buf, "null"...)
			break
		}
		s.buf = append(s.buf, n.String()...)
	default:
		s.buf = append(s.buf, "null"...)
	}
	s.maybeFlush()
}

// Flush writes buffered output and returns the first error seen.
func (s *StreamWriter) Flush() error {
	if s.err == nil && len(s.buf) > 0 {
		if _, err := s.out.Write(s.buf); err != nil {
			s.err = errors.Wrap(err, "encode: write")
		}
	}
	s.buf = s.buf[:0]
	return s.err
}

func (s *StreamWriter) open(c byte) {
	s.value()
	s.buf = append(s.buf, c)
	s.counts = append(s.counts, 0)
}

func (s *StreamWriter) close(c byte) {
	n := len(s.counts)
	if n == 0 {
		return
	}
	entries := s.counts[n-1]
	s.counts = s.counts[:n-1]
	if entries > 0 {
		s.newline()
	}
	s.buf = append(s.buf, c)
	s.maybeFlush()
}

// value prepares the separator for a value; after a key there is none.
func (s *StreamWriter) value() {
	if s.afterKey {
		s.afterKey = false
		return
	}
	s.entry()
}

func (s *StreamWriter) entry() {
	n := len(s.counts)
	if n == 0 {
		return
	}
	if s.counts[n-1] > 0 {
		s.buf = append(s.buf, ',')
	}
	s.counts[n-1]++
	s.newline()
}

func (s *StreamWriter) newline() {
	if s.indent == "" {
		return
	}
	s.buf = append(s.buf, '\n')
	for range len(s.counts) {
		s.buf = append(s.buf, s.indent...)
	}
}

func (s *StreamWriter) appendString(str string) {
	var (
		b   []byte
		err error
	)
	if s.escapeHTML {
		b, err = json.Marshal(str)
	} else {
		b, err = json.MarshalNoEscape(str)
	}
	if err != nil {
		// marshaling a Go string cannot fail; keep output well-formed anyway
		b = []byte(strconv.Quote(str))
	}
	s.buf = append(s.buf, b...)
}

func (s *StreamWriter) maybeFlush() {
	if len(s.buf) >= flushThreshold {
		_ = s.Flush()
	}
}

// appendFloat renders f the way encoding/json does and writes null for NaN
// and infinities.
func appendFloat(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}
