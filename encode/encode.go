package encode

import (
	"bytes"
	"maps"
	"slices"
)

// Writer receives the events of an encode walk. Implementations must keep
// the call order; they are used by a single goroutine at a time.
type Writer interface {
	WriteStartObject()
	WriteEndObject()
	WriteStartArray()
	WriteEndArray()
	WriteField(key string)
	WriteNull()
	WriteBool(b bool)
	WriteString(s string)
	WriteNumber(n Number)
}

// Encode walks v depth-first and emits it to w. It never fails; sinks that
// can fail (I/O) record the error themselves.
func Encode(v Value, w Writer) {
	switch v := v.(type) {
	case Object:
		w.WriteStartObject()
		for _, m := range v {
			w.WriteField(m.Key)
			Encode(m.Value, w)
		}
		w.WriteEndObject()
	case Array:
		w.WriteStartArray()
		for _, e := range v {
			Encode(e, w)
		}
		w.WriteEndArray()
	case String:
		w.WriteString(string(v))
	case Bool:
		w.WriteBool(bool(v))
	case Number:
		w.WriteNumber(v)
	default:
		w.WriteNull()
	}
}

// Marshal encodes v as compact JSON.
func Marshal(v Value) []byte {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	Encode(v, sw)
	_ = sw.Flush() // bytes.Buffer does not fail
	return buf.Bytes()
}

// MarshalIndent encodes v as JSON with one member or element per line.
func MarshalIndent(v Value, indent string) []byte {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf, WithIndent(indent))
	Encode(v, sw)
	_ = sw.Flush()
	return buf.Bytes()
}

// List builds an Array by encoding each element with f.
func List[T any](xs []T, f func(T) Value) Array {
	out := make(Array, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// Dict builds an Object from a map. Keys are sorted so output is
// deterministic.
func Dict[T any](m map[string]T, f func(T) Value) Object {
	out := make(Object, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, Member{Key: k, Value: f(m[k])})
	}
	return out
}

// Nullable encodes *p with f, or Null when p is nil.
func Nullable[T any](p *T, f func(T) Value) Value {
	if p == nil {
		return Null{}
	}
	return f(*p)
}
