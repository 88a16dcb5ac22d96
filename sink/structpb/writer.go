// Package structpb is an encode.Writer that builds a protobuf
// google.protobuf.Value.
//
// Struct fields are a map on the wire, so member order is not kept. Numbers
// become float64; non-finite numbers become null.
package structpb

import (
	"math"

	spb "google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsoncomb/encode"
)

type frame struct {
	obj *spb.Struct
	lst *spb.ListValue
	key string
}

// Writer collects encode events into a *structpb.Value.
type Writer struct {
	root  *spb.Value
	stack []*frame
}

var _ encode.Writer = (*Writer)(nil)

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) add(v *spb.Value) {
	if len(w.stack) == 0 {
		w.root = v
		return
	}
	top := w.stack[len(w.stack)-1]
	if top.obj != nil {
		top.obj.Fields[top.key] = v
		return
	}
	top.lst.Values = append(top.lst.Values, v)
}

func (w *Writer) pop() {
	if n := len(w.stack); n > 0 {
		w.stack = w.stack[:n-1]
	}
}

func (w *Writer) WriteStartObject() {
	s := &spb.Struct{Fields: map[string]*spb.Value{}}
	w.add(spb.NewStructValue(s))
	w.stack = append(w.stack, &frame{obj: s})
}

func (w *Writer) WriteStartArray() {
	l := &spb.ListValue{}
	w.add(spb.NewListValue(l))
	w.stack = append(w.stack, &frame{lst: l})
}

func (w *Writer) WriteEndObject() { w.pop() }
func (w *Writer) WriteEndArray()  { w.pop() }

func (w *Writer) WriteField(key string) {
	if n := len(w.stack); n > 0 {
		w.stack[n-1].key = key
	}
}

func (w *Writer) WriteNull()           { w.add(spb.NewNullValue()) }
func (w *Writer) WriteBool(b bool)     { w.add(spb.NewBoolValue(b)) }
func (w *Writer) WriteString(s string) { w.add(spb.NewStringValue(s)) }

func (w *Writer) WriteNumber(n encode.Number) {
	var f float64
	switch n := n.(type) {
	case encode.Integer:
		f = float64(n)
	case encode.Float:
		f = float64(n)
	case encode.Decimal:
		var err error
		if f, err = n.Apd().Float64(); err != nil {
			w.WriteNull()
			return
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.WriteNull()
		return
	}
	w.add(spb.NewNumberValue(f))
}

// Value returns the built value; null when nothing was written.
func (w *Writer) Value() *spb.Value {
	if w.root == nil {
		return spb.NewNullValue()
	}
	return w.root
}

// FromValue encodes v as a *structpb.Value.
func FromValue(v encode.Value) *spb.Value {
	w := NewWriter()
	encode.Encode(v, w)
	return w.Value()
}
