// Package structpb exposes protobuf well-known JSON values
// (google.protobuf.Value and Struct) as jsoncomb nodes.
//
// Struct fields have no order on the wire; Fields yields them sorted by key.
// All numbers are float64, so AsInt64 only succeeds for integral values in
// the int64 range.
package structpb

import (
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	spb "google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsoncomb"
)

// Driver returns a jsoncomb.Driver that parses input with protojson into a
// google.protobuf.Value. ParseOpt limits are not applied.
func Driver() jsoncomb.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "protojson" }

func (d driver) Parse(b []byte, _ jsoncomb.ParseOpt) (jsoncomb.Node, error) {
	v := &spb.Value{}
	if err := protojson.Unmarshal(b, v); err != nil {
		return nil, &jsoncomb.ParseError{Driver: d.Name(), Offset: -1, Err: err}
	}
	return Wrap(v), nil
}

// Wrap exposes v as a Node. A nil value is null.
func Wrap(v *spb.Value) jsoncomb.Node { return node{v: v} }

// WrapStruct exposes s as an object Node.
func WrapStruct(s *spb.Struct) jsoncomb.Node { return node{v: spb.NewStructValue(s)} }

type node struct{ v *spb.Value }

func (n node) Kind() jsoncomb.Kind {
	switch n.v.GetKind().(type) {
	case *spb.Value_BoolValue:
		return jsoncomb.KindBool
	case *spb.Value_NumberValue:
		return jsoncomb.KindNumber
	case *spb.Value_StringValue:
		return jsoncomb.KindString
	case *spb.Value_ListValue:
		return jsoncomb.KindArray
	case *spb.Value_StructValue:
		return jsoncomb.KindObject
	default:
		return jsoncomb.KindNull
	}
}

func (n node) AsString() (string, error) {
	if k := n.Kind(); k != jsoncomb.KindString {
		return "", jsoncomb.KindError(jsoncomb.KindString, k)
	}
	return n.v.GetStringValue(), nil
}

func (n node) AsBool() (bool, error) {
	if k := n.Kind(); k != jsoncomb.KindBool {
		return false, jsoncomb.KindError(jsoncomb.KindBool, k)
	}
	return n.v.GetBoolValue(), nil
}

func (n node) AsInt64() (int64, error) {
	f, err := n.AsFloat64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.Errorf("number %v has a fractional part", f)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errors.Errorf("number %v overflows int64", f)
	}
	return int64(f), nil
}

func (n node) AsFloat64() (float64, error) {
	if k := n.Kind(); k != jsoncomb.KindNumber {
		return 0, jsoncomb.KindError(jsoncomb.KindNumber, k)
	}
	return n.v.GetNumberValue(), nil
}

func (n node) AsDecimal() (*apd.Decimal, error) {
	f, err := n.AsFloat64()
	if err != nil {
		return nil, err
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %v", f)
	}
	return d, nil
}

func (n node) Field(name string) (jsoncomb.Node, bool) {
	s := n.v.GetStructValue()
	if s == nil {
		return nil, false
	}
	c, ok := s.GetFields()[name]
	if !ok {
		return nil, false
	}
	return node{v: c}, true
}

func (n node) Index(i int) (jsoncomb.Node, bool) {
	l := n.v.GetListValue().GetValues()
	if i < 0 || i >= len(l) {
		return nil, false
	}
	return node{v: l[i]}, true
}

func (n node) Fields() iter.Seq2[string, jsoncomb.Node] {
	return func(yield func(string, jsoncomb.Node) bool) {
		fs := n.v.GetStructValue().GetFields()
		for _, k := range slices.Sorted(maps.Keys(fs)) {
			if !yield(k, node{v: fs[k]}) {
				return
			}
		}
	}
}

func (n node) Elements() iter.Seq2[int, jsoncomb.Node] {
	return func(yield func(int, jsoncomb.Node) bool) {
		for i, e := range n.v.GetListValue().GetValues() {
			if !yield(i, node{v: e}) {
				return
			}
		}
	}
}

func (n node) Len() int {
	switch n.Kind() {
	case jsoncomb.KindArray:
		return len(n.v.GetListValue().GetValues())
	case jsoncomb.KindObject:
		return len(n.v.GetStructValue().GetFields())
	default:
		return 0
	}
}
