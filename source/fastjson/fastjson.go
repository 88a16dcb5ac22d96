// Package fastjson provides a jsoncomb.Node backed by valyala/fastjson.
//
// Repeated object keys are all yielded by Fields; Field returns the last
// occurrence, as the default tree and Dict do.
package fastjson

import (
	"iter"

	"github.com/cockroachdb/apd/v2"
	fj "github.com/valyala/fastjson"

	"github.com/reoring/jsoncomb"
)

// Driver returns a jsoncomb.Driver backed by fastjson.
func Driver() jsoncomb.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "fastjson" }

func (d driver) Parse(b []byte, opt jsoncomb.ParseOpt) (jsoncomb.Node, error) {
	v, err := fj.ParseBytes(b)
	if err != nil {
		return nil, &jsoncomb.ParseError{Driver: d.Name(), Offset: -1, Err: err}
	}
	if err := enforce(v, opt, "", 0); err != nil {
		return nil, err
	}
	return Wrap(v), nil
}

func enforce(v *fj.Value, opt jsoncomb.ParseOpt, path string, depth int) error {
	switch v.Type() {
	case fj.TypeObject, fj.TypeArray:
	default:
		return nil
	}
	depth++
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return &jsoncomb.ParseError{Driver: "fastjson", Path: path, Offset: -1, Err: jsoncomb.ErrDepth}
	}
	if v.Type() == fj.TypeArray {
		for i, e := range v.GetArray() {
			if err := enforce(e, opt, jsoncomb.AppendIndex(path, i), depth); err != nil {
				return err
			}
		}
		return nil
	}
	var (
		seen  = map[string]struct{}{}
		first error
	)
	v.GetObject().Visit(func(key []byte, c *fj.Value) {
		if first != nil {
			return
		}
		k := string(key)
		p := jsoncomb.AppendKey(path, k)
		if _, dup := seen[k]; dup && opt.OnDuplicateKey == jsoncomb.Error {
			first = &jsoncomb.ParseError{Driver: "fastjson", Path: p, Offset: -1, Err: jsoncomb.ErrDuplicateKey}
			return
		}
		seen[k] = struct{}{}
		first = enforce(c, opt, p, depth)
	})
	return first
}

// Wrap exposes a parsed fastjson value as a Node. The value must outlive the
// returned node and must not be modified.
func Wrap(v *fj.Value) jsoncomb.Node { return node{v: v} }

type node struct{ v *fj.Value }

func (n node) Kind() jsoncomb.Kind {
	switch n.v.Type() {
	case fj.TypeTrue, fj.TypeFalse:
		return jsoncomb.KindBool
	case fj.TypeNumber:
		return jsoncomb.KindNumber
	case fj.TypeString:
		return jsoncomb.KindString
	case fj.TypeArray:
		return jsoncomb.KindArray
	case fj.TypeObject:
		return jsoncomb.KindObject
	default:
		return jsoncomb.KindNull
	}
}

func (n node) AsString() (string, error) {
	b, err := n.v.StringBytes()
	if err != nil {
		return "", jsoncomb.KindError(jsoncomb.KindString, n.Kind())
	}
	return string(b), nil
}

func (n node) AsBool() (bool, error) {
	b, err := n.v.Bool()
	if err != nil {
		return false, jsoncomb.KindError(jsoncomb.KindBool, n.Kind())
	}
	return b, nil
}

// literal returns the number's source text; fastjson keeps it verbatim.
func (n node) literal() (string, error) {
	if n.v.Type() != fj.TypeNumber {
		return "", jsoncomb.KindError(jsoncomb.KindNumber, n.Kind())
	}
	return n.v.String(), nil
}

func (n node) AsInt64() (int64, error) {
	lit, err := n.literal()
	if err != nil {
		return 0, err
	}
	return jsoncomb.ParseInt64(lit)
}

func (n node) AsFloat64() (float64, error) {
	lit, err := n.literal()
	if err != nil {
		return 0, err
	}
	return jsoncomb.ParseFloat64(lit)
}

func (n node) AsDecimal() (*apd.Decimal, error) {
	lit, err := n.literal()
	if err != nil {
		return nil, err
	}
	return jsoncomb.ParseDecimal(lit)
}

func (n node) Field(name string) (jsoncomb.Node, bool) {
	o, err := n.v.Object()
	if err != nil {
		return nil, false
	}
	var last *fj.Value
	o.Visit(func(key []byte, c *fj.Value) {
		if string(key) == name {
			last = c
		}
	})
	if last == nil {
		return nil, false
	}
	return node{v: last}, true
}

func (n node) Index(i int) (jsoncomb.Node, bool) {
	a, err := n.v.Array()
	if err != nil || i < 0 || i >= len(a) {
		return nil, false
	}
	return node{v: a[i]}, true
}

func (n node) Fields() iter.Seq2[string, jsoncomb.Node] {
	return func(yield func(string, jsoncomb.Node) bool) {
		o, err := n.v.Object()
		if err != nil {
			return
		}
		stopped := false
		o.Visit(func(key []byte, c *fj.Value) {
			if stopped {
				return
			}
			stopped = !yield(string(key), node{v: c})
		})
	}
}

func (n node) Elements() iter.Seq2[int, jsoncomb.Node] {
	return func(yield func(int, jsoncomb.Node) bool) {
		for i, e := range n.v.GetArray() {
			if !yield(i, node{v: e}) {
				return
			}
		}
	}
}

func (n node) Len() int {
	switch n.v.Type() {
	case fj.TypeArray:
		return len(n.v.GetArray())
	case fj.TypeObject:
		return n.v.GetObject().Len()
	default:
		return 0
	}
}
