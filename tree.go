package jsoncomb

import (
	"iter"

	"github.com/cockroachdb/apd/v2"

	eng "github.com/reoring/jsoncomb/internal/engine"
)

// treeNode adapts an engine tree value to Node.
type treeNode struct{ v *eng.Value }

// NodeFromEngine wraps an engine tree value as a Node.
func NodeFromEngine(v *eng.Value) Node { return treeNode{v: v} }

func (n treeNode) Kind() Kind {
	switch n.v.Kind {
	case eng.ValueBool:
		return KindBool
	case eng.ValueNumber:
		return KindNumber
	case eng.ValueString:
		return KindString
	case eng.ValueArray:
		return KindArray
	case eng.ValueObject:
		return KindObject
	default:
		return KindNull
	}
}

func (n treeNode) AsString() (string, error) {
	if n.v.Kind != eng.ValueString {
		return "", KindError(KindString, n.Kind())
	}
	return n.v.Str, nil
}

func (n treeNode) AsBool() (bool, error) {
	if n.v.Kind != eng.ValueBool {
		return false, KindError(KindBool, n.Kind())
	}
	return n.v.Bool, nil
}

func (n treeNode) AsInt64() (int64, error) {
	if n.v.Kind != eng.ValueNumber {
		return 0, KindError(KindNumber, n.Kind())
	}
	return ParseInt64(n.v.Str)
}

func (n treeNode) AsFloat64() (float64, error) {
	if n.v.Kind != eng.ValueNumber {
		return 0, KindError(KindNumber, n.Kind())
	}
	return ParseFloat64(n.v.Str)
}

func (n treeNode) AsDecimal() (*apd.Decimal, error) {
	if n.v.Kind != eng.ValueNumber {
		return nil, KindError(KindNumber, n.Kind())
	}
	return ParseDecimal(n.v.Str)
}

func (n treeNode) Field(name string) (Node, bool) {
	c, ok := n.v.Member(name)
	if !ok {
		return nil, false
	}
	return treeNode{v: c}, true
}

func (n treeNode) Index(i int) (Node, bool) {
	if n.v.Kind != eng.ValueArray || i < 0 || i >= len(n.v.Elems) {
		return nil, false
	}
	return treeNode{v: n.v.Elems[i]}, true
}

func (n treeNode) Fields() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if n.v.Members == nil {
			return
		}
		it := n.v.Members.Iterator()
		for it.Next() {
			if !yield(it.Key().(string), treeNode{v: it.Value().(*eng.Value)}) {
				return
			}
		}
	}
}

func (n treeNode) Elements() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, e := range n.v.Elems {
			if !yield(i, treeNode{v: e}) {
				return
			}
		}
	}
}

func (n treeNode) Len() int {
	switch n.v.Kind {
	case eng.ValueArray:
		return len(n.v.Elems)
	case eng.ValueObject:
		return n.v.Members.Size()
	default:
		return 0
	}
}
