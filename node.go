package jsoncomb

import (
	"iter"

	"github.com/cockroachdb/apd/v2"
)

// Kind is the discriminator of a JSON node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Node is a read-only handle to one node of a parsed document. Implementations
// must be safe for concurrent readers and must never mutate the document.
type Node interface {
	Kind() Kind

	// Typed extraction. Calling an accessor on a node of another kind returns
	// an error wrapping ErrKind.
	AsString() (string, error)
	AsBool() (bool, error)
	// AsInt64 fails when the number has a fractional part or overflows.
	AsInt64() (int64, error)
	AsFloat64() (float64, error)
	AsDecimal() (*apd.Decimal, error)

	// Field looks up an object member. It reports false for missing keys and
	// for non-object nodes.
	Field(name string) (Node, bool)
	// Index returns an array element. It reports false when i is out of range,
	// including negative indices, and for non-array nodes.
	Index(i int) (Node, bool)
	// Fields yields object members in the object's own order.
	Fields() iter.Seq2[string, Node]
	// Elements yields array elements in order.
	Elements() iter.Seq2[int, Node]
	// Len is the member or element count; zero for scalars.
	Len() int
}
