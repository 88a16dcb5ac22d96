// Package encode holds a closed algebraic JSON value and a serializer that
// walks it into a Writer.
//
// Values are immutable once built. Objects keep member insertion order, which
// is the order fields are written in:
//
//	v := encode.Object{
//		{Key: "id", Value: encode.Integer(7)},
//		{Key: "tags", Value: encode.Array{encode.String("a"), encode.String("b")}},
//	}
//	out := encode.Marshal(v) // {"id":7,"tags":["a","b"]}
package encode

import (
	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

// Value is one of Null, Bool, String, Integer, Float, Decimal, Array or
// Object. A nil Value encodes as null.
type Value interface {
	isValue()
}

// Number is the numeric subset of Value handed to Writer.WriteNumber.
type Number interface {
	Value
	isNumber()
}

type (
	Null    struct{}
	Bool    bool
	String  string
	Integer int64
	Float   float64
	Array   []Value
	Object  []Member
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Decimal is an exact decimal number. The zero value is 0.
type Decimal struct{ d *apd.Decimal }

// NewDecimal copies d into a Decimal. A nil d yields 0.
func NewDecimal(d *apd.Decimal) Decimal {
	if d == nil {
		return Decimal{}
	}
	return Decimal{d: new(apd.Decimal).Set(d)}
}

// ParseDecimal parses a decimal literal such as "12.50".
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, errors.Wrapf(err, "encode: invalid decimal %q", s)
	}
	return Decimal{d: d}, nil
}

// Apd returns a copy of the underlying decimal.
func (d Decimal) Apd() *apd.Decimal {
	if d.d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(d.d)
}

func (d Decimal) String() string {
	if d.d == nil {
		return "0"
	}
	return d.d.String()
}

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (String) isValue()  {}
func (Integer) isValue() {}
func (Float) isValue()   {}
func (Decimal) isValue() {}
func (Array) isValue()   {}
func (Object) isValue()  {}

func (Integer) isNumber() {}
func (Float) isNumber()   {}
func (Decimal) isNumber() {}

// Get returns the value of the first member named key.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}
