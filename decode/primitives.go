package decode

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v2"
	"github.com/google/uuid"

	"github.com/reoring/jsoncomb"
)

func mismatch(expected string, n jsoncomb.Node) Error {
	return &TypeMismatch{Expected: expected, Actual: n.Kind().String()}
}

// String decodes a JSON string.
func String() Decoder[string] {
	return func(n jsoncomb.Node) (string, Error) {
		if n.Kind() != jsoncomb.KindString {
			return "", mismatch("String", n)
		}
		s, err := n.AsString()
		if err != nil {
			return "", &Custom{Message: err.Error()}
		}
		return s, nil
	}
}

// Bool decodes true or false.
func Bool() Decoder[bool] {
	return func(n jsoncomb.Node) (bool, Error) {
		if n.Kind() != jsoncomb.KindBool {
			return false, mismatch("Boolean", n)
		}
		b, err := n.AsBool()
		if err != nil {
			return false, &Custom{Message: err.Error()}
		}
		return b, nil
	}
}

// Int decodes a number that is exactly representable as an int64. A number
// with a fractional part or out of range fails with Custom.
func Int() Decoder[int64] {
	return func(n jsoncomb.Node) (int64, Error) {
		if n.Kind() != jsoncomb.KindNumber {
			return 0, mismatch("Int", n)
		}
		i, err := n.AsInt64()
		if err != nil {
			return 0, &Custom{Message: err.Error()}
		}
		return i, nil
	}
}

// Int32 is Int restricted to the int32 range.
func Int32() Decoder[int32] {
	return Bind(func(i int64) Decoder[int32] {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Failf[int32]("number %d overflows int32", i)
		}
		return Succeed(int32(i))
	}, Int())
}

// Uint64 decodes a non-negative integral number up to math.MaxUint64.
func Uint64() Decoder[uint64] {
	return func(n jsoncomb.Node) (uint64, Error) {
		if n.Kind() != jsoncomb.KindNumber {
			return 0, mismatch("UInt64", n)
		}
		d, err := n.AsDecimal()
		if err != nil {
			return 0, &Custom{Message: err.Error()}
		}
		var integ, frac apd.Decimal
		d.Modf(&integ, &frac)
		if !frac.IsZero() {
			return 0, &Custom{Message: fmt.Sprintf("number %s has a fractional part", d)}
		}
		if integ.Negative && !integ.IsZero() {
			return 0, &Custom{Message: fmt.Sprintf("number %s is negative", d)}
		}
		u, perr := strconv.ParseUint(integ.Text('f'), 10, 64)
		if perr != nil {
			return 0, &Custom{Message: fmt.Sprintf("number %s overflows uint64", d)}
		}
		return u, nil
	}
}

// Float decodes any number as a float64.
func Float() Decoder[float64] {
	return func(n jsoncomb.Node) (float64, Error) {
		if n.Kind() != jsoncomb.KindNumber {
			return 0, mismatch("Float", n)
		}
		f, err := n.AsFloat64()
		if err != nil {
			return 0, &Custom{Message: err.Error()}
		}
		return f, nil
	}
}

// Decimal decodes a number exactly, keeping every digit of its literal.
func Decimal() Decoder[*apd.Decimal] {
	return func(n jsoncomb.Node) (*apd.Decimal, Error) {
		if n.Kind() != jsoncomb.KindNumber {
			return nil, mismatch("Decimal", n)
		}
		d, err := n.AsDecimal()
		if err != nil {
			return nil, &Custom{Message: err.Error()}
		}
		return d, nil
	}
}

// Null succeeds with v when the node is null.
func Null[T any](v T) Decoder[T] {
	return func(n jsoncomb.Node) (T, Error) {
		if n.Kind() != jsoncomb.KindNull {
			var zero T
			return zero, mismatch("Null", n)
		}
		return v, nil
	}
}

// Time decodes an RFC 3339 string; fractional seconds are optional.
func Time() Decoder[time.Time] {
	return Bind(func(s string) Decoder[time.Time] {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return Failf[time.Time]("invalid RFC 3339 time %q", s)
		}
		return Succeed(t)
	}, String())
}

// UUID decodes a string in any form accepted by uuid.Parse.
func UUID() Decoder[uuid.UUID] {
	return Bind(func(s string) Decoder[uuid.UUID] {
		id, err := uuid.Parse(s)
		if err != nil {
			return Failf[uuid.UUID]("invalid UUID %q: %v", s, err)
		}
		return Succeed(id)
	}, String())
}

// Raw returns the node itself.
func Raw() Decoder[jsoncomb.Node] {
	return func(n jsoncomb.Node) (jsoncomb.Node, Error) { return n, nil }
}

// Succeed ignores its input and returns v.
func Succeed[T any](v T) Decoder[T] {
	return func(jsoncomb.Node) (T, Error) { return v, nil }
}

// Fail ignores its input and fails with Custom(msg).
func Fail[T any](msg string) Decoder[T] {
	return func(jsoncomb.Node) (T, Error) {
		var zero T
		return zero, &Custom{Message: msg}
	}
}

// Failf is Fail with a formatted message.
func Failf[T any](format string, args ...any) Decoder[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}
