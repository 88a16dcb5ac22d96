package codec

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

func value[T any](d decode.Decoder[T], f func(T) encode.Value) decode.Decoder[encode.Value] {
	return decode.Map(f, d)
}

// Identity reads any JSON value into an encode.Value and writes it back
// unchanged. Integral numbers that fit int64 become Integer; every other
// number becomes a Decimal so no digit is lost. Member order is kept.
func Identity() Codec[encode.Value] {
	return Codec[encode.Value]{
		Decoder: anyValue(),
		Encoder: func(v encode.Value) encode.Value { return v },
	}
}

func anyValue() decode.Decoder[encode.Value] {
	return decode.OneOf(
		decode.Null[encode.Value](encode.Null{}),
		value(decode.Bool(), func(b bool) encode.Value { return encode.Bool(b) }),
		value(decode.String(), func(s string) encode.Value { return encode.String(s) }),
		value(decode.Int(), func(i int64) encode.Value { return encode.Integer(i) }),
		value(decode.Decimal(), func(d *apd.Decimal) encode.Value { return encode.NewDecimal(d) }),
		decode.Lazy(func() decode.Decoder[encode.Value] {
			return value(decode.List(anyValue()), func(vs []encode.Value) encode.Value { return encode.Array(vs) })
		}),
		decode.Lazy(func() decode.Decoder[encode.Value] {
			return value(decode.KeyValuePairs(anyValue()), func(ps []decode.Pair[encode.Value]) encode.Value {
				obj := make(encode.Object, len(ps))
				for i, p := range ps {
					obj[i] = encode.Member{Key: p.Key, Value: p.Value}
				}
				return obj
			})
		}),
	)
}

// String, Int, Float, Bool and Decimal are the primitive codecs.
func String() Codec[string] {
	return New(decode.String(), func(s string) encode.Value { return encode.String(s) })
}

func Int() Codec[int64] {
	return New(decode.Int(), func(i int64) encode.Value { return encode.Integer(i) })
}

func Float() Codec[float64] {
	return New(decode.Float(), func(f float64) encode.Value { return encode.Float(f) })
}

func Bool() Codec[bool] {
	return New(decode.Bool(), func(b bool) encode.Value { return encode.Bool(b) })
}

func Decimal() Codec[*apd.Decimal] {
	return New(decode.Decimal(), func(d *apd.Decimal) encode.Value { return encode.NewDecimal(d) })
}
