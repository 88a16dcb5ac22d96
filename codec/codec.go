// Package codec pairs a decoder with its inverse encoder so a type can be
// read from and written back to JSON with one value.
package codec

import (
	"io"

	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

// Codec reads a T with Decoder and writes it back with Encoder. For a
// well-formed codec, decoding the encoding of v yields a value equal to v.
type Codec[T any] struct {
	Decoder decode.Decoder[T]
	Encoder func(T) encode.Value
}

// New builds a Codec from its two halves.
func New[T any](d decode.Decoder[T], e func(T) encode.Value) Codec[T] {
	return Codec[T]{Decoder: d, Encoder: e}
}

// Decode parses data with the current driver and decodes it.
func (c Codec[T]) Decode(data []byte, opts ...jsoncomb.ParseOpt) (T, error) {
	return decode.FromBytes(c.Decoder, data, opts...)
}

// Encode renders v as compact JSON.
func (c Codec[T]) Encode(v T) []byte {
	return encode.Marshal(c.Encoder(v))
}

// EncodeTo streams v to w and returns the first write error.
func (c Codec[T]) EncodeTo(w io.Writer, v T) error {
	sw := encode.NewStreamWriter(w)
	encode.Encode(c.Encoder(v), sw)
	return sw.Flush()
}

// Field lifts c to a codec reading and writing the single member name.
func Field[T any](name string, c Codec[T]) Codec[T] {
	return Codec[T]{
		Decoder: decode.Field(name, c.Decoder),
		Encoder: func(v T) encode.Value {
			return encode.Object{{Key: name, Value: c.Encoder(v)}}
		},
	}
}

// List lifts c to slices.
func List[T any](c Codec[T]) Codec[[]T] {
	return Codec[[]T]{
		Decoder: decode.List(c.Decoder),
		Encoder: func(vs []T) encode.Value { return encode.List(vs, c.Encoder) },
	}
}

// Nullable lifts c to Option values; None is written as null.
func Nullable[T any](c Codec[T]) Codec[decode.Option[T]] {
	return Codec[decode.Option[T]]{
		Decoder: decode.Nullable(c.Decoder),
		Encoder: func(o decode.Option[T]) encode.Value { return encode.Nullable(o.Ptr(), c.Encoder) },
	}
}
