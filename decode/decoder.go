// Package decode builds typed decoders over a read-only JSON tree.
//
// A Decoder is a pure function from a jsoncomb.Node to a value or an Error.
// Decoders are composed from primitives (String, Int, ...), navigation (Field,
// Index, At), applicative combination (Map, Apply, Map2..Map8), sequencing
// (Bind), choice (OrElse, OneOf, Optional, Nullable) and collections (List,
// KeyValuePairs, Dict).
//
// Failure policy:
//   - navigation adds exactly one AtField/AtIndex layer to a child failure;
//   - Apply and the MapN family stop at the first failing decoder, left to right;
//   - OrElse and OneOf report only the error of the last alternative tried;
//   - collections report every failing element in a Multiple, and return no
//     partial result.
package decode

import (
	"io"

	"github.com/reoring/jsoncomb"
)

// Decoder turns a node into a T. A nil Error means success.
type Decoder[T any] func(n jsoncomb.Node) (T, Error)

// Decode runs d against n. On failure the returned error is a decode Error.
func Decode[T any](d Decoder[T], n jsoncomb.Node) (T, error) {
	v, err := d(n)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// FromBytes parses data with the current jsoncomb driver and decodes it.
// Parse failures are returned as *jsoncomb.ParseError.
func FromBytes[T any](d Decoder[T], data []byte, opts ...jsoncomb.ParseOpt) (T, error) {
	n, err := jsoncomb.Parse(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(d, n)
}

// FromString is FromBytes for string input.
func FromString[T any](d Decoder[T], s string, opts ...jsoncomb.ParseOpt) (T, error) {
	return FromBytes(d, []byte(s), opts...)
}

// FromReader reads r to the end, then behaves like FromBytes.
func FromReader[T any](d Decoder[T], r io.Reader, opts ...jsoncomb.ParseOpt) (T, error) {
	n, err := jsoncomb.ParseReader(r, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode(d, n)
}
