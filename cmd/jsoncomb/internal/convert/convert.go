// Package convert builds the decoders behind the jsoncomb CLI: a generic
// node-to-encode.Value decoder and decoders addressed by JSON Pointer.
package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"

	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/codec"
	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

func as[T any](d decode.Decoder[T], f func(T) encode.Value) decode.Decoder[encode.Value] {
	return decode.Map(f, d)
}

// Value decodes any node into an encode.Value. Integral numbers that fit
// int64 become Integer; every other number becomes a Decimal so no digit is
// lost.
func Value() decode.Decoder[encode.Value] { return codec.Identity().Decoder }

// Kinds lists the names accepted by As.
var Kinds = []string{"string", "int", "float", "decimal", "bool", "time", "uuid", "value"}

// As returns a decoder for the named target type whose result is rendered as
// an encode.Value.
func As(kind string) (decode.Decoder[encode.Value], error) {
	switch kind {
	case "string":
		return as(decode.String(), func(s string) encode.Value { return encode.String(s) }), nil
	case "int":
		return as(decode.Int(), func(i int64) encode.Value { return encode.Integer(i) }), nil
	case "float":
		return as(decode.Float(), func(f float64) encode.Value { return encode.Float(f) }), nil
	case "decimal":
		return as(decode.Decimal(), func(d *apd.Decimal) encode.Value { return encode.NewDecimal(d) }), nil
	case "bool":
		return as(decode.Bool(), func(b bool) encode.Value { return encode.Bool(b) }), nil
	case "time":
		c := codec.TimeRFC3339()
		return as(c.Decoder, c.Encoder), nil
	case "uuid":
		c := codec.UUID()
		return as(c.Decoder, c.Encoder), nil
	case "value":
		return Value(), nil
	default:
		return nil, fmt.Errorf("unknown type %q (want one of %s)", kind, strings.Join(Kinds, ", "))
	}
}

// At addresses d by a JSON Pointer. Each reference token is applied to the
// node it lands on: arrays take it as an index, anything else as a member
// name, so "/2024" reaches both [..., x] and {"2024": x}. "" is the root.
func At[T any](pointer string, d decode.Decoder[T]) (decode.Decoder[T], error) {
	if pointer == "" {
		return d, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid JSON Pointer %q: must start with /", pointer)
	}
	toks := strings.Split(pointer[1:], "/")
	for i := len(toks) - 1; i >= 0; i-- {
		tok := strings.ReplaceAll(strings.ReplaceAll(toks[i], "~1", "/"), "~0", "~")
		d = step(tok, d)
	}
	return d, nil
}

func step[T any](tok string, d decode.Decoder[T]) decode.Decoder[T] {
	idx, err := strconv.Atoi(tok)
	if err != nil || idx < 0 || (len(tok) > 1 && tok[0] == '0') {
		return decode.Field(tok, d)
	}
	field, index := decode.Field(tok, d), decode.Index(idx, d)
	return decode.Bind(func(n jsoncomb.Node) decode.Decoder[T] {
		if n.Kind() == jsoncomb.KindArray {
			return index
		}
		return field
	}, decode.Raw())
}
