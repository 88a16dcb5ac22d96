// Package msgpack writes encode values as MessagePack with
// vmihailenco/msgpack/v5. Map members keep their order.
//
// MessagePack has no decimal type: a Decimal is written as an integer when it
// is integral and fits in 64 bits, otherwise as a double. Non-finite floats
// are written as nil, matching the JSON encoder.
package msgpack

import (
	"bytes"
	"io"
	"math"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
	mp "github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/jsoncomb/encode"
)

// Encoder writes values to an underlying stream.
type Encoder struct{ enc *mp.Encoder }

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{enc: mp.NewEncoder(w)} }

// Encode writes v as one MessagePack value.
func (e *Encoder) Encode(v encode.Value) error {
	return errors.Wrap(e.value(v), "msgpack: encode")
}

// Marshal encodes v into a new byte slice.
func Marshal(v encode.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) value(v encode.Value) error {
	switch v := v.(type) {
	case encode.Object:
		if err := e.enc.EncodeMapLen(len(v)); err != nil {
			return err
		}
		for _, m := range v {
			if err := e.enc.EncodeString(m.Key); err != nil {
				return err
			}
			if err := e.value(m.Value); err != nil {
				return err
			}
		}
		return nil
	case encode.Array:
		if err := e.enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, x := range v {
			if err := e.value(x); err != nil {
				return err
			}
		}
		return nil
	case encode.String:
		return e.enc.EncodeString(string(v))
	case encode.Bool:
		return e.enc.EncodeBool(bool(v))
	case encode.Integer:
		return e.enc.EncodeInt(int64(v))
	case encode.Float:
		return e.float(float64(v))
	case encode.Decimal:
		return e.decimal(v.Apd())
	default:
		return e.enc.EncodeNil()
	}
}

func (e *Encoder) float(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return e.enc.EncodeNil()
	}
	return e.enc.EncodeFloat64(f)
}

func (e *Encoder) decimal(d *apd.Decimal) error {
	if d.Form != apd.Finite {
		return e.enc.EncodeNil()
	}
	if d.Exponent >= 0 {
		if i, err := d.Int64(); err == nil {
			return e.enc.EncodeInt(i)
		}
	}
	f, err := d.Float64()
	if err != nil {
		return err
	}
	return e.float(f)
}
