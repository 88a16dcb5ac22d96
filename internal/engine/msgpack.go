package engine

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

type mpFrame struct {
	object bool
	left   int // elements, or members for objects
	key    bool
}

// msgpackSource is a TokenSource over a MessagePack document. Map keys must
// be strings; binary and extension values are rejected.
type msgpackSource struct {
	r     *bytes.Reader
	size  int64
	dec   *msgpack.Decoder
	stack []mpFrame
}

// NewMsgpack wraps a MessagePack encoded byte slice into a TokenSource.
func NewMsgpack(b []byte) TokenSource {
	r := bytes.NewReader(b)
	return &msgpackSource{r: r, size: int64(len(b)), dec: msgpack.NewDecoder(r)}
}

func (s *msgpackSource) Location() int64 { return s.size - int64(s.r.Len()) }

func (s *msgpackSource) NextToken() (Token, error) {
	if n := len(s.stack); n > 0 {
		top := s.stack[n-1]
		if top.left == 0 && (!top.object || top.key) {
			s.stack = s.stack[:n-1]
			s.done()
			if top.object {
				return Token{Kind: KindEndObject, Offset: s.Location()}, nil
			}
			return Token{Kind: KindEndArray, Offset: s.Location()}, nil
		}
	} else if s.r.Len() == 0 {
		return Token{}, io.EOF
	}

	off := s.Location()
	c, err := s.dec.PeekCode()
	if err != nil {
		return Token{}, eof(err)
	}

	if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].key {
		if !msgpcode.IsString(c) {
			return Token{}, errors.Errorf("msgpack: map key at offset %d is not a string (code 0x%02x)", off, c)
		}
		k, err := s.dec.DecodeString()
		if err != nil {
			return Token{}, eof(err)
		}
		s.stack[n-1].key = false
		return Token{Kind: KindKey, String: k, Offset: off}, nil
	}

	switch {
	case c == msgpcode.Nil:
		if err := s.dec.DecodeNil(); err != nil {
			return Token{}, eof(err)
		}
		s.done()
		return Token{Kind: KindNull, Offset: off}, nil
	case c == msgpcode.True || c == msgpcode.False:
		b, err := s.dec.DecodeBool()
		if err != nil {
			return Token{}, eof(err)
		}
		s.done()
		return Token{Kind: KindBool, Bool: b, Offset: off}, nil
	case msgpcode.IsString(c):
		str, err := s.dec.DecodeString()
		if err != nil {
			return Token{}, eof(err)
		}
		s.done()
		return Token{Kind: KindString, String: str, Offset: off}, nil
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := s.dec.DecodeMapLen()
		if err != nil {
			return Token{}, eof(err)
		}
		s.stack = append(s.stack, mpFrame{object: true, left: n, key: true})
		return Token{Kind: KindBeginObject, Offset: off}, nil
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := s.dec.DecodeArrayLen()
		if err != nil {
			return Token{}, eof(err)
		}
		s.stack = append(s.stack, mpFrame{left: n})
		return Token{Kind: KindBeginArray, Offset: off}, nil
	case c == msgpcode.Uint64:
		u, err := s.dec.DecodeUint64()
		if err != nil {
			return Token{}, eof(err)
		}
		s.done()
		return Token{Kind: KindNumber, Number: strconv.FormatUint(u, 10), Offset: off}, nil
	case msgpcode.IsFixedNum(c) ||
		c == msgpcode.Uint8 || c == msgpcode.Uint16 || c == msgpcode.Uint32 ||
		c == msgpcode.Int8 || c == msgpcode.Int16 || c == msgpcode.Int32 || c == msgpcode.Int64:
		i, err := s.dec.DecodeInt64()
		if err != nil {
			return Token{}, eof(err)
		}
		s.done()
		return Token{Kind: KindNumber, Number: strconv.FormatInt(i, 10), Offset: off}, nil
	case c == msgpcode.Float:
		f, err := s.dec.DecodeFloat32()
		if err != nil {
			return Token{}, eof(err)
		}
		return s.float(float64(f), 32, off)
	case c == msgpcode.Double:
		f, err := s.dec.DecodeFloat64()
		if err != nil {
			return Token{}, eof(err)
		}
		return s.float(f, 64, off)
	}
	return Token{}, errors.Errorf("msgpack: unsupported type code 0x%02x at offset %d", c, off)
}

// float renders f with the shortest literal for its width. JSON has no
// spelling for NaN or infinities.
func (s *msgpackSource) float(f float64, bits int, off int64) (Token, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Token{}, errors.Errorf("msgpack: non-finite number at offset %d", off)
	}
	s.done()
	return Token{Kind: KindNumber, Number: strconv.FormatFloat(f, 'g', -1, bits), Offset: off}, nil
}

func (s *msgpackSource) done() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		top.left--
		if top.object {
			top.key = true
		}
	}
}
