package engine

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func mpDoc(t *testing.T, write func(e *msgpack.Encoder)) []byte {
	t.Helper()
	var buf bytes.Buffer
	write(msgpack.NewEncoder(&buf))
	return buf.Bytes()
}

func TestMsgpack_Tree(t *testing.T) {
	doc := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeMapLen(3))
		require.NoError(t, e.EncodeString("b"))
		require.NoError(t, e.EncodeArrayLen(6))
		require.NoError(t, e.EncodeInt(1))
		require.NoError(t, e.EncodeInt(-2))
		require.NoError(t, e.EncodeFloat64(1.5))
		require.NoError(t, e.EncodeString("s"))
		require.NoError(t, e.EncodeBool(true))
		require.NoError(t, e.EncodeNil())
		require.NoError(t, e.EncodeString("a"))
		require.NoError(t, e.EncodeMapLen(0))
		require.NoError(t, e.EncodeString("u"))
		require.NoError(t, e.EncodeUint64(math.MaxUint64))
	})
	v, err := Build(NewMsgpack(doc), BuildOptions{})
	require.NoError(t, err)
	require.Equal(t, ValueObject, v.Kind)
	assert.Equal(t, []any{"b", "a", "u"}, v.Members.Keys())

	b, _ := v.Member("b")
	require.Len(t, b.Elems, 6)
	assert.Equal(t, "1", b.Elems[0].Str)
	assert.Equal(t, "-2", b.Elems[1].Str)
	assert.Equal(t, "1.5", b.Elems[2].Str)
	assert.Equal(t, ValueString, b.Elems[3].Kind)
	assert.True(t, b.Elems[4].Bool)
	assert.Equal(t, ValueNull, b.Elems[5].Kind)

	a, _ := v.Member("a")
	assert.Equal(t, ValueObject, a.Kind)
	assert.Equal(t, 0, a.Members.Size())

	u, _ := v.Member("u")
	assert.Equal(t, "18446744073709551615", u.Str)
}

func TestMsgpack_Float32Literal(t *testing.T) {
	doc := mpDoc(t, func(e *msgpack.Encoder) { require.NoError(t, e.EncodeFloat32(0.1)) })
	v, err := Build(NewMsgpack(doc), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, "0.1", v.Str)
}

func TestMsgpack_Enforcement(t *testing.T) {
	dup := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeMapLen(2))
		require.NoError(t, e.EncodeString("a"))
		require.NoError(t, e.EncodeInt(1))
		require.NoError(t, e.EncodeString("a"))
		require.NoError(t, e.EncodeInt(2))
	})
	v, err := Build(NewMsgpack(dup), BuildOptions{})
	require.NoError(t, err)
	a, _ := v.Member("a")
	assert.Equal(t, "2", a.Str)

	_, err = Build(NewMsgpack(dup), BuildOptions{OnDuplicate: DupError})
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeDuplicate, be.Code)
	assert.Equal(t, "/a", be.Path)

	deep := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeArrayLen(1))
		require.NoError(t, e.EncodeArrayLen(0))
	})
	_, err = Build(NewMsgpack(deep), BuildOptions{MaxDepth: 1})
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeDepth, be.Code)
	assert.Equal(t, "/0", be.Path)

	two := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeInt(1))
		require.NoError(t, e.EncodeInt(2))
	})
	_, err = Build(NewMsgpack(two), BuildOptions{})
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeTrailing, be.Code)
}

func TestMsgpack_Rejects(t *testing.T) {
	intKey := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeMapLen(1))
		require.NoError(t, e.EncodeInt(1))
		require.NoError(t, e.EncodeString("x"))
	})
	_, err := Build(NewMsgpack(intKey), BuildOptions{})
	assert.ErrorContains(t, err, "not a string")

	nan := mpDoc(t, func(e *msgpack.Encoder) { require.NoError(t, e.EncodeFloat64(math.NaN())) })
	_, err = Build(NewMsgpack(nan), BuildOptions{})
	assert.ErrorContains(t, err, "non-finite")

	bin := mpDoc(t, func(e *msgpack.Encoder) { require.NoError(t, e.EncodeBytes([]byte{1, 2})) })
	_, err = Build(NewMsgpack(bin), BuildOptions{})
	assert.ErrorContains(t, err, "unsupported type")

	short := mpDoc(t, func(e *msgpack.Encoder) {
		require.NoError(t, e.EncodeArrayLen(2))
		require.NoError(t, e.EncodeInt(1))
	})
	_, err = Build(NewMsgpack(short), BuildOptions{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Build(NewMsgpack(nil), BuildOptions{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
