package encode_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

// recorder captures Writer calls in order.
type recorder struct{ calls []string }

func (r *recorder) WriteStartObject()     { r.calls = append(r.calls, "{") }
func (r *recorder) WriteEndObject()       { r.calls = append(r.calls, "}") }
func (r *recorder) WriteStartArray()      { r.calls = append(r.calls, "[") }
func (r *recorder) WriteEndArray()        { r.calls = append(r.calls, "]") }
func (r *recorder) WriteField(key string) { r.calls = append(r.calls, "key:"+key) }
func (r *recorder) WriteNull()            { r.calls = append(r.calls, "null") }
func (r *recorder) WriteBool(b bool) {
	if b {
		r.calls = append(r.calls, "true")
		return
	}
	r.calls = append(r.calls, "false")
}
func (r *recorder) WriteString(s string)        { r.calls = append(r.calls, "str:"+s) }
func (r *recorder) WriteNumber(n encode.Number) { r.calls = append(r.calls, "num") }

func TestEncode_CallOrder(t *testing.T) {
	v := encode.Object{
		{Key: "b", Value: encode.Integer(2)},
		{Key: "a", Value: encode.Array{encode.String("x"), encode.Null{}, encode.Bool(true)}},
		{Key: "n", Value: nil},
	}
	r := &recorder{}
	encode.Encode(v, r)
	assert.Equal(t, []string{
		"{", "key:b", "num", "key:a", "[", "str:x", "null", "true", "]", "key:n", "null", "}",
	}, r.calls)
}

func TestMarshal_FieldOrder(t *testing.T) {
	v := encode.Object{{Key: "a", Value: encode.Integer(1)}, {Key: "b", Value: encode.Integer(2)}}
	assert.Equal(t, `{"a":1,"b":2}`, string(encode.Marshal(v)))

	v = encode.Object{{Key: "b", Value: encode.Integer(2)}, {Key: "a", Value: encode.Integer(1)}}
	assert.Equal(t, `{"b":2,"a":1}`, string(encode.Marshal(v)))
}

func TestMarshal_Scalars(t *testing.T) {
	dec, err := encode.ParseDecimal("12.50")
	require.NoError(t, err)
	cases := []struct {
		in   encode.Value
		want string
	}{
		{encode.Null{}, `null`},
		{nil, `null`},
		{encode.Bool(false), `false`},
		{encode.String("a\"b\n<c>"), `"a\"b\n<c>"`},
		{encode.Integer(-42), `-42`},
		{encode.Float(3), `3`},
		{encode.Float(0.1), `0.1`},
		{encode.Float(1e21), `1e+21`},
		{encode.Float(1e-7), `1e-7`},
		{encode.Float(math.NaN()), `null`},
		{encode.Float(math.Inf(-1)), `null`},
		{dec, `12.50`},
		{encode.Decimal{}, `0`},
		{encode.Array{}, `[]`},
		{encode.Object{}, `{}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, string(encode.Marshal(tc.in)))
	}
}

func TestMarshal_NonFiniteDecimal(t *testing.T) {
	d, _, err := apd.NewFromString("Infinity")
	require.NoError(t, err)
	assert.Equal(t, `[null]`, string(encode.Marshal(encode.Array{encode.NewDecimal(d)})))
}

func TestMarshalIndent(t *testing.T) {
	v := encode.Object{
		{Key: "a", Value: encode.Array{encode.Integer(1), encode.Integer(2)}},
		{Key: "b", Value: encode.Object{}},
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}"
	assert.Equal(t, want, string(encode.MarshalIndent(v, "  ")))
}

func TestStreamWriter_EscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	sw := encode.NewStreamWriter(&buf, encode.WithEscapeHTML(true))
	encode.Encode(encode.String("<a&b>"), sw)
	require.NoError(t, sw.Flush())
	assert.Equal(t, `"\u003ca\u0026b\u003e"`, buf.String())
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func TestStreamWriter_StickyError(t *testing.T) {
	w := &failingWriter{}
	sw := encode.NewStreamWriter(w)
	big := make(encode.Array, 0, 2000)
	for range 2000 {
		big = append(big, encode.String("xxxxxxxx"))
	}
	encode.Encode(big, sw)
	err := sw.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, w.n, "writes stop after the first failure")
}

func TestStreamWriter_LargeOutput(t *testing.T) {
	var buf bytes.Buffer
	sw := encode.NewStreamWriter(&buf)
	long := strings.Repeat("x", 10000)
	encode.Encode(encode.Array{encode.String(long), encode.Integer(1)}, sw)
	require.NoError(t, sw.Flush())
	assert.Equal(t, `["`+long+`",1]`, buf.String())
}

func TestBuilders(t *testing.T) {
	a := encode.List([]int{1, 2}, func(i int) encode.Value { return encode.Integer(i) })
	assert.Equal(t, encode.Array{encode.Integer(1), encode.Integer(2)}, a)

	o := encode.Dict(map[string]string{"b": "2", "a": "1"}, func(s string) encode.Value { return encode.String(s) })
	assert.Equal(t, `{"a":"1","b":"2"}`, string(encode.Marshal(o)))

	var p *int
	assert.Equal(t, encode.Null{}, encode.Nullable(p, func(i int) encode.Value { return encode.Integer(i) }))
	x := 3
	assert.Equal(t, encode.Integer(3), encode.Nullable(&x, func(i int) encode.Value { return encode.Integer(i) }))

	got, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, encode.String("2"), got)
	_, ok = o.Get("z")
	assert.False(t, ok)
}

func TestDecimal_Copies(t *testing.T) {
	src := apd.New(125, -2)
	d := encode.NewDecimal(src)
	src.SetInt64(9)
	assert.Equal(t, "1.25", d.String())

	cp := d.Apd()
	cp.SetInt64(7)
	assert.Equal(t, "1.25", d.String())

	_, err := encode.ParseDecimal("1.2.3")
	assert.Error(t, err)
}

type order struct {
	ID    int64
	Price *apd.Decimal
	Tags  []string
	Note  decode.Option[string]
}

func (o order) value() encode.Value {
	return encode.Object{
		{Key: "id", Value: encode.Integer(o.ID)},
		{Key: "price", Value: encode.NewDecimal(o.Price)},
		{Key: "tags", Value: encode.List(o.Tags, func(s string) encode.Value { return encode.String(s) })},
		{Key: "note", Value: encode.Nullable(o.Note.Ptr(), func(s string) encode.Value { return encode.String(s) })},
	}
}

func orderDecoder() decode.Decoder[order] {
	return decode.Map4(func(id int64, price *apd.Decimal, tags []string, note decode.Option[string]) order {
		return order{id, price, tags, note}
	},
		decode.Field("id", decode.Int()),
		decode.Field("price", decode.Decimal()),
		decode.Field("tags", decode.List(decode.String())),
		decode.Field("note", decode.Nullable(decode.String())),
	)
}

func TestRoundTrip(t *testing.T) {
	in := []order{
		{ID: 1, Price: apd.New(1999, -2), Tags: []string{"a", "b"}, Note: decode.Some("gift")},
		{ID: -7, Price: apd.New(0, 0), Tags: []string{}, Note: decode.None[string]()},
	}
	for _, o := range in {
		data := encode.Marshal(o.value())
		got, err := decode.FromBytes(orderDecoder(), data)
		require.NoError(t, err, string(data))
		assert.Equal(t, o.ID, got.ID)
		assert.Equal(t, 0, got.Price.Cmp(o.Price))
		assert.Equal(t, o.Tags, got.Tags)
		assert.Equal(t, o.Note, got.Note)
	}
}
