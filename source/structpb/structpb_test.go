package structpb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spb "google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/source/structpb"
)

func TestWrapStruct(t *testing.T) {
	s, err := spb.NewStruct(map[string]any{
		"name":  "svc",
		"port":  8080,
		"ratio": 0.25,
		"on":    true,
		"tags":  []any{"x", "y"},
		"none":  nil,
	})
	require.NoError(t, err)
	n := structpb.WrapStruct(s)

	name, err := decode.Decode(decode.Field("name", decode.String()), n)
	require.NoError(t, err)
	assert.Equal(t, "svc", name)

	port, err := decode.Decode(decode.Field("port", decode.Int()), n)
	require.NoError(t, err)
	assert.Equal(t, int64(8080), port)

	on, err := decode.Decode(decode.Field("on", decode.Bool()), n)
	require.NoError(t, err)
	assert.True(t, on)

	tags, err := decode.Decode(decode.Field("tags", decode.List(decode.String())), n)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tags)

	none, err := decode.Decode(decode.Field("none", decode.Nullable(decode.Int())), n)
	require.NoError(t, err)
	assert.False(t, none.IsSome())

	_, err = decode.Decode(decode.Field("ratio", decode.Int()), n)
	var c *decode.Custom
	require.ErrorAs(t, err, &c)
	assert.Contains(t, c.Message, "fractional")

	d, err := decode.Decode(decode.Field("ratio", decode.Decimal()), n)
	require.NoError(t, err)
	assert.Equal(t, "0.25", d.String())
}

func TestFields_Sorted(t *testing.T) {
	s, err := spb.NewStruct(map[string]any{"b": 1, "c": 2, "a": 3})
	require.NoError(t, err)
	pairs, err := decode.Decode(decode.KeyValuePairs(decode.Int()), structpb.WrapStruct(s))
	require.NoError(t, err)
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestDriver(t *testing.T) {
	d := structpb.Driver()
	assert.Equal(t, "protojson", d.Name())

	n, err := d.Parse([]byte(`{"a":[1,2.5,"s",null,true,{}]}`), jsoncomb.ParseOpt{})
	require.NoError(t, err)
	a, ok := n.Field("a")
	require.True(t, ok)
	var kinds []jsoncomb.Kind
	for _, e := range a.Elements() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []jsoncomb.Kind{
		jsoncomb.KindNumber, jsoncomb.KindNumber, jsoncomb.KindString,
		jsoncomb.KindNull, jsoncomb.KindBool, jsoncomb.KindObject,
	}, kinds)

	_, err = d.Parse([]byte(`{"a":`), jsoncomb.ParseOpt{})
	var pe *jsoncomb.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "protojson", pe.Driver)
}

func TestInt64Range(t *testing.T) {
	_, err := decode.Decode(decode.Int(), structpb.Wrap(spb.NewNumberValue(1e19)))
	var c *decode.Custom
	require.ErrorAs(t, err, &c)
	assert.Contains(t, c.Message, "overflows")

	assert.Equal(t, jsoncomb.KindNull, structpb.Wrap(nil).Kind())
}
