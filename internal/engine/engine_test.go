package engine

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, s string, opt BuildOptions) (*Value, error) {
	t.Helper()
	return Build(NewBytes([]byte(s)), opt)
}

func TestBuild_Scalars(t *testing.T) {
	v, err := build(t, `"x"`, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, ValueString, v.Kind)
	assert.Equal(t, "x", v.Str)

	v, err = build(t, `-1.50e3`, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, ValueNumber, v.Kind)
	assert.Equal(t, "-1.50e3", v.Str, "number literals are kept verbatim")

	v, err = build(t, `false`, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, ValueBool, v.Kind)
	assert.False(t, v.Bool)

	v, err = build(t, `null`, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, ValueNull, v.Kind)
}

func TestBuild_Containers(t *testing.T) {
	v, err := build(t, `{"b":[1,{"c":null}],"a":"s"}`, BuildOptions{})
	require.NoError(t, err)
	require.Equal(t, ValueObject, v.Kind)
	assert.Equal(t, []any{"b", "a"}, v.Members.Keys())

	b, ok := v.Member("b")
	require.True(t, ok)
	require.Len(t, b.Elems, 2)
	c, ok := b.Elems[1].Member("c")
	require.True(t, ok)
	assert.Equal(t, ValueNull, c.Kind)

	_, ok = b.Member("x")
	assert.False(t, ok)
}

func TestBuild_Duplicates(t *testing.T) {
	v, err := build(t, `{"a":1,"b":2,"a":3}`, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, v.Members.Keys())
	a, _ := v.Member("a")
	assert.Equal(t, "3", a.Str)

	_, err = build(t, `{"x":{"a~b":1,"a~b":2}}`, BuildOptions{OnDuplicate: DupError})
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeDuplicate, be.Code)
	assert.Equal(t, "/x/a~0b", be.Path)
	assert.Equal(t, "duplicate key at /x/a~0b", be.Error())
}

func TestBuild_MaxDepth(t *testing.T) {
	_, err := build(t, `[[1]]`, BuildOptions{MaxDepth: 2})
	require.NoError(t, err)

	_, err = build(t, `[[[1]]]`, BuildOptions{MaxDepth: 2})
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeDepth, be.Code)
	assert.Equal(t, "/0/0", be.Path)

	_, err = build(t, `{}`, BuildOptions{MaxDepth: 0})
	assert.NoError(t, err)
}

func TestBuild_Trailing(t *testing.T) {
	_, err := build(t, `1 2`, BuildOptions{})
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeTrailing, be.Code)
}

func TestBuild_Truncated(t *testing.T) {
	for _, in := range []string{``, `[`, `{"a":1`} {
		_, err := build(t, in, BuildOptions{})
		assert.Error(t, err, in)
	}
	_, err := build(t, ``, BuildOptions{})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDuplicates(t *testing.T) {
	paths, err := Duplicates(NewBytes([]byte(`[{"a":1},{"a":1,"a":2},{"n":{"b":0,"b":{"c":1,"c":2}}}]`)), -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"/1/a", "/2/n/b", "/2/n/b/c"}, paths)

	paths, err = Duplicates(NewBytes([]byte(`{"a":1,"a":2}`)), 0)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestTokenSource_Keys(t *testing.T) {
	src := NewBytes([]byte(`{"k":"v","o":{"k2":[true]}}`))
	var kinds []Kind
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		KindBeginObject, KindKey, KindString, KindKey, KindBeginObject,
		KindKey, KindBeginArray, KindBool, KindEndArray, KindEndObject, KindEndObject,
	}, kinds)
}
