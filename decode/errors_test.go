package decode_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/i18n"
)

func TestPath_Render(t *testing.T) {
	p := decode.Path{
		{Field: "items"},
		{Index: 2, IsIndex: true},
		{Field: "odd key"},
		{Field: "a/b~c"},
	}
	assert.Equal(t, "/items/2/odd key/a~1b~0c", p.Pointer())
	assert.Equal(t, `$.items[2]["odd key"]["a/b~c"]`, p.String())
	assert.Equal(t, "", decode.Path{}.Pointer())
	assert.Equal(t, "/", decode.Path{{Field: ""}}.Pointer())
	assert.Equal(t, "$", decode.Path{}.String())
}

func TestFlatten(t *testing.T) {
	err := &decode.Multiple{Errors: []decode.Error{
		&decode.AtField{Name: "a", Cause: &decode.NotFound{}},
		&decode.AtField{Name: "b", Cause: &decode.AtIndex{Index: 0, Cause: &decode.Custom{Message: "boom"}}},
		&decode.TypeMismatch{Expected: "String", Actual: "Null"},
	}}
	iss := decode.Flatten(err)
	require.Len(t, iss, 3)

	assert.Equal(t, decode.CodeNotFound, iss[0].Code)
	assert.Equal(t, "/a", iss[0].Path.Pointer())
	assert.Equal(t, decode.CodeCustom, iss[1].Code)
	assert.Equal(t, "/b/0", iss[1].Path.Pointer())
	assert.Equal(t, "boom", iss[1].Message)
	assert.Equal(t, decode.CodeInvalidType, iss[2].Code)
	assert.Equal(t, "", iss[2].Path.Pointer())

	assert.Nil(t, decode.Flatten(nil))
}

func TestFlatten_SiblingPathsDoNotAlias(t *testing.T) {
	err := &decode.AtField{Name: "root", Cause: &decode.Multiple{Errors: []decode.Error{
		&decode.AtIndex{Index: 0, Cause: &decode.NotFound{}},
		&decode.AtIndex{Index: 1, Cause: &decode.NotFound{}},
	}}}
	iss := decode.Flatten(err)
	require.Len(t, iss, 2)
	assert.Equal(t, "/root/0", iss[0].Path.Pointer())
	assert.Equal(t, "/root/1", iss[1].Path.Pointer())
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := decode.Issues{
		{Path: decode.Path{{Field: "a"}}, Message: "m1"},
		{Path: decode.Path{{Field: "b"}}, Message: "m2"},
		{Path: decode.Path{{Field: "c"}}, Message: "m3"},
		{Path: decode.Path{{Field: "d"}}, Message: "m4"},
	}
	assert.Equal(t, "$.a: m1; $.b: m2; $.c: m3; ... (total 4)", iss.Error())
	assert.Equal(t, "", decode.Issues{}.Error())
}

func TestRender(t *testing.T) {
	_, err := run(t, decode.List(decode.Field("id", decode.Int())), `[{"id":1},{},{"id":"x"}]`)
	assert.Equal(t,
		"$[1].id: value not found\n$[2].id: expected Int, got String",
		decode.Render(err))
	assert.Equal(t, "", decode.Render(nil))
	assert.Equal(t, "$: plain", decode.Render(errors.New("plain")))
}

func TestError_MessagesAndUnwrap(t *testing.T) {
	err := &decode.AtField{Name: "a", Cause: &decode.AtIndex{Index: 3, Cause: &decode.NotFound{}}}
	assert.Equal(t, "$.a[3]: value not found", err.Error())

	var nf *decode.NotFound
	assert.ErrorAs(t, err, &nf)

	m := &decode.Multiple{Errors: []decode.Error{&decode.Custom{Message: "x"}, &decode.NotFound{}}}
	assert.ErrorAs(t, m, &nf)
	var c *decode.Custom
	require.ErrorAs(t, m, &c)
	assert.Equal(t, "x", c.Message)
}

func TestError_Translated(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	i18n.SetLanguage("ja")
	msg := (&decode.TypeMismatch{Expected: "Int", Actual: "String"}).Error()
	assert.NotContains(t, msg, "expected")
	assert.Contains(t, msg, "Int")
}

func TestFlatten_WrappedDecodeError(t *testing.T) {
	cause := &decode.AtField{Name: "id", Cause: &decode.NotFound{}}
	iss := decode.Flatten(pkgerrors.Wrap(cause, "load order"))
	require.Len(t, iss, 1)
	assert.Equal(t, decode.CodeNotFound, iss[0].Code)
	assert.Equal(t, "/id", iss[0].Path.Pointer())
}
