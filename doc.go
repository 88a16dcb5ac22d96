// Package jsoncomb holds the read-only JSON tree contract shared by the
// decode and encode engines, and the parser drivers that produce it.
//
//   - Node/Kind describe one node of an already-parsed document.
//   - Driver parses bytes into a Node; the default is backed by goccy/go-json,
//     alternatives live under source/ (fastjson, yaml) and can be installed with
//     SetDriver.
//   - Decoders live in package decode, the JSON value algebra and writers in
//     package encode.
//
// Typical usage:
//
//	type User struct {
//		Name string
//		Age  int64
//	}
//
//	user := decode.Map2(
//		func(name string, age int64) User { return User{name, age} },
//		decode.Field("name", decode.String()),
//		decode.Field("age", decode.Int()),
//	)
//	u, err := decode.FromBytes(user, data)
//
//	out := encode.Marshal(encode.Object{
//		{Key: "name", Value: encode.String(u.Name)},
//		{Key: "age", Value: encode.Integer(u.Age)},
//	})
package jsoncomb
