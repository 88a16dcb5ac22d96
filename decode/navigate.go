package decode

import "github.com/reoring/jsoncomb"

// Field decodes the member name of an object with d. A non-object node fails
// with TypeMismatch at the current level; a missing member fails with
// AtField(name, NotFound); a failure of d is wrapped in AtField(name, ...).
func Field[T any](name string, d Decoder[T]) Decoder[T] {
	return func(n jsoncomb.Node) (T, Error) {
		var zero T
		if n.Kind() != jsoncomb.KindObject {
			return zero, mismatch("Object", n)
		}
		c, ok := n.Field(name)
		if !ok {
			return zero, &AtField{Name: name, Cause: &NotFound{}}
		}
		v, err := d(c)
		if err != nil {
			return zero, &AtField{Name: name, Cause: err}
		}
		return v, nil
	}
}

// Index decodes element i of an array with d. Out-of-range indices, negative
// ones included, fail with AtIndex(i, NotFound).
func Index[T any](i int, d Decoder[T]) Decoder[T] {
	return func(n jsoncomb.Node) (T, Error) {
		var zero T
		if n.Kind() != jsoncomb.KindArray {
			return zero, mismatch("Array", n)
		}
		c, ok := n.Index(i)
		if !ok {
			return zero, &AtIndex{Index: i, Cause: &NotFound{}}
		}
		v, err := d(c)
		if err != nil {
			return zero, &AtIndex{Index: i, Cause: err}
		}
		return v, nil
	}
}

// At follows a path of object members: At([]string{"a", "b"}, d) is
// Field("a", Field("b", d)). An empty path is d itself.
func At[T any](path []string, d Decoder[T]) Decoder[T] {
	for i := len(path) - 1; i >= 0; i-- {
		d = Field(path[i], d)
	}
	return d
}
