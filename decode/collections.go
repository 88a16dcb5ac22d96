package decode

import "github.com/reoring/jsoncomb"

// Pair is one decoded object member.
type Pair[T any] struct {
	Key   string
	Value T
}

// List decodes every element of an array with d. If any element fails, the
// result is a Multiple holding one AtIndex per failing element in ascending
// index order, and no partial list is returned.
func List[T any](d Decoder[T]) Decoder[[]T] {
	return func(n jsoncomb.Node) ([]T, Error) {
		if n.Kind() != jsoncomb.KindArray {
			return nil, mismatch("Array", n)
		}
		out := make([]T, 0, n.Len())
		var errs []Error
		for i, e := range n.Elements() {
			v, err := d(e)
			if err != nil {
				errs = append(errs, &AtIndex{Index: i, Cause: err})
				continue
			}
			if errs == nil {
				out = append(out, v)
			}
		}
		if errs != nil {
			return nil, &Multiple{Errors: errs}
		}
		return out, nil
	}
}

// KeyValuePairs decodes every member value of an object with d, in the
// object's own order. Failures are aggregated like List, as AtField entries.
func KeyValuePairs[T any](d Decoder[T]) Decoder[[]Pair[T]] {
	return func(n jsoncomb.Node) ([]Pair[T], Error) {
		if n.Kind() != jsoncomb.KindObject {
			return nil, mismatch("Object", n)
		}
		out := make([]Pair[T], 0, n.Len())
		var errs []Error
		for k, c := range n.Fields() {
			v, err := d(c)
			if err != nil {
				errs = append(errs, &AtField{Name: k, Cause: err})
				continue
			}
			if errs == nil {
				out = append(out, Pair[T]{Key: k, Value: v})
			}
		}
		if errs != nil {
			return nil, &Multiple{Errors: errs}
		}
		return out, nil
	}
}

// Dict is KeyValuePairs collected into a map.
func Dict[T any](d Decoder[T]) Decoder[map[string]T] {
	return Map(func(ps []Pair[T]) map[string]T {
		m := make(map[string]T, len(ps))
		for _, p := range ps {
			m[p.Key] = p.Value
		}
		return m
	}, KeyValuePairs(d))
}
