package decode

import (
	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/i18n"
)

// OrElse tries d1 and, if it fails for any reason, runs d2 against the same
// node. The error of d1 is discarded; the result is always d2's.
func OrElse[T any](d1, d2 Decoder[T]) Decoder[T] {
	return func(n jsoncomb.Node) (T, Error) {
		if v, err := d1(n); err == nil {
			return v, nil
		}
		return d2(n)
	}
}

// OneOf tries each decoder in order and returns the first success. Only the
// error of the last alternative is reported when all of them fail.
func OneOf[T any](ds ...Decoder[T]) Decoder[T] {
	if len(ds) == 0 {
		return Fail[T](i18n.T("no_alternatives", nil))
	}
	d := ds[0]
	for _, next := range ds[1:] {
		d = OrElse(d, next)
	}
	return d
}

// Try is OrElse(d, Succeed(def)); it never fails.
func Try[T any](d Decoder[T], def T) Decoder[T] {
	return OrElse(d, Succeed(def))
}

// Optional runs d and reports None on any failure, not only on a missing
// value. It never fails.
func Optional[T any](d Decoder[T]) Decoder[Option[T]] {
	return func(n jsoncomb.Node) (Option[T], Error) {
		v, err := d(n)
		if err != nil {
			return None[T](), nil
		}
		return Some(v), nil
	}
}

// Nullable reports None for a null node and otherwise runs d, keeping its
// failures.
func Nullable[T any](d Decoder[T]) Decoder[Option[T]] {
	return func(n jsoncomb.Node) (Option[T], Error) {
		if n.Kind() == jsoncomb.KindNull {
			return None[T](), nil
		}
		v, err := d(n)
		if err != nil {
			return None[T](), err
		}
		return Some(v), nil
	}
}
