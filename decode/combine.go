package decode

import "github.com/reoring/jsoncomb"

// Map applies f to the result of d. Failures pass through unchanged.
func Map[A, B any](f func(A) B, d Decoder[A]) Decoder[B] {
	return func(n jsoncomb.Node) (B, Error) {
		a, err := d(n)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Apply runs df and then dv against the same node and applies the decoded
// function to the decoded value. The first failure is returned; a failure of
// df takes precedence over one of dv.
func Apply[A, B any](dv Decoder[A], df Decoder[func(A) B]) Decoder[B] {
	return func(n jsoncomb.Node) (B, Error) {
		var zero B
		f, err := df(n)
		if err != nil {
			return zero, err
		}
		a, err := dv(n)
		if err != nil {
			return zero, err
		}
		return f(a), nil
	}
}

// Bind runs d, passes its value to binder and runs the returned decoder
// against the same node. Use it when a later decoder depends on an earlier
// value, e.g. dispatching on a "type" member.
func Bind[A, B any](binder func(A) Decoder[B], d Decoder[A]) Decoder[B] {
	return func(n jsoncomb.Node) (B, Error) {
		a, err := d(n)
		if err != nil {
			var zero B
			return zero, err
		}
		return binder(a)(n)
	}
}

// Where keeps values accepted by pred and fails with Custom(msg) otherwise.
func Where[T any](pred func(T) bool, msg string, d Decoder[T]) Decoder[T] {
	return Bind(func(v T) Decoder[T] {
		if !pred(v) {
			return Fail[T](msg)
		}
		return Succeed(v)
	}, d)
}

// Lazy defers building a decoder until it first runs, which allows recursive
// decoders. The built decoder is not cached, so mk must be cheap and pure.
func Lazy[T any](mk func() Decoder[T]) Decoder[T] {
	return func(n jsoncomb.Node) (T, Error) { return mk()(n) }
}

// All runs every decoder against the same node and collects the results in
// order. It stops at the first failure.
func All[T any](ds ...Decoder[T]) Decoder[[]T] {
	return func(n jsoncomb.Node) ([]T, Error) {
		out := make([]T, 0, len(ds))
		for _, d := range ds {
			v, err := d(n)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}
