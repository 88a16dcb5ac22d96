package decode

// The MapN family combines N independent decoders that all read the same
// node. Each MapN is Apply of its last decoder over Map(N-1), so decoders run
// left to right and the first failure is returned.

// Map2 decodes 2 values from the same node and combines them with fn.
func Map2[A, B, R any](fn func(A, B) R, da Decoder[A], db Decoder[B]) Decoder[R] {
	return Apply(db, Map(func(a A) func(B) R {
		return func(b B) R { return fn(a, b) }
	}, da))
}

// Map3 decodes 3 values from the same node and combines them with fn.
func Map3[A, B, C, R any](fn func(A, B, C) R, da Decoder[A], db Decoder[B], dc Decoder[C]) Decoder[R] {
	return Apply(dc, Map2(func(a A, b B) func(C) R {
		return func(c C) R { return fn(a, b, c) }
	}, da, db))
}

func Map4[A, B, C, D, R any](fn func(A, B, C, D) R, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D]) Decoder[R] {
	return Apply(dd, Map3(func(a A, b B, c C) func(D) R {
		return func(d D) R { return fn(a, b, c, d) }
	}, da, db, dc))
}

func Map5[A, B, C, D, E, R any](fn func(A, B, C, D, E) R, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E]) Decoder[R] {
	return Apply(de, Map4(func(a A, b B, c C, d D) func(E) R {
		return func(e E) R { return fn(a, b, c, d, e) }
	}, da, db, dc, dd))
}

func Map6[A, B, C, D, E, F, R any](fn func(A, B, C, D, E, F) R, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F]) Decoder[R] {
	return Apply(df, Map5(func(a A, b B, c C, d D, e E) func(F) R {
		return func(f F) R { return fn(a, b, c, d, e, f) }
	}, da, db, dc, dd, de))
}

func Map7[A, B, C, D, E, F, G, R any](fn func(A, B, C, D, E, F, G) R, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G]) Decoder[R] {
	return Apply(dg, Map6(func(a A, b B, c C, d D, e E, f F) func(G) R {
		return func(g G) R { return fn(a, b, c, d, e, f, g) }
	}, da, db, dc, dd, de, df))
}

// Map8 decodes 8 values from the same node and combines them with fn.
func Map8[A, B, C, D, E, F, G, H, R any](fn func(A, B, C, D, E, F, G, H) R, da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G], dh Decoder[H]) Decoder[R] {
	return Apply(dh, Map7(func(a A, b B, c C, d D, e E, f F, g G) func(H) R {
		return func(h H) R { return fn(a, b, c, d, e, f, g, h) }
	}, da, db, dc, dd, de, df, dg))
}

// T2 .. T8 are the results of Tuple2 .. Tuple8.
type T2[A, B any] struct {
	V1 A
	V2 B
}

type T3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

type T4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

type T5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

type T6[A, B, C, D, E, F any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
}

type T7[A, B, C, D, E, F, G any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
}

type T8[A, B, C, D, E, F, G, H any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
}

// Tuple2 is Map2 with a T2 constructor.
func Tuple2[A, B any](da Decoder[A], db Decoder[B]) Decoder[T2[A, B]] {
	return Map2(func(a A, b B) T2[A, B] { return T2[A, B]{a, b} }, da, db)
}

func Tuple3[A, B, C any](da Decoder[A], db Decoder[B], dc Decoder[C]) Decoder[T3[A, B, C]] {
	return Map3(func(a A, b B, c C) T3[A, B, C] { return T3[A, B, C]{a, b, c} }, da, db, dc)
}

func Tuple4[A, B, C, D any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D]) Decoder[T4[A, B, C, D]] {
	return Map4(func(a A, b B, c C, d D) T4[A, B, C, D] { return T4[A, B, C, D]{a, b, c, d} }, da, db, dc, dd)
}

func Tuple5[A, B, C, D, E any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E]) Decoder[T5[A, B, C, D, E]] {
	return Map5(func(a A, b B, c C, d D, e E) T5[A, B, C, D, E] { return T5[A, B, C, D, E]{a, b, c, d, e} }, da, db, dc, dd, de)
}

func Tuple6[A, B, C, D, E, F any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F]) Decoder[T6[A, B, C, D, E, F]] {
	return Map6(func(a A, b B, c C, d D, e E, f F) T6[A, B, C, D, E, F] { return T6[A, B, C, D, E, F]{a, b, c, d, e, f} }, da, db, dc, dd, de, df)
}

func Tuple7[A, B, C, D, E, F, G any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G]) Decoder[T7[A, B, C, D, E, F, G]] {
	return Map7(func(a A, b B, c C, d D, e E, f F, g G) T7[A, B, C, D, E, F, G] {
		return T7[A, B, C, D, E, F, G]{a, b, c, d, e, f, g}
	}, da, db, dc, dd, de, df, dg)
}

func Tuple8[A, B, C, D, E, F, G, H any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G], dh Decoder[H]) Decoder[T8[A, B, C, D, E, F, G, H]] {
	return Map8(func(a A, b B, c C, d D, e E, f F, g G, h H) T8[A, B, C, D, E, F, G, H] {
		return T8[A, B, C, D, E, F, G, H]{a, b, c, d, e, f, g, h}
	}, da, db, dc, dd, de, df, dg, dh)
}
