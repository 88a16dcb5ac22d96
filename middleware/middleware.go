// Package middleware decodes HTTP request bodies with a decoder before the
// wrapped handler runs. Bad bodies are answered with 400 and a JSON list of
// issues; the decoded value is available through FromContext.
package middleware

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/reoring/jsoncomb"
	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

// ctxKeyDecoded is a typed context key; the type parameter keeps keys
// distinct per T.
type ctxKeyDecoded[T any] struct{}

// ContextWith attaches a decoded value to the context.
func ContextWith[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded[T]{}, v)
}

// FromContext retrieves the value stored by Body for the same T.
func FromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyDecoded[T]{}).(T)
	return v, ok
}

// DefaultParseOpt returns the recommended options for HTTP JSON boundaries:
// duplicate keys are errors and nesting is bounded.
func DefaultParseOpt() jsoncomb.ParseOpt {
	return jsoncomb.ParseOpt{OnDuplicateKey: jsoncomb.Error, MaxDepth: 64}
}

// Options configures Body.
type Options struct {
	Parse    jsoncomb.ParseOpt
	MaxBytes int64       // 0 means 1 MiB
	Logger   *zap.Logger // nil disables logging
}

const defaultMaxBytes = 1 << 20

// Body returns middleware that decodes the request body with d.
func Body[T any](d decode.Decoder[T], opt Options) func(http.Handler) http.Handler {
	limit := opt.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				log.Debug("request body rejected", zap.String("path", r.URL.Path), zap.Error(err))
				status := http.StatusBadRequest
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				writeIssues(w, status, decode.Flatten(err))
				return
			}
			v, err := decode.FromBytes(d, data, opt.Parse)
			if err != nil {
				iss := decode.Flatten(err)
				log.Debug("request body invalid", zap.String("path", r.URL.Path), zap.Int("issues", len(iss)))
				writeIssues(w, http.StatusBadRequest, iss)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWith(r.Context(), v)))
		})
	}
}

// ErrorPayload shapes issues for JSON responses:
// {"issues":[{"path":"/a","code":"not_found","message":"..."}]}.
func ErrorPayload(iss decode.Issues) encode.Value {
	return encode.Object{{Key: "issues", Value: encode.List(iss, func(it decode.Issue) encode.Value {
		return encode.Object{
			{Key: "path", Value: encode.String(it.Path.Pointer())},
			{Key: "code", Value: encode.String(it.Code)},
			{Key: "message", Value: encode.String(it.Message)},
		}
	})}}
}

func writeIssues(w http.ResponseWriter, status int, iss decode.Issues) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sw := encode.NewStreamWriter(w)
	encode.Encode(ErrorPayload(iss), sw)
	_ = sw.Flush() // the client may be gone
}
