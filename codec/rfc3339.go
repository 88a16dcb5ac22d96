package codec

import (
	"time"

	"github.com/google/uuid"

	"github.com/reoring/jsoncomb/decode"
	"github.com/reoring/jsoncomb/encode"
)

// TimeRFC3339 converts between RFC 3339 strings and time.Time. Times are
// written in UTC with trailing zero fractions trimmed.
func TimeRFC3339() Codec[time.Time] {
	return New(decode.Time(), func(t time.Time) encode.Value {
		return encode.String(t.UTC().Format(time.RFC3339Nano))
	})
}

// UUID converts between canonical UUID strings and uuid.UUID.
func UUID() Codec[uuid.UUID] {
	return New(decode.UUID(), func(id uuid.UUID) encode.Value { return encode.String(id.String()) })
}
