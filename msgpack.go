package jsoncomb

import (
	eng "github.com/reoring/jsoncomb/internal/engine"
)

// MsgpackDriver returns a driver that reads MessagePack documents into the same
// tree the default driver builds, so ParseOpt limits apply unchanged. Map keys
// must be strings. Binary and extension values are rejected.
func MsgpackDriver() Driver { return msgpackDriver{} }

type msgpackDriver struct{}

func (msgpackDriver) Name() string { return "msgpack" }

func (d msgpackDriver) Parse(b []byte, opt ParseOpt) (Node, error) {
	src := eng.NewMsgpack(b)
	v, err := eng.Build(src, toBuildOptions(opt))
	if err != nil {
		return nil, toParseError(d.Name(), src, err)
	}
	return NodeFromEngine(v), nil
}
