package jsoncomb

import (
	"io"
	"sync"

	"github.com/pkg/errors"

	eng "github.com/reoring/jsoncomb/internal/engine"
)

// Driver turns raw input into a Node via a pluggable SPI. The default
// implementation is backed by goccy/go-json and may be swapped with SetDriver.
type Driver interface {
	Parse(b []byte, opt ParseOpt) (Node, error)
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = defaultDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the go-json backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = defaultDriver{}
	driverMu.Unlock()
}

// CurrentDriver returns the driver used by Parse.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// DefaultDriver returns the go-json backed driver regardless of SetDriver.
func DefaultDriver() Driver { return defaultDriver{} }

// Parse parses b with the current driver.
func Parse(b []byte, opts ...ParseOpt) (Node, error) {
	return CurrentDriver().Parse(b, lastOpt(opts))
}

// ParseReader reads r to the end and parses it with the current driver.
func ParseReader(r io.Reader, opts ...ParseOpt) (Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "jsoncomb: read input")
	}
	return Parse(b, opts...)
}

type defaultDriver struct{}

func (defaultDriver) Name() string { return "go-json" }

func (d defaultDriver) Parse(b []byte, opt ParseOpt) (Node, error) {
	src := eng.NewBytes(b)
	v, err := eng.Build(src, toBuildOptions(opt))
	if err != nil {
		return nil, toParseError(d.Name(), src, err)
	}
	return NodeFromEngine(v), nil
}

func toBuildOptions(opt ParseOpt) eng.BuildOptions {
	bo := eng.BuildOptions{MaxDepth: opt.MaxDepth}
	if opt.OnDuplicateKey == Error {
		bo.OnDuplicate = eng.DupError
	}
	return bo
}

func toParseError(driver string, src eng.TokenSource, err error) error {
	var be *eng.BuildError
	if errors.As(err, &be) {
		cause := errors.New(be.Message)
		switch be.Code {
		case eng.CodeDepth:
			cause = ErrDepth
		case eng.CodeDuplicate:
			cause = ErrDuplicateKey
		case eng.CodeTrailing:
			cause = ErrTrailingData
		}
		return &ParseError{Driver: driver, Path: be.Path, Offset: be.Offset, Err: cause}
	}
	return &ParseError{Driver: driver, Offset: src.Location(), Err: err}
}
