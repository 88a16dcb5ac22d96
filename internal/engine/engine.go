package engine

import (
	"io"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text, never converted here
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ValueKind is the kind of a built tree value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueArray
	ValueObject
)

// Value is one node of a tree built from a TokenSource. Object members keep
// document order in a linked hash map keyed by member name.
type Value struct {
	Kind    ValueKind
	Str     string // string payload or number literal
	Bool    bool
	Elems   []*Value
	Members *linkedhashmap.Map
}

// Member returns the object member stored under name.
func (v *Value) Member(name string) (*Value, bool) {
	if v.Members == nil {
		return nil, false
	}
	m, ok := v.Members.Get(name)
	if !ok {
		return nil, false
	}
	return m.(*Value), true
}

// Build consumes exactly one value from src and returns it as a tree. Any
// token after the value is reported as ErrTrailing.
func Build(src TokenSource, opt BuildOptions) (*Value, error) {
	b := &builder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := b.value(tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, &BuildError{Code: CodeTrailing, Offset: src.Location(), Message: "unexpected data after top-level value"}
	}
	return v, nil
}

type builder struct {
	src   TokenSource
	opt   BuildOptions
	depth int
}

func (b *builder) value(tok Token, path string) (*Value, error) {
	switch tok.Kind {
	case KindBeginObject:
		return b.object(path)
	case KindBeginArray:
		return b.array(path)
	case KindString:
		return &Value{Kind: ValueString, Str: tok.String}, nil
	case KindNumber:
		return &Value{Kind: ValueNumber, Str: tok.Number}, nil
	case KindBool:
		return &Value{Kind: ValueBool, Bool: tok.Bool}, nil
	case KindNull:
		return &Value{Kind: ValueNull}, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func (b *builder) enter(path string) error {
	b.depth++
	if b.opt.MaxDepth > 0 && b.depth > b.opt.MaxDepth {
		return &BuildError{Code: CodeDepth, Path: pointer(path), Offset: b.src.Location(), Message: "max depth exceeded"}
	}
	return nil
}

func (b *builder) object(path string) (*Value, error) {
	if err := b.enter(path); err != nil {
		return nil, err
	}
	defer func() { b.depth-- }()
	m := linkedhashmap.New()
	for {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		if tok.Kind == KindEndObject {
			return &Value{Kind: ValueObject, Members: m}, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		child := path + "/" + escape(tok.String)
		if _, dup := m.Get(tok.String); dup && b.opt.OnDuplicate == DupError {
			return nil, &BuildError{Code: CodeDuplicate, Path: child, Offset: b.src.Location(), Message: "duplicate key"}
		}
		vt, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		v, err := b.value(vt, child)
		if err != nil {
			return nil, err
		}
		// last occurrence wins, first position is kept
		m.Put(tok.String, v)
	}
}

func (b *builder) array(path string) (*Value, error) {
	if err := b.enter(path); err != nil {
		return nil, err
	}
	defer func() { b.depth-- }()
	arr := &Value{Kind: ValueArray}
	for {
		tok, err := b.src.NextToken()
		if err != nil {
			return nil, eof(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := b.value(tok, path+"/"+itoa(len(arr.Elems)))
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, v)
	}
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
