// Package yaml provides a jsoncomb.Node backed by a gopkg.in/yaml.v3 node
// tree, so the same decoders read YAML and JSON documents.
//
// Scalars are classified by their resolved tag: !!null, !!bool, !!int and
// !!float map to Null, Bool and Number; every other scalar (including
// timestamps) is a String. Aliases are followed; merge keys are not expanded.
// Driver.Parse rejects alias cycles and documents whose aliases expand past
// the ratio yaml.v3 allows, so trees it returns are finite.
// Field returns the last occurrence of a repeated key.
package yaml

import (
	"iter"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/jsoncomb"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
)

// Driver returns a jsoncomb.Driver that parses the first YAML document of
// the input.
func Driver() jsoncomb.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "yaml" }

func (d driver) Parse(b []byte, opt jsoncomb.ParseOpt) (jsoncomb.Node, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(b, &doc); err != nil {
		return nil, &jsoncomb.ParseError{Driver: d.Name(), Offset: -1, Err: err}
	}
	if doc.Kind == 0 {
		return nil, &jsoncomb.ParseError{Driver: d.Name(), Offset: -1, Err: errors.New("empty document")}
	}
	if err := enforce(&doc, opt); err != nil {
		return nil, err
	}
	return Wrap(&doc), nil
}

var (
	errAliasCycle     = errors.New("alias refers to one of its own ancestors")
	errAliasExpansion = errors.New("document contains excessive aliasing")
)

// Alias expansion budget, the same ratio curve yaml.v3 applies when
// decoding into Go values.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(visited int) float64 {
	switch {
	case visited <= aliasRatioRangeLow:
		return 0.99
	case visited >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(visited-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// walker checks a document as decoders will see it, with aliases expanded.
// Documents it accepts have no alias cycles and a bounded expanded size.
type walker struct {
	opt        jsoncomb.ParseOpt
	open       map[*yamlv3.Node]struct{} // containers on the current path
	visited    int
	expanded   int // nodes reached through an alias
	aliasDepth int
}

func enforce(root *yamlv3.Node, opt jsoncomb.ParseOpt) error {
	w := &walker{opt: opt, open: map[*yamlv3.Node]struct{}{}}
	return w.walk(root, "", 0)
}

func (w *walker) fail(path string, err error) error {
	return &jsoncomb.ParseError{Driver: "yaml", Path: path, Offset: -1, Err: err}
}

func (w *walker) walk(raw *yamlv3.Node, path string, depth int) error {
	n := resolve(raw)
	if n == nil {
		return nil
	}
	w.visited++
	if w.aliasDepth > 0 {
		w.expanded++
	}
	if w.expanded > 100 && w.visited > 1000 &&
		float64(w.expanded)/float64(w.visited) > allowedAliasRatio(w.visited) {
		return w.fail(path, errAliasExpansion)
	}
	if n.Kind != yamlv3.MappingNode && n.Kind != yamlv3.SequenceNode {
		return nil
	}
	if _, cyc := w.open[n]; cyc {
		return w.fail(path, errAliasCycle)
	}
	depth++
	if w.opt.MaxDepth > 0 && depth > w.opt.MaxDepth {
		return w.fail(path, jsoncomb.ErrDepth)
	}
	if raw.Kind == yamlv3.AliasNode {
		w.aliasDepth++
		defer func() { w.aliasDepth-- }()
	}
	w.open[n] = struct{}{}
	defer delete(w.open, n)

	if n.Kind == yamlv3.SequenceNode {
		for i, c := range n.Content {
			if err := w.walk(c, jsoncomb.AppendIndex(path, i), depth); err != nil {
				return err
			}
		}
		return nil
	}
	seen := map[string]struct{}{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := resolve(n.Content[i]).Value
		p := jsoncomb.AppendKey(path, k)
		if _, dup := seen[k]; dup && w.opt.OnDuplicateKey == jsoncomb.Error {
			return w.fail(p, jsoncomb.ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		if err := w.walk(n.Content[i+1], p, depth); err != nil {
			return err
		}
	}
	return nil
}

// Wrap exposes a yaml.v3 node as a Node. Document nodes are unwrapped to
// their content. The tree must not be modified while in use.
func Wrap(n *yamlv3.Node) jsoncomb.Node { return node{n: resolve(n)} }

// resolve skips document wrappers and follows aliases.
func resolve(n *yamlv3.Node) *yamlv3.Node {
	for n != nil {
		switch {
		case n.Kind == yamlv3.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yamlv3.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

type node struct{ n *yamlv3.Node }

func (n node) Kind() jsoncomb.Kind {
	if n.n == nil {
		return jsoncomb.KindNull
	}
	switch n.n.Kind {
	case yamlv3.MappingNode:
		return jsoncomb.KindObject
	case yamlv3.SequenceNode:
		return jsoncomb.KindArray
	case yamlv3.ScalarNode:
		switch n.n.ShortTag() {
		case tagNull:
			return jsoncomb.KindNull
		case tagBool:
			return jsoncomb.KindBool
		case tagInt, tagFloat:
			return jsoncomb.KindNumber
		default:
			return jsoncomb.KindString
		}
	default:
		return jsoncomb.KindNull
	}
}

func (n node) AsString() (string, error) {
	if k := n.Kind(); k != jsoncomb.KindString {
		return "", jsoncomb.KindError(jsoncomb.KindString, k)
	}
	return n.n.Value, nil
}

func (n node) AsBool() (bool, error) {
	if k := n.Kind(); k != jsoncomb.KindBool {
		return false, jsoncomb.KindError(jsoncomb.KindBool, k)
	}
	var b bool
	if err := n.n.Decode(&b); err != nil {
		return false, errors.Wrap(err, "yaml: bool")
	}
	return b, nil
}

func (n node) AsInt64() (int64, error) {
	if k := n.Kind(); k != jsoncomb.KindNumber {
		return 0, jsoncomb.KindError(jsoncomb.KindNumber, k)
	}
	if n.n.ShortTag() == tagInt {
		var i int64
		if err := n.n.Decode(&i); err != nil {
			return 0, errors.Errorf("number %s overflows int64", n.n.Value)
		}
		return i, nil
	}
	return jsoncomb.ParseInt64(n.n.Value)
}

func (n node) AsFloat64() (float64, error) {
	if k := n.Kind(); k != jsoncomb.KindNumber {
		return 0, jsoncomb.KindError(jsoncomb.KindNumber, k)
	}
	var f float64
	if err := n.n.Decode(&f); err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", n.n.Value)
	}
	return f, nil
}

func (n node) AsDecimal() (*apd.Decimal, error) {
	if k := n.Kind(); k != jsoncomb.KindNumber {
		return nil, jsoncomb.KindError(jsoncomb.KindNumber, k)
	}
	if n.n.ShortTag() == tagInt {
		// 0x1f and 0o17 are valid YAML ints but not decimal literals
		var i int64
		if err := n.n.Decode(&i); err == nil {
			return apd.New(i, 0), nil
		}
	}
	return jsoncomb.ParseDecimal(n.n.Value)
}

func (n node) Field(name string) (jsoncomb.Node, bool) {
	if n.n == nil || n.n.Kind != yamlv3.MappingNode {
		return nil, false
	}
	c := n.n.Content
	// last occurrence wins, as in the go-json tree
	for i := len(c) - 2; i >= 0; i -= 2 {
		if resolve(c[i]).Value == name {
			return node{n: resolve(c[i+1])}, true
		}
	}
	return nil, false
}

func (n node) Index(i int) (jsoncomb.Node, bool) {
	if n.n == nil || n.n.Kind != yamlv3.SequenceNode || i < 0 || i >= len(n.n.Content) {
		return nil, false
	}
	return node{n: resolve(n.n.Content[i])}, true
}

func (n node) Fields() iter.Seq2[string, jsoncomb.Node] {
	return func(yield func(string, jsoncomb.Node) bool) {
		if n.n == nil || n.n.Kind != yamlv3.MappingNode {
			return
		}
		c := n.n.Content
		for i := 0; i+1 < len(c); i += 2 {
			if !yield(resolve(c[i]).Value, node{n: resolve(c[i+1])}) {
				return
			}
		}
	}
}

func (n node) Elements() iter.Seq2[int, jsoncomb.Node] {
	return func(yield func(int, jsoncomb.Node) bool) {
		if n.n == nil || n.n.Kind != yamlv3.SequenceNode {
			return
		}
		for i, c := range n.n.Content {
			if !yield(i, node{n: resolve(c)}) {
				return
			}
		}
	}
}

func (n node) Len() int {
	if n.n == nil {
		return 0
	}
	switch n.n.Kind {
	case yamlv3.MappingNode:
		return len(n.n.Content) / 2
	case yamlv3.SequenceNode:
		return len(n.n.Content)
	default:
		return 0
	}
}
