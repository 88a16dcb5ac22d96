// Package yaml is an encode.Writer that builds a gopkg.in/yaml.v3 node tree.
package yaml

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/jsoncomb/encode"
)

// Writer collects encode events into a YAML document. Member order is kept.
type Writer struct {
	root  *yamlv3.Node
	stack []*yamlv3.Node
}

var _ encode.Writer = (*Writer)(nil)

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) add(n *yamlv3.Node) {
	if len(w.stack) == 0 {
		w.root = n
		return
	}
	top := w.stack[len(w.stack)-1]
	top.Content = append(top.Content, n)
}

func (w *Writer) push(n *yamlv3.Node) {
	w.add(n)
	w.stack = append(w.stack, n)
}

func (w *Writer) pop() {
	if n := len(w.stack); n > 0 {
		w.stack = w.stack[:n-1]
	}
}

func scalar(tag, value string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
}

func (w *Writer) WriteStartObject() { w.push(&yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}) }
func (w *Writer) WriteEndObject()   { w.pop() }
func (w *Writer) WriteStartArray()  { w.push(&yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}) }
func (w *Writer) WriteEndArray()    { w.pop() }

// WriteField appends the key node; the next value completes the pair.
func (w *Writer) WriteField(key string) { w.add(scalar("!!str", key)) }

func (w *Writer) WriteNull()           { w.add(scalar("!!null", "null")) }
func (w *Writer) WriteBool(b bool)     { w.add(scalar("!!bool", strconv.FormatBool(b))) }
func (w *Writer) WriteString(s string) { w.add(scalar("!!str", s)) }

func (w *Writer) WriteNumber(n encode.Number) {
	switch n := n.(type) {
	case encode.Integer:
		w.add(scalar("!!int", strconv.FormatInt(int64(n), 10)))
	case encode.Float:
		f := float64(n)
		switch {
		case math.IsNaN(f):
			w.add(scalar("!!float", ".nan"))
		case math.IsInf(f, 1):
			w.add(scalar("!!float", ".inf"))
		case math.IsInf(f, -1):
			w.add(scalar("!!float", "-.inf"))
		default:
			w.addNumber(strconv.FormatFloat(f, 'g', -1, 64))
		}
	case encode.Decimal:
		w.addNumber(n.String())
	default:
		w.WriteNull()
	}
}

// addNumber tags the literal the way a YAML reader would resolve it, so no
// explicit tag is emitted.
func (w *Writer) addNumber(lit string) {
	tag := "!!float"
	if !strings.ContainsAny(lit, ".eE") {
		tag = "!!int"
	}
	w.add(scalar(tag, lit))
}

// Node returns the built document, or nil when nothing was written.
func (w *Writer) Node() *yamlv3.Node {
	if w.root == nil {
		return nil
	}
	return &yamlv3.Node{Kind: yamlv3.DocumentNode, Content: []*yamlv3.Node{w.root}}
}

// Bytes renders the document with two-space indentation.
func (w *Writer) Bytes() ([]byte, error) {
	doc := w.Node()
	if doc == nil {
		return nil, errors.New("yaml: nothing written")
	}
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "yaml: encode")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "yaml: encode")
	}
	return buf.Bytes(), nil
}

// Marshal encodes v as a YAML document.
func Marshal(v encode.Value) ([]byte, error) {
	w := NewWriter()
	encode.Encode(v, w)
	return w.Bytes()
}
