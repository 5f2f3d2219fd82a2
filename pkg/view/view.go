// Package view is the small slice of a host UI framework that domid plugs
// into: element construction, the attribute-binding capability and the id
// attribute sinks the lint rules watch.
package view

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AttributeValue is the attribute-binding capability. Values implementing it
// can be bound to an attribute without converting them to text first.
type AttributeValue interface {
	AttributeValue() string
}

// Attribute is a rendered key/value pair.
type Attribute struct {
	Key string
	Val string
}

// Attr binds value to the attribute key. value may be an AttributeValue, a
// string, a fmt.Stringer or anything fmt can print.
func Attr(key string, value any) Attribute {
	return Attribute{Key: strings.ToLower(key), Val: attributeText(value)}
}

// ID binds value to the id attribute.
func ID(value any) Attribute {
	return Attr("id", value)
}

func attributeText(value any) string {
	switch v := value.(type) {
	case AttributeValue:
		return v.AttributeValue()
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Node is a renderable tree.
type Node struct {
	n *html.Node
}

// El builds an element. Children may be Attribute, Node or string (text).
func El(tag string, children ...any) Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, c := range children {
		switch v := c.(type) {
		case Attribute:
			n.Attr = append(n.Attr, html.Attribute{Key: v.Key, Val: v.Val})
		case Node:
			if v.n != nil {
				n.AppendChild(v.n)
			}
		case string:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		default:
			panic(fmt.Sprintf("view: unsupported child %T", c))
		}
	}
	return Node{n: n}
}

// Text builds a text node.
func Text(s string) Node {
	return Node{n: &html.Node{Type: html.TextNode, Data: s}}
}

// Attr returns the value of attribute key on the root element.
func (n Node) Attr(key string) (string, bool) {
	if n.n == nil {
		return "", false
	}
	for _, a := range n.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Render writes n as HTML.
func Render(w io.Writer, n Node) error {
	if n.n == nil {
		return nil
	}
	return html.Render(w, n.n)
}

// String renders n, ignoring write errors.
func (n Node) String() string {
	var b strings.Builder
	_ = Render(&b, n)
	return b.String()
}
