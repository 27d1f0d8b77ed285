package ndfd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/couchcryptid/ndfd-forecast-service/internal/domain"
)

// ParseDocument reads an XML document and returns its root element.
func ParseDocument(r io.Reader) (domain.Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("parse xml: document has no root element")
	}
	return node{root}, nil
}

// ParseString is ParseDocument for in-memory documents.
func ParseString(s string) (domain.Node, error) {
	return ParseDocument(strings.NewReader(s))
}

// node adapts an etree element to domain.Node.
type node struct {
	el *etree.Element
}

func (n node) Name() string { return n.el.Tag }

// Attr matches unprefixed attributes only, so xsi:type never reads as type.
func (n node) Attr(name string) (string, bool) {
	for _, a := range n.el.Attr {
		if a.Space == "" && a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text joins the element's direct character data, skipping child elements.
func (n node) Text() string {
	var b strings.Builder
	for _, tok := range n.el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

func (n node) Children() []domain.Node {
	return wrap(n.el.ChildElements())
}

func (n node) ChildrenByName(name string) []domain.Node {
	return wrap(n.el.SelectElements(name))
}

func (n node) Child(name string) (domain.Node, bool) {
	c := n.el.SelectElement(name)
	if c == nil {
		return nil, false
	}
	return node{c}, true
}

func wrap(els []*etree.Element) []domain.Node {
	out := make([]domain.Node, len(els))
	for i, e := range els {
		out[i] = node{e}
	}
	return out
}
