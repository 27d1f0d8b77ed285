package domain

// Node is a read-only view of one element in a parsed feed document.
// Implementations must return children in document order.
type Node interface {
	// Name is the element's local name.
	Name() string
	// Attr returns the attribute value and whether it was present.
	Attr(name string) (string, bool)
	// Text is the element's character data, trimmed.
	Text() string
	Children() []Node
	ChildrenByName(name string) []Node
	// Child returns the first child with the given name.
	Child(name string) (Node, bool)
}

// childText returns the text of the first child called name, or "".
func childText(n Node, name string) string {
	if c, ok := n.Child(name); ok {
		return c.Text()
	}
	return ""
}

// attr returns the attribute value, or "" when absent.
func attr(n Node, name string) string {
	v, _ := n.Attr(name)
	return v
}
