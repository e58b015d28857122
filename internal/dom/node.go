package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attr returns the value of the attribute with the given key.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr sets an attribute on n, replacing any existing value.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// removeAttr removes all attributes with the given key from n.
func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// hasClass reports whether n has the given class.
func hasClass(n *html.Node, class string) bool {
	classes, _ := attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// addClass adds a class to n if it doesn't already have it.
func addClass(n *html.Node, class string) {
	if n == nil || n.Type != html.ElementNode || hasClass(n, class) {
		return
	}

	classes, ok := attr(n, "class")
	if !ok || strings.TrimSpace(classes) == "" {
		setAttr(n, "class", class)
		return
	}
	setAttr(n, "class", classes+" "+class)
}

// elementChildren returns the element children of n in document order.
// These are the nodes addressed by :nth-child.
func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// isSpan reports whether n is a <span> element.
func isSpan(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Span
}

// clone returns a deep copy of n, detached from any tree.
func clone(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(clone(c))
	}
	return out
}
