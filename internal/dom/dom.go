// Package dom provides the typed tree operations shared by every extraction
// stage: finding nodes by tag, selector or attribute, walking parents and
// siblings, and replacing, unwrapping or removing nodes in place.
package dom

import (
	"strings"
	"unicode/utf16"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Find returns the descendants of n matching a CSS selector, in document order.
func Find(n *html.Node, selector string) []*html.Node {
	if n == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(n).Find(selector).Nodes
}

// FindTags returns the element descendants of n whose tag is one of tags, in
// document order.
func FindTags(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) {
		if IsTag(c, tags...) {
			out = append(out, c)
		}
	})
	return out
}

// FindAttrContains returns element descendants whose attr value contains substr.
func FindAttrContains(n *html.Node, attr, substr string) []*html.Node {
	var out []*html.Node
	Walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && strings.Contains(Attr(c, attr), substr) {
			out = append(out, c)
		}
	})
	return out
}

// Walk calls fn for every descendant of n in document order, excluding n.
// The child list is read before fn runs so fn may detach the node it is given.
func Walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		fn(c)
		Walk(c, fn)
		c = next
	}
}

// IsTag reports whether n is an element with one of the given tag names.
func IsTag(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// Tag returns the tag name of an element, or "" for other node types.
func Tag(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// Attr returns the value of key on n, or "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether n carries key.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets key on n, keeping attribute order.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key from n.
func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Contents returns every child node of n, including text.
func Contents(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Parent returns the element parent of n, or nil when n is detached or a
// direct child of the document node.
func Parent(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil
	}
	return n.Parent
}

// PrevElement returns the nearest preceding element sibling.
func PrevElement(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextElement returns the nearest following element sibling.
func NextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PrevElements returns the preceding element siblings, nearest first.
func PrevElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for s := PrevElement(n); s != nil; s = PrevElement(s) {
		out = append(out, s)
	}
	return out
}

// IsAttached reports whether n is still connected to a document node.
func IsAttached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// Text returns the concatenated text of n and its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	Walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return b.String()
		}
	}
	return b.String()
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// NewElement returns a detached element with no attributes.
func NewElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atomOf(tag)}
}

func atomOf(tag string) atom.Atom {
	return atom.Lookup([]byte(tag))
}

// NewText returns a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Remove detaches n from its parent. Detached nodes are left alone.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceWith inserts nodes in place of n and detaches n.
func ReplaceWith(n *html.Node, nodes ...*html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	for _, r := range nodes {
		if r.Parent != nil {
			r.Parent.RemoveChild(r)
		}
		n.Parent.InsertBefore(r, n)
	}
	n.Parent.RemoveChild(n)
}

// ReplaceWithText replaces n with a single text node holding its text.
func ReplaceWithText(n *html.Node) {
	ReplaceWith(n, NewText(Text(n)))
}

// Unwrap replaces n with its children. An element with no children is removed.
func Unwrap(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	ReplaceWith(n, DetachChildren(n)...)
}

// DetachChildren removes and returns every child of n.
func DetachChildren(n *html.Node) []*html.Node {
	children := Contents(n)
	for _, c := range children {
		n.RemoveChild(c)
	}
	return children
}

// AppendChildren moves nodes under parent, in order.
func AppendChildren(parent *html.Node, nodes ...*html.Node) {
	for _, c := range nodes {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// Prepend inserts child as the first child of parent.
func Prepend(parent, child *html.Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.InsertBefore(child, parent.FirstChild)
}

// Clone deep-copies n. The copy is detached.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// JSLength returns the length of s in UTF-16 code units.
func JSLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
