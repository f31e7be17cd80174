// Package extractors holds the collaborators around the core pipeline: page
// metadata read from the raw document, and the links and videos read from
// the selected article root.
package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// Candidate is an XPath expression whose matches may hold a field value.
// When Attr is empty the text of the match is used.
type Candidate struct {
	XPath string
	Attr  string
}

// FirstValue tries candidates in order and returns the first non-blank
// trimmed value.
func FirstValue(root *html.Node, candidates ...Candidate) string {
	if root == nil {
		return ""
	}
	for _, c := range candidates {
		nodes, err := htmlquery.QueryAll(root, c.XPath)
		if err != nil {
			continue
		}
		for _, n := range nodes {
			var v string
			if c.Attr == "" {
				v = htmlquery.InnerText(n)
			} else {
				v = htmlquery.SelectAttr(n, c.Attr)
			}
			if v = simplifiers.CleanNull(strings.TrimSpace(v)); v != "" {
				return v
			}
		}
	}
	return ""
}

// firstAttr returns the trimmed attribute of the first element matching
// selector, in document order.
func firstAttr(doc *goquery.Document, selector, attr string) string {
	v, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(simplifiers.CleanNull(v))
}

// firstText returns the text of the first element matching selector
func firstText(doc *goquery.Document, selector string) string {
	return doc.Find(selector).First().Text()
}

// metaContent is the content attribute of the first match of selector
func metaContent(doc *goquery.Document, selector string) string {
	return firstAttr(doc, selector, "content")
}
