package dom

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func body(doc *goquery.Document) *html.Node {
	return doc.Find("body").Get(0)
}

func TestFindAndTags(t *testing.T) {
	doc := parse(t, `<body><div id="a"><p>one</p><span><p>two</p></span></div><pre>x</pre></body>`)

	ps := FindTags(body(doc), "p", "pre")
	require.Len(t, ps, 3)
	assert.Equal(t, "one", Text(ps[0]))
	assert.Equal(t, "two", Text(ps[1]))
	assert.Equal(t, "pre", Tag(ps[2]))

	assert.Len(t, Find(body(doc), "div p"), 2)
	assert.Len(t, FindAttrContains(body(doc), "id", "a"), 1)
}

func TestSiblingsAndParents(t *testing.T) {
	doc := parse(t, `<body><p>1</p>text<div>2</div><p id="x">3</p></body>`)
	x := doc.Find("#x").Get(0)

	prev := PrevElements(x)
	require.Len(t, prev, 2)
	assert.Equal(t, "div", Tag(prev[0]))
	assert.Equal(t, "p", Tag(prev[1]))
	assert.Equal(t, "body", Tag(Parent(x)))
	assert.Nil(t, NextElement(x))
	assert.Nil(t, Parent(doc.Find("html").Get(0)))
}

func TestUnwrapAndReplace(t *testing.T) {
	doc := parse(t, `<body><p>a <u>b <i>c</i></u> d</p><b></b></body>`)

	Unwrap(doc.Find("u").Get(0))
	assert.Equal(t, `<p>a b <i>c</i> d</p><b></b>`, InnerHTML(body(doc)))

	Unwrap(doc.Find("b").Get(0))
	assert.Equal(t, 0, doc.Find("b").Length())

	i := doc.Find("i").Get(0)
	ReplaceWithText(i)
	assert.False(t, IsAttached(i))
	assert.Equal(t, `<p>a b c d</p>`, InnerHTML(body(doc)))
}

func TestPrependAndAttrs(t *testing.T) {
	doc := parse(t, `<body><div class="c"><p>x</p></div></body>`)
	div := doc.Find("div").Get(0)

	p := NewElement("p")
	AppendChildren(p, NewText("first"))
	Prepend(div, p)
	assert.Equal(t, `<p>first</p><p>x</p>`, InnerHTML(div))

	SetAttr(div, "id", "main")
	RemoveAttr(div, "class")
	assert.Equal(t, "main", Attr(div, "id"))
	assert.False(t, HasAttr(div, "class"))

	clone := Clone(div)
	assert.False(t, IsAttached(clone))
	assert.Equal(t, OuterHTML(div), OuterHTML(clone))
}

func TestJSLength(t *testing.T) {
	assert.Equal(t, 3, JSLength("abc"))
	assert.Equal(t, 2, JSLength("😀"))
	assert.Equal(t, 1, JSLength("é"))
}
