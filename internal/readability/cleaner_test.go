package readability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/gravity/internal/dom"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "childless div becomes paragraph",
			body: `<div>text1</div>`,
			want: `<p>text1</p>`,
		},
		{
			name: "scripts styles and comments",
			body: `<p>keep</p><script>var x;</script><style>p{}</style><!-- note -->`,
			want: `<p>keep</p>`,
		},
		{
			name: "denylist uses first present attribute",
			body: `<p id="footer">gone</p><p class="sidebar">kept</p><p name="comment-form">gone</p><p id="main" class="footer">kept</p>`,
			want: `<p class="sidebar">kept</p><p id="main" class="footer">kept</p>`,
		},
		{
			name: "div patterns",
			body: `<div class="caption">gone</div><div id="x facebook">gone</div><p>kept</p>`,
			want: `<p>kept</p>`,
		},
		{
			name: "emphasis without image is unwrapped",
			body: `<p>a <em>b</em> <em><img src="x.png"></em></p>`,
			want: `<p>a b <em><img src="x.png"/></em></p>`,
		},
		{
			name: "code blocks become text",
			body: `<pre><code>x := 1</code></pre>`,
			want: `x := 1`,
		},
		{
			name: "drop caps",
			body: `<p><span class="dropcap">T</span>he start</p>`,
			want: `<p>The start</p>`,
		},
		{
			name: "underlines and paragraph spans",
			body: `<p>a <u>b</u> <span>c</span></p>`,
			want: `<p>a b c</p>`,
		},
		{
			name: "errant line breaks",
			body: "<p>line one\nline two</p>",
			want: `<p>line one line two</p>`,
		},
		{
			name: "article attributes",
			body: `<article id="story" class="post" name="n"><p>x</p></article>`,
			want: `<article><p>x</p></article>`,
		},
		{
			name: "div with blocks is regrouped",
			body: `<div>Intro text <a href="#">link</a> tail<p>para</p><ul><li>x</li></ul></div>`,
			want: `<p>Intro text  <a href="#">link</a>  tail</p><p>para</p><p><li>x</li></p>`,
		},
		{
			name: "nested divs",
			body: `<div><div>inner</div></div>`,
			want: `<p>inner</p>`,
		},
		{
			name: "loose span",
			body: `<p>a</p><span>loose</span>`,
			want: `<p>a</p><p>loose</p>`,
		},
		{
			name: "whitespace text is dropped when regrouping",
			body: "<div>\t<p>one</p> <p>two</p></div>",
			want: `<p>one</p><p>two</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReadability(t, `<html><body>`+tt.body+`</body></html>`)
			r.Clean()
			assert.Equal(t, tt.want, bodyHTML(r))
		})
	}
}

func TestCleanBodyClass(t *testing.T) {
	r := newTestReadability(t, `<html><body class="home page"><p>x</p></body></html>`)
	r.Clean()

	body := r.doc.Find("body").Get(0)
	require.True(t, dom.HasAttr(body, "class"))
	assert.Equal(t, "", dom.Attr(body, "class"))
}

func TestCleanIdempotent(t *testing.T) {
	r := newTestReadability(t, `<html><body>`+
		`<div id="navbar"><a href="/">Home</a></div>`+
		`<div>Intro text <a href="#">link</a> tail<p>para</p></div>`+
		`<div>bare</div><script>x()</script><!-- c -->`+
		`<p>one <u>two</u></p></body></html>`)

	r.Clean()
	first := bodyHTML(r)
	r.Clean()
	assert.Equal(t, first, bodyHTML(r))

	assert.Equal(t, 0, r.doc.Find("script, style, div").Length())
	for _, n := range r.doc.Find("*").Nodes {
		assert.False(t, RegexpBadNodes.MatchString(dom.Attr(n, "id")), "denylisted id survived: %s", dom.Attr(n, "id"))
	}
}

func TestReplacementGroupsAnchors(t *testing.T) {
	r := newTestReadability(t, `<html><body><div><a href="/1">one</a><a href="/2">two</a>middle text<a href="/3">three</a><a href="/4">four</a></div></body></html>`)
	r.Clean()

	// Preceding anchors join nearest first and only the next anchor follows.
	// Unclaimed elements are emitted before the pending text run.
	assert.Equal(t,
		`<p>four</p><p> <a href="/2">two</a>  <a href="/1">one</a> middle text <a href="/3">three</a> </p>`,
		bodyHTML(r))
}

func TestReplacementGroupsInlineElements(t *testing.T) {
	r := newTestReadability(t, `<html><body><div>lead <b>bold</b> tail<p>para</p></div></body></html>`)
	r.Clean()

	// An inline element becomes its own paragraph ahead of the text around it.
	assert.Equal(t, `<p>bold</p><p>lead  tail</p><p>para</p>`, bodyHTML(r))
}

func TestRunText(t *testing.T) {
	assert.Equal(t, "", runText(" \t\n "))
	assert.Equal(t, "a\n\nb", runText("a\n\tb"))
	assert.Equal(t, "x", runText("x"))
}
