package readability

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/gravity/internal/dom"
	"github.com/mrjoshuak/gravity/internal/stopwords"
	"github.com/mrjoshuak/gravity/types"
)

const (
	para1 = "This is the first paragraph of the story and it is about the town that we all know."
	para2 = "It was a quiet place where most of the people were happy with what they had."
	para3 = "In the end there was nothing more that could be said about it by any of them."
)

func newTestReadability(t *testing.T, markup string) *Readability {
	t.Helper()
	r, err := NewFromHTML(markup, &Options{
		Language:  "en",
		Stopwords: stopwords.NewCache(nil, zerolog.Nop()),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	return r
}

func bodyHTML(r *Readability) string {
	return dom.InnerHTML(r.doc.Find("body").Get(0))
}

func TestParseArticle(t *testing.T) {
	r := newTestReadability(t, `<html><head><title>T</title></head><body>`+
		`<header><a href="/">Home</a> <a href="/about">About</a></header>`+
		`<article><p>`+para1+`</p><p>`+para2+`</p>`+
		`<p>Read the <a href="/more">full report</a> of all that we know about it here.</p></article>`+
		`</body></html>`)

	body, err := r.Parse()
	require.NoError(t, err)

	assert.True(t, body.Found)
	assert.Equal(t, "article", body.RootTag)
	assert.Greater(t, body.RootScore, 0)
	assert.Equal(t, para1+" "+para2+" Read the full report of all that we know about it here.", body.Text)
	assert.Equal(t, []types.Link{{Href: "/more", Text: "full report"}}, body.Links)
	assert.Empty(t, body.Videos)
}

func TestParseVideosBeforePostCleanup(t *testing.T) {
	r := newTestReadability(t, `<html><body><article>`+
		`<p>`+para1+`</p><p>`+para2+`</p>`+
		`<div><iframe src="https://player.example/v" width="640" height="360"></iframe></div>`+
		`</article></body></html>`)

	body, err := r.Parse()
	require.NoError(t, err)
	assert.Equal(t, []types.Video{{Src: "https://player.example/v", Width: "640", Height: "360"}}, body.Videos)
}

func TestParseNoBody(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"empty", ``},
		{"list only", `<html><body><ul><li>short</li></ul></body></html>`},
		{"too few stopwords", `<html><body><p>Hello world</p></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := newTestReadability(t, tt.html).Parse()
			require.NoError(t, err)
			assert.False(t, body.Found)
			assert.Empty(t, body.Text)
			assert.Empty(t, body.Links)
			assert.Empty(t, body.Videos)
		})
	}
}

func TestParseNilDocument(t *testing.T) {
	_, err := NewFromDocument(nil, nil).Parse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDocument))
	assert.True(t, IsValidationError(err))
}

func TestFallbackLanguageBehavesLikeEnglish(t *testing.T) {
	markup := `<html><body><article><p>` + para1 + `</p><p>` + para2 + `</p></article></body></html>`
	cache := stopwords.NewCache(nil, zerolog.Nop())

	en, err := NewFromHTML(markup, &Options{Language: "en", Stopwords: cache, Logger: zerolog.Nop()})
	require.NoError(t, err)
	enBody, err := en.Parse()
	require.NoError(t, err)

	unknown, err := NewFromHTML(markup, &Options{Language: "xx-unknown", Stopwords: cache, Logger: zerolog.Nop()})
	require.NoError(t, err)
	unknownBody, err := unknown.Parse()
	require.NoError(t, err)

	assert.Equal(t, enBody, unknownBody)
	assert.True(t, cache.FellBack("xx-unknown"))
}
