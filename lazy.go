package gravity

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/gravity/internal/extractors"
	"github.com/mrjoshuak/gravity/internal/readability"
)

// LazyArticle computes article fields on first access and memoizes them for
// its own lifetime. Metadata getters read an untouched parse of the markup;
// the body pipeline runs at most once on a second parse. It is safe for
// concurrent use.
type LazyArticle struct {
	ext     *articleExtractor
	html    string
	options ExtractionOptions

	mu     sync.Mutex
	raw    *goquery.Document
	base   *url.URL
	err    error
	body   *readability.Body
	values map[string]any
}

// Lazy returns a LazyArticle for html. Nothing is parsed until a field is read.
func (e *articleExtractor) Lazy(html string, options *ExtractionOptions) *LazyArticle {
	if options == nil {
		options = &e.options
	}
	return &LazyArticle{
		ext:     e,
		html:    html,
		options: *options,
		values:  make(map[string]any),
	}
}

// document parses the metadata tree once. Callers hold l.mu.
func (l *LazyArticle) document() *goquery.Document {
	if l.raw != nil || l.err != nil {
		return l.raw
	}
	if l.options.MaxBufferSize > 0 && len(l.html) > l.options.MaxBufferSize {
		l.err = readability.WrapValidationError(readability.ErrDocumentLarge, "Lazy", "")
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(l.html))
	if err != nil {
		l.err = readability.WrapParseError(err, "Lazy", "failed to parse HTML document")
		return nil
	}
	base, err := pageURL(l.options.URL)
	if err != nil {
		l.err = err
		return nil
	}
	l.raw, l.base = doc, base
	return doc
}

// memo returns the cached value for key, computing it from the metadata tree
// on first use. A parse failure yields the zero value; see Err.
func memo[T any](l *LazyArticle, key string, compute func(doc *goquery.Document, base *url.URL) T) T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.values[key]; ok {
		return v.(T)
	}
	var zero T
	doc := l.document()
	if doc == nil {
		return zero
	}
	v := compute(doc, l.base)
	l.values[key] = v
	return v
}

// Title returns the cleaned page title.
func (l *LazyArticle) Title() string {
	return memo(l, "title", func(doc *goquery.Document, _ *url.URL) string { return extractors.Title(doc) })
}

// SoftTitle returns the title split only on soft delimiters.
func (l *LazyArticle) SoftTitle() string {
	return memo(l, "softTitle", func(doc *goquery.Document, _ *url.URL) string { return extractors.SoftTitle(doc) })
}

// Description returns the meta description.
func (l *LazyArticle) Description() string {
	return memo(l, "description", func(doc *goquery.Document, _ *url.URL) string { return extractors.Description(doc) })
}

// Authors returns the declared authors.
func (l *LazyArticle) Authors() []string {
	return memo(l, "authors", func(doc *goquery.Document, _ *url.URL) []string { return extractors.Authors(doc) })
}

// Date returns the publication date as written in the document, or "".
func (l *LazyArticle) Date() string {
	return memo(l, "date", func(doc *goquery.Document, _ *url.URL) string { return extractors.Date(doc) })
}

// Lang returns the language used for stopword statistics.
func (l *LazyArticle) Lang() string {
	return memo(l, "lang", func(doc *goquery.Document, _ *url.URL) string {
		return resolveLanguage(doc, l.options.Language)
	})
}

// Canonical returns the canonical link, resolved against the page URL.
func (l *LazyArticle) Canonical() string {
	return memo(l, "canonical", extractors.Canonical)
}

// Favicon returns the favicon address, resolved against the page URL.
func (l *LazyArticle) Favicon() string {
	return memo(l, "favicon", extractors.Favicon)
}

// JSONLD returns the first JSON-LD object on the page.
func (l *LazyArticle) JSONLD() json.RawMessage {
	return memo(l, "jsonld", func(doc *goquery.Document, _ *url.URL) json.RawMessage { return extractors.JSONLD(doc) })
}

// Text returns the formatted article body.
func (l *LazyArticle) Text() string {
	if b := l.parseBody(); b != nil {
		return b.Text
	}
	return ""
}

// Links returns the anchors inside the article body.
func (l *LazyArticle) Links() []Link {
	if b := l.parseBody(); b != nil {
		return b.Links
	}
	return nil
}

// Videos returns the embedded media inside the article body.
func (l *LazyArticle) Videos() []Video {
	if b := l.parseBody(); b != nil {
		return b.Videos
	}
	return nil
}

// HasBody reports whether an article root was found.
func (l *LazyArticle) HasBody() bool {
	if b := l.parseBody(); b != nil {
		return b.Found
	}
	return false
}

// Err returns the first parse or pipeline error, if any.
func (l *LazyArticle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// parseBody runs the body pipeline on its own tree so metadata reads
// never observe the cleaned document.
func (l *LazyArticle) parseBody() *readability.Body {
	lang := l.Lang()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.body != nil || l.err != nil {
		return l.body
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(l.html))
	if err != nil {
		l.err = readability.WrapParseError(err, "Lazy", "failed to parse HTML document")
		return nil
	}
	body, err := readability.NewFromDocument(doc, &readability.Options{
		Language:  lang,
		Stopwords: l.ext.words,
		Logger:    l.ext.logger,
	}).Parse()
	if err != nil {
		l.err = readability.WrapExtractionError(err, "Lazy", "")
		return nil
	}
	l.body = body
	return body
}

// Article materializes every field.
func (l *LazyArticle) Article() (*Article, error) {
	text := l.Text()
	if err := l.Err(); err != nil {
		return nil, err
	}
	a := &Article{
		Lang:    l.Lang(),
		Text:    text,
		Links:   l.Links(),
		Videos:  l.Videos(),
		HasBody: l.HasBody(),
	}
	if !l.options.SkipMetadata {
		l.mu.Lock()
		fillMetadata(a, l.document(), l.base)
		l.mu.Unlock()
	}
	return a, nil
}
