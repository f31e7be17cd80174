package gravity

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/mrjoshuak/gravity/internal/extractors"
	"github.com/mrjoshuak/gravity/internal/readability"
	"github.com/mrjoshuak/gravity/internal/stopwords"
)

// Extractor defines the interface for article extraction.
type Extractor interface {
	// ExtractFromHTML extracts the article body and metadata from an HTML string
	ExtractFromHTML(html string, options *ExtractionOptions) (*Article, error)

	// ExtractFromReader extracts the article body and metadata from an io.Reader
	ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Article, error)

	// Lazy returns a view of html whose fields are computed on first access
	Lazy(html string, options *ExtractionOptions) *LazyArticle
}

// settings collects extractor-wide configuration
type settings struct {
	options ExtractionOptions
	logger  zerolog.Logger
	loader  stopwords.Loader
}

// Option configures an Extractor.
type Option func(*settings)

// WithLanguage sets the language used for stopword statistics.
// An empty code detects the language from the document.
func WithLanguage(lang string) Option {
	return func(s *settings) {
		s.options.Language = lang
	}
}

// WithURL sets the page address used to resolve the origin, canonical link
// and favicon.
func WithURL(pageURL string) Option {
	return func(s *settings) {
		s.options.URL = pageURL
	}
}

// WithMaxBufferSize sets the maximum markup size in bytes.
// Zero or a negative size disables the limit.
func WithMaxBufferSize(size int) Option {
	return func(s *settings) {
		s.options.MaxBufferSize = size
	}
}

// WithTimeout sets the timeout duration for extraction.
// Zero or a negative duration disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.options.Timeout = timeout
	}
}

// WithoutMetadata skips title, author, date and the other metadata fields.
func WithoutMetadata() Option {
	return func(s *settings) {
		s.options.SkipMetadata = true
	}
}

// WithLogger sets the logger for extraction events. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStopwordsDir reads stopword lists named stopwords-<lang>.txt from dir,
// falling back to the built-in lists for languages the directory lacks.
func WithStopwordsDir(dir string) Option {
	return func(s *settings) {
		s.loader = stopwords.Chain(stopwords.DirLoader(dir), stopwords.EmbeddedLoader())
	}
}

// WithStopwordLoader replaces the source of stopword lists.
func WithStopwordLoader(loader StopwordLoader) Option {
	return func(s *settings) {
		s.loader = loader
	}
}

// articleExtractor is the concrete implementation of the Extractor interface.
// Stopword lists are cached per extractor and shared by all its extractions.
type articleExtractor struct {
	options ExtractionOptions
	logger  zerolog.Logger
	words   *stopwords.Cache
}

// New creates a new Extractor with the provided options.
//
// Example:
//
//	ext := gravity.New(
//	    gravity.WithLanguage("es"),
//	    gravity.WithTimeout(time.Second*10),
//	)
func New(opts ...Option) Extractor {
	s := settings{
		options: DefaultOptions(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &articleExtractor{
		options: s.options,
		logger:  s.logger,
		words:   stopwords.NewCache(s.loader, s.logger),
	}
}

// ExtractFromHTML extracts the article from an HTML string.
// A nil options uses the extractor's options.
func (e *articleExtractor) ExtractFromHTML(html string, options *ExtractionOptions) (*Article, error) {
	if options == nil {
		options = &e.options
	}

	if options.MaxBufferSize > 0 && len(html) > options.MaxBufferSize {
		return nil, readability.WrapValidationError(readability.ErrDocumentLarge, "ExtractFromHTML",
			fmt.Sprintf("%d bytes exceeds limit of %d", len(html), options.MaxBufferSize))
	}

	if options.Timeout <= 0 {
		return e.extract(html, options)
	}

	type result struct {
		article *Article
		err     error
	}

	// Buffered so the worker can finish after a timeout without blocking
	resultCh := make(chan result, 1)
	go func() {
		article, err := e.extract(html, options)
		resultCh <- result{article, err}
	}()

	select {
	case r := <-resultCh:
		return r.article, r.err
	case <-time.After(options.Timeout):
		e.logger.Warn().Dur("timeout", options.Timeout).Msg("extraction timed out")
		return nil, readability.WrapTimeoutError(readability.ErrTimeout, "ExtractFromHTML",
			fmt.Sprintf("extraction timed out after %v", options.Timeout))
	}
}

// ExtractFromReader reads the entire content from r and passes it to ExtractFromHTML.
func (e *articleExtractor) ExtractFromReader(r io.Reader, options *ExtractionOptions) (*Article, error) {
	if options == nil {
		options = &e.options
	}

	// Read one byte past the limit so oversized input is still rejected
	if options.MaxBufferSize > 0 {
		r = io.LimitReader(r, int64(options.MaxBufferSize)+1)
	}

	html, err := io.ReadAll(r)
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to read input")
	}

	return e.ExtractFromHTML(string(html), options)
}

// extract runs metadata extraction on the raw document, then the body
// pipeline on the same tree.
func (e *articleExtractor) extract(html string, options *ExtractionOptions) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, readability.WrapParseError(err, "extract", "failed to parse HTML document")
	}

	base, err := pageURL(options.URL)
	if err != nil {
		return nil, err
	}

	lang := resolveLanguage(doc, options.Language)
	article := &Article{Lang: lang}
	if !options.SkipMetadata {
		fillMetadata(article, doc, base)
	}

	r := readability.NewFromDocument(doc, &readability.Options{
		Language:  lang,
		Stopwords: e.words,
		Logger:    e.logger,
	})
	body, err := r.Parse()
	if err != nil {
		return nil, readability.WrapExtractionError(err, "extract", "")
	}

	article.Text = body.Text
	article.Links = body.Links
	article.Videos = body.Videos
	article.HasBody = body.Found
	return article, nil
}

// resolveLanguage returns lang, or the document's declared language, or the
// language detected from its paragraphs, or English
func resolveLanguage(doc *goquery.Document, lang string) string {
	if lang != "" {
		return lang
	}
	if declared := extractors.Lang(doc); declared != "" {
		return declared
	}
	if detected := extractors.DetectLang(doc); detected != "" {
		return detected
	}
	return stopwords.DefaultLanguage
}

func pageURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, readability.WrapValidationError(err, "extract", "invalid page URL")
	}
	return u, nil
}

// fillMetadata reads every metadata field from the uncleaned document
func fillMetadata(article *Article, doc *goquery.Document, base *url.URL) {
	article.Title = extractors.Title(doc)
	article.SoftTitle = extractors.SoftTitle(doc)
	article.Description = extractors.Description(doc)
	article.Keywords = extractors.Keywords(doc)
	article.Authors = extractors.Authors(doc)
	article.Date = extractors.Date(doc)
	article.Locale = extractors.Locale(doc)
	article.Type = extractors.Type(doc)
	article.Image = extractors.Image(doc)
	article.Publisher = extractors.Publisher(doc)
	article.SiteName = extractors.SiteName(doc)
	article.Copyright = extractors.Copyright(doc)
	article.Tags = extractors.Tags(doc)
	article.JSONLD = extractors.JSONLD(doc)
	article.Canonical = extractors.Canonical(doc, base)
	article.Favicon = extractors.Favicon(doc, base)
	article.Origin = extractors.Origin(base)
}
