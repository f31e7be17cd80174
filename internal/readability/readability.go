package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
	"github.com/mrjoshuak/gravity/internal/extractors"
	"github.com/mrjoshuak/gravity/internal/stopwords"
	"github.com/mrjoshuak/gravity/types"
)

// Options configures a single extraction
type Options struct {
	Language  string           // ISO 639-1 code used for stopword statistics
	Stopwords *stopwords.Cache // Stopword cache, shared across extractions
	Logger    zerolog.Logger   // Logger for pipeline events
}

// defaultOptions returns the default options
func defaultOptions() Options {
	return Options{
		Language:  stopwords.DefaultLanguage,
		Stopwords: stopwords.Shared(),
		Logger:    zerolog.Nop(),
	}
}

// Body is the result of running the pipeline on one document
type Body struct {
	Text      string        // Formatted article text
	Links     []types.Link  // Links inside the cleaned root
	Videos    []types.Video // Embedded media inside the root
	Found     bool          // Whether a root node was selected
	RootTag   string        // Tag of the selected root
	RootScore int           // Gravity score of the selected root
}

// Readability runs the content-body pipeline over one document. The document
// is mutated in place and must not be shared with another extraction.
type Readability struct {
	doc     *goquery.Document // The HTML document
	options Options           // Options for the pipeline
	lang    string            // Language used for statistics
	scores  scoreTable        // Gravity scores keyed by node identity
	log     zerolog.Logger
}

// NewFromDocument creates a new pipeline from a goquery document
func NewFromDocument(doc *goquery.Document, opts *Options) *Readability {
	options := defaultOptions()
	if opts != nil {
		options = *opts
	}
	if options.Stopwords == nil {
		options.Stopwords = stopwords.Shared()
	}
	if options.Language == "" {
		options.Language = stopwords.DefaultLanguage
	}

	return &Readability{
		doc:     doc,
		options: options,
		lang:    options.Language,
		scores:  make(scoreTable),
		log:     options.Logger.With().Str("lang", options.Language).Logger(),
	}
}

// NewFromHTML creates a new pipeline from an HTML string
func NewFromHTML(markup string, opts *Options) (*Readability, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, WrapParseError(err, "NewFromHTML", "failed to parse HTML document")
	}

	return NewFromDocument(doc, opts), nil
}

// Parse cleans the document, selects the article root and returns its text,
// links and videos. A document without a root yields an empty Body, not an error.
func (r *Readability) Parse() (*Body, error) {
	if r.doc == nil || r.doc.Selection == nil || r.doc.Selection.Length() == 0 {
		return nil, WrapValidationError(ErrNoDocument, "Parse", "")
	}

	r.Clean()

	root := r.CalculateBestNode()
	if root == nil {
		r.log.Debug().Msg("no extractable body")
		return &Body{}, nil
	}

	body := &Body{
		Found:     true,
		RootTag:   dom.Tag(root),
		RootScore: r.scores.score(root),
	}

	body.Videos = extractors.Videos(r.selection(root))

	r.PostCleanup(root)
	body.Links = extractors.Links(r.selection(root))

	body.Text = r.Format(root)
	return body, nil
}

// Score returns the accumulated gravity score of n
func (r *Readability) Score(n *html.Node) int {
	return r.scores.score(n)
}

// Document returns the document being processed
func (r *Readability) Document() *goquery.Document {
	return r.doc
}

// root returns the document node
func (r *Readability) root() *html.Node {
	return r.doc.Selection.Get(0)
}

// selection wraps n for the goquery-based extractors
func (r *Readability) selection(n *html.Node) *goquery.Selection {
	return r.doc.FindNodes(n)
}

// wordStats computes stopword statistics for the text under n
func (r *Readability) wordStats(n *html.Node) stopwords.WordStats {
	return r.options.Stopwords.Stats(dom.Text(n), r.lang)
}
