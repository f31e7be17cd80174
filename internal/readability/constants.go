// Package readability implements the content-body extraction pipeline:
// tree cleaning, gravity scoring, sibling recovery, post-cleanup and text
// formatting over a single parsed document.
package readability

import (
	"regexp"
)

// Scoring constants
const (
	// MinParagraphStopWords is the stopword count a paragraph must exceed to be scored
	MinParagraphStopWords = 2

	// BoostMinStopWords is the stopword count a preceding paragraph must exceed to boost a node
	BoostMinStopWords = 5

	// BoostMaxSteps is how many preceding paragraphs are inspected for a boost
	BoostMaxSteps = 3

	// BoostWeight scales the decaying boost award
	BoostWeight = 50.0

	// NegativeScoringMinNodes is the node count above which bottom nodes are penalized
	NegativeScoringMinNodes = 15

	// NegativeScoringFraction is the share of trailing nodes that are penalized
	NegativeScoringFraction = 0.25

	// NegativeScoringCap is the penalty magnitude above which a small boost is awarded instead
	NegativeScoringCap = 40.0

	// NegativeScoringOverride is the boost used when the penalty exceeds the cap
	NegativeScoringOverride = 5.0

	// HighLinkDensity is the link ratio at which a node is considered navigation
	HighLinkDensity = 1.0

	// DefaultSiblingBaseline is used when no paragraph under the root qualifies
	DefaultSiblingBaseline = 100000.0

	// SiblingBaselineRatio is the fraction of the baseline a sibling paragraph must exceed
	SiblingBaselineRatio = 0.3

	// MinSubParagraphLength is the length below which paragraphs are pruned from containers
	MinSubParagraphLength = 25

	// ChildScoreThreshold is the fraction of the root score a child must reach to survive
	ChildScoreThreshold = 0.08

	// MinFormattedStopWords is the stopword count below which the formatter drops a node
	MinFormattedStopWords = 3
)

// ScoreTags are the paragraph-like elements that feed the gravity score
var ScoreTags = []string{"p", "pre", "td"}

// BlockTags are the descendants that stop a div or span from becoming a single paragraph
var BlockTags = []string{"a", "blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}

// Selectors used by the cleaner
const (
	SelectorCodeBlocks = "[class*='highlight-'], pre code, code, pre, ul.task-list"
	SelectorDropCaps   = "span[class~=dropcap], span[class~=drop_cap]"
	SelectorParaSpans  = "p span"
)

// Regular expressions used by the cleaner
var (
	// Boilerplate tokens matched against id, class or name
	RegexpBadNodes = regexp.MustCompile(`(?i)` +
		`^side$|combx|retweet|mediaarticlerelated|menucontainer|navbar|partner-gravity-ad|` +
		`video-full-transcript|storytopbar-bucket|utility-bar|inline-share-tools|comment|` +
		`PopularQuestions|contact|foot|footer|Footer|footnote|cnn_strycaptiontxt|` +
		`cnn_html_slideshow|cnn_strylftcntnt|links|meta$|shoutbox|sponsor|tags|` +
		`socialnetworking|socialNetworking|cnnStryHghLght|cnn_stryspcvbx|^inset$|pagetools|` +
		`post-attributes|welcome_form|contentTools2|the_answers|communitypromo|runaroundLeft|` +
		`subscribe|vcard|articleheadings|date|^print$|popup|author-dropdown|tools|socialtools|` +
		`byline|konafilter|KonaFilter|breadcrumbs|^fn$|wp-caption-text|legende|ajoutVideo|` +
		`timestamp|js_replies`)

	// Additional div patterns matched against id or class, case sensitive
	RegexpDivCaption  = regexp.MustCompile(`^caption$`)
	RegexpDivGoogle   = regexp.MustCompile(` google `)
	RegexpDivMore     = regexp.MustCompile(`^[^entry-]more.*$`)
	RegexpDivFacebook = regexp.MustCompile(`[^-]facebook`)
	RegexpDivFBCast   = regexp.MustCompile(`facebook-broadcasting`)
	RegexpDivTwitter  = regexp.MustCompile(`[^-]twitter`)

	// A single newline between two other characters
	RegexpErrantLineBreak = regexp.MustCompile(`([^\n])\n([^\n])`)
)

// divPatterns are applied in order after the denylist pass
var divPatterns = []*regexp.Regexp{
	RegexpDivCaption,
	RegexpDivGoogle,
	RegexpDivMore,
	RegexpDivFacebook,
	RegexpDivFBCast,
	RegexpDivTwitter,
}

// Regular expressions used by the formatter
var (
	// Sentence end glued to an uppercase run, e.g. "end.NEXT"
	RegexpGluedSentence = regexp.MustCompile(`(\w+\.)([A-Z]+)`)

	// Splits serialized text into fragments
	RegexpLineSplit = regexp.MustCompile(`\r?\n`)

	// A fragment must contain a letter or a number
	RegexpHasContent = regexp.MustCompile(`[\p{N}\p{L}]`)

	// Collapses newline runs in the final text
	RegexpNewlines = regexp.MustCompile(`\n+`)
)
