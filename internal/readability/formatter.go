package readability

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// Format reduces the cleaned root to plain text
func (r *Readability) Format(root *html.Node) string {
	r.removeNegativeScoreNodes(root)
	linksToText(root)
	addNewlineToBr(root)
	replaceWithText(root)
	r.removeFewWordsParagraphs(root)

	text := convertToText(root)
	text = RegexpNewlines.ReplaceAllString(text, " ")
	return simplifiers.ReplaceCharacters(text, false, true)
}

// removeNegativeScoreNodes drops scored descendants whose score fell below one
func (r *Readability) removeNegativeScoreNodes(root *html.Node) {
	var negative []*html.Node
	dom.Walk(root, func(n *html.Node) {
		if r.scores.has(n) && r.scores.score(n) < 1 {
			negative = append(negative, n)
		}
	})
	for _, n := range negative {
		dom.Remove(n)
	}
}

func linksToText(root *html.Node) {
	for _, a := range dom.FindTags(root, "a") {
		dom.Unwrap(a)
	}
}

func addNewlineToBr(root *html.Node) {
	for _, br := range dom.FindTags(root, "br") {
		dom.ReplaceWith(br, dom.NewText("\n\n"))
	}
}

// replaceWithText flattens inline formatting to its text
func replaceWithText(root *html.Node) {
	for _, n := range dom.FindTags(root, "b", "strong", "i", "br", "sup") {
		dom.ReplaceWithText(n)
	}
}

// removeFewWordsParagraphs removes elements with too few stopwords unless
// they carry embedded media, and parenthesized asides.
func (r *Readability) removeFewWordsParagraphs(root *html.Node) {
	var elements []*html.Node
	dom.Walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode {
			elements = append(elements, n)
		}
	})

	for _, n := range elements {
		text := dom.Text(n)
		stats := r.options.Stopwords.Stats(text, r.lang)
		if stats.StopWordCount < MinFormattedStopWords && len(dom.FindTags(n, "object", "embed")) == 0 {
			dom.Remove(n)
			continue
		}

		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") && len(trimmed) > 1 {
			dom.Remove(n)
		}
	}
}

// convertToText serializes the children of root into blank-line separated
// fragments. Loose text and lists accumulate until the next element.
func convertToText(root *html.Node) string {
	var (
		fragments []string
		hanging   strings.Builder
	)

	flush := func() {
		if hanging.Len() == 0 {
			return
		}
		fragments = append(fragments, RegexpLineSplit.Split(strings.TrimSpace(hanging.String()), -1)...)
		hanging.Reset()
	}

	for _, n := range dom.Contents(root) {
		switch {
		case n.Type == html.TextNode:
			hanging.WriteString(n.Data)
			continue
		case dom.IsTag(n, "ul"):
			hanging.WriteString(listToText(n))
			continue
		}

		flush()
		text := fixGluedSentence(strings.TrimSpace(dom.Text(n)))
		fragments = append(fragments, RegexpLineSplit.Split(text, -1)...)
	}
	flush()

	kept := fragments[:0]
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if RegexpHasContent.MatchString(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "\n\n")
}

// listToText renders list items as bullet lines
func listToText(ul *html.Node) string {
	var b strings.Builder
	for _, li := range dom.FindTags(ul, "li") {
		b.WriteString("\n * ")
		b.WriteString(dom.Text(li))
	}
	b.WriteString("\n")
	return b.String()
}

// fixGluedSentence separates the first sentence end that runs into an
// uppercase word.
func fixGluedSentence(text string) string {
	loc := RegexpGluedSentence.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[3]] + " " + text[loc[3]:]
}
