package readability

import (
	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
)

// AddSiblings prepends to root the paragraph content of its preceding
// siblings that is comparable to the paragraphs already under root.
func (r *Readability) AddSiblings(root *html.Node) *html.Node {
	baseline := r.siblingsBaseline(root)

	added := 0
	for _, sib := range dom.PrevElements(root) {
		for _, p := range r.siblingContent(sib, baseline) {
			dom.Prepend(root, p)
			added++
		}
	}

	r.log.Debug().Int("paragraphs", added).Float64("baseline", baseline).Msg("added siblings")
	return root
}

// siblingsBaseline is the mean stopword count of the qualifying paragraphs
// under root.
func (r *Readability) siblingsBaseline(root *html.Node) float64 {
	count, total := 0, 0
	for _, p := range dom.FindTags(root, "p") {
		stats := r.wordStats(p)
		if stats.StopWordCount > MinParagraphStopWords && !r.isHighLinkDensity(p) {
			count++
			total += stats.StopWordCount
		}
	}

	if count == 0 {
		return DefaultSiblingBaseline
	}
	return float64(total) / float64(count)
}

// siblingContent builds the detached paragraphs recovered from sib
func (r *Readability) siblingContent(sib *html.Node, baseline float64) []*html.Node {
	if dom.IsTag(sib, "p") && dom.JSLength(dom.Text(sib)) > 0 {
		p := dom.NewElement("p")
		for c := sib.FirstChild; c != nil; c = c.NextSibling {
			p.AppendChild(dom.Clone(c))
		}
		return []*html.Node{p}
	}

	var out []*html.Node
	for _, para := range dom.FindTags(sib, "p") {
		text := dom.Text(para)
		if dom.JSLength(text) == 0 {
			continue
		}

		stats := r.wordStats(para)
		if baseline*SiblingBaselineRatio < float64(stats.StopWordCount) && !r.isHighLinkDensity(para) {
			p := dom.NewElement("p")
			p.AppendChild(dom.NewText(text))
			out = append(out, p)
		}
	}
	return out
}
