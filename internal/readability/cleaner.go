package readability

import (
	"regexp"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
)

// Clean strips boilerplate from the document and normalizes bare text
// containers into paragraphs. The passes run in a fixed order.
func (r *Readability) Clean() {
	r.removeBodyClasses()
	r.cleanArticleTags()
	r.cleanEmTags()
	r.cleanCodeBlocks()
	r.removeDropCaps()
	r.removeScriptsStyles()
	r.cleanBadTags()
	for _, re := range divPatterns {
		r.removeNodesRegex(re)
	}
	r.cleanParaSpans()
	r.cleanUnderlines()
	r.cleanErrantLineBreaks()
	r.divToPara("div")
	r.divToPara("span")
}

func (r *Readability) removeBodyClasses() {
	for _, n := range r.doc.Find("body").Nodes {
		if dom.HasAttr(n, "class") {
			dom.SetAttr(n, "class", "")
		}
	}
}

func (r *Readability) cleanArticleTags() {
	for _, n := range r.doc.Find("article").Nodes {
		dom.RemoveAttr(n, "id")
		dom.RemoveAttr(n, "name")
		dom.RemoveAttr(n, "class")
	}
}

// cleanEmTags unwraps emphasis that does not wrap an image
func (r *Readability) cleanEmTags() {
	for _, n := range r.doc.Find("em").Nodes {
		if len(dom.FindTags(n, "img")) == 0 {
			dom.Unwrap(n)
		}
	}
}

// cleanCodeBlocks flattens code to its text. Nested matches are already gone
// once their ancestor has been replaced.
func (r *Readability) cleanCodeBlocks() {
	for _, n := range r.doc.Find(SelectorCodeBlocks).Nodes {
		if dom.IsAttached(n) {
			dom.ReplaceWithText(n)
		}
	}
}

func (r *Readability) removeDropCaps() {
	for _, n := range r.doc.Find(SelectorDropCaps).Nodes {
		dom.Unwrap(n)
	}
}

func (r *Readability) removeScriptsStyles() {
	r.doc.Find("script, style").Remove()

	comments, err := htmlquery.QueryAll(r.root(), "//comment()")
	if err != nil {
		r.log.Debug().Err(err).Msg("comment query failed")
		return
	}
	for _, c := range comments {
		dom.Remove(c)
	}
}

// cleanBadTags removes every element whose id, class or name matches the
// boilerplate denylist. Only the first present attribute is consulted.
func (r *Readability) cleanBadTags() {
	var bad []*html.Node
	for _, n := range r.doc.Find("*").Nodes {
		if matchesAttr(n, RegexpBadNodes, "id", "class", "name") {
			bad = append(bad, n)
		}
	}
	for _, n := range bad {
		dom.Remove(n)
	}

	if len(bad) > 0 {
		r.log.Debug().Int("removed", len(bad)).Msg("removed boilerplate nodes")
	}
}

// removeNodesRegex removes the divs whose id or class matches re
func (r *Readability) removeNodesRegex(re *regexp.Regexp) {
	var matched []*html.Node
	for _, n := range r.doc.Find("div").Nodes {
		if matchesAttr(n, re, "id", "class") {
			matched = append(matched, n)
		}
	}
	for _, n := range matched {
		dom.Remove(n)
	}
}

// matchesAttr tests re against the first non-empty attribute among keys
func matchesAttr(n *html.Node, re *regexp.Regexp, keys ...string) bool {
	for _, key := range keys {
		if v := dom.Attr(n, key); v != "" {
			return re.MatchString(v)
		}
	}
	return false
}

func (r *Readability) cleanParaSpans() {
	for _, n := range r.doc.Find(SelectorParaSpans).Nodes {
		dom.Unwrap(n)
	}
}

func (r *Readability) cleanUnderlines() {
	for _, n := range r.doc.Find("u").Nodes {
		dom.Unwrap(n)
	}
}

// cleanErrantLineBreaks joins single line breaks inside paragraph text
func (r *Readability) cleanErrantLineBreaks() {
	for _, p := range r.doc.Find("p").Nodes {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				c.Data = RegexpErrantLineBreak.ReplaceAllString(c.Data, "$1 $2")
			}
		}
	}
}

// divToPara rewrites every element with the given tag into paragraphs. An
// element without block descendants becomes a single paragraph; otherwise
// its inline runs and nested paragraphs are regrouped into new ones.
func (r *Readability) divToPara(tag string) {
	converted := 0
	for _, n := range r.doc.Find(tag).Nodes {
		if !dom.IsAttached(n) {
			continue
		}

		if len(dom.FindTags(n, BlockTags...)) == 0 {
			p := dom.NewElement("p")
			dom.AppendChildren(p, dom.DetachChildren(n)...)
			dom.ReplaceWith(n, p)
			converted++
			continue
		}

		var paras []*html.Node
		for _, group := range replacementGroups(n) {
			if len(group) == 0 {
				continue
			}
			p := dom.NewElement("p")
			dom.AppendChildren(p, group...)
			paras = append(paras, p)
		}
		dom.ReplaceWith(n, paras...)
		converted++
	}

	if converted > 0 {
		r.log.Debug().Str("tag", tag).Int("converted", converted).Msg("converted to paragraphs")
	}
}

// textRun is a text child of a container together with the anchors it
// pulls into its paragraph.
type textRun struct {
	before []*html.Node // preceding anchors, nearest first
	text   string
	after  *html.Node // the anchor directly following, if any
}

// replacementGroups splits the children of n into the node groups that each
// become one paragraph.
func replacementGroups(n *html.Node) [][]*html.Node {
	children := dom.Contents(n)

	// Anchors adjacent to a text run are moved with it and skipped later.
	runs := make(map[*html.Node]*textRun)
	consumed := make(map[*html.Node]bool)
	for _, c := range children {
		if c.Type != html.TextNode {
			continue
		}
		text := runText(c.Data)
		if dom.JSLength(text) <= 1 {
			continue
		}

		run := &textRun{text: text}
		for prev := dom.PrevElement(c); dom.IsTag(prev, "a") && !consumed[prev]; prev = dom.PrevElement(prev) {
			run.before = append(run.before, prev)
			consumed[prev] = true
		}
		if next := dom.NextElement(c); dom.IsTag(next, "a") && !consumed[next] {
			run.after = next
			consumed[next] = true
		}
		runs[c] = run
	}

	var groups [][]*html.Node
	var buffer []*html.Node
	flush := func() {
		if len(buffer) > 0 {
			groups = append(groups, buffer)
			buffer = nil
		}
	}

	for _, c := range children {
		switch {
		case dom.IsTag(c, "p"):
			flush()
			groups = append(groups, dom.DetachChildren(c))
		case c.Type == html.TextNode:
			run, ok := runs[c]
			if !ok {
				continue
			}
			for _, a := range run.before {
				buffer = append(buffer, dom.NewText(" "), a, dom.NewText(" "))
			}
			buffer = append(buffer, dom.NewText(run.text))
			if run.after != nil {
				buffer = append(buffer, dom.NewText(" "), run.after, dom.NewText(" "))
			}
		case consumed[c]:
		default:
			groups = append(groups, dom.DetachChildren(c))
		}
	}
	flush()

	return groups
}

// runText doubles newlines, drops tabs and blanks whitespace-only text
func runText(s string) string {
	s = strings.ReplaceAll(s, "\n", "\n\n")
	s = strings.ReplaceAll(s, "\t", "")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
