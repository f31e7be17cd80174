package readability

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
)

// gravity is the score annotation carried by a candidate node
type gravity struct {
	score float64
	nodes int
}

// scoreTable keeps scores outside the tree so they never leak into the
// serialized document. A present entry means the node has been scored.
type scoreTable map[*html.Node]*gravity

func (t scoreTable) entry(n *html.Node) *gravity {
	g, ok := t[n]
	if !ok {
		g = &gravity{}
		t[n] = g
	}
	return g
}

// add accumulates v onto the integer part of the current score
func (t scoreTable) add(n *html.Node, v float64) {
	g := t.entry(n)
	g.score = math.Trunc(g.score) + v
}

// addNode increments the number of scored descendants of n
func (t scoreTable) addNode(n *html.Node) {
	t.entry(n).nodes++
}

func (t scoreTable) score(n *html.Node) int {
	g, ok := t[n]
	if !ok {
		return 0
	}
	return int(math.Trunc(g.score))
}

func (t scoreTable) has(n *html.Node) bool {
	_, ok := t[n]
	return ok
}

// CalculateBestNode scores every paragraph-like node and returns the parent
// or grandparent with the highest accumulated score, or nil when nothing
// qualifies.
func (r *Readability) CalculateBestNode() *html.Node {
	type scored struct {
		node      *html.Node
		stopWords int
	}

	var nodesWithText []scored
	for _, n := range dom.FindTags(r.root(), ScoreTags...) {
		stats := r.wordStats(n)
		if stats.StopWordCount > MinParagraphStopWords && !r.isHighLinkDensity(n) {
			nodesWithText = append(nodesWithText, scored{node: n, stopWords: stats.StopWordCount})
		}
	}

	nodesNumber := len(nodesWithText)
	bottomNegativeScoreNodes := float64(nodesNumber) * NegativeScoringFraction
	startingBoost := 1.0

	var candidates []*html.Node
	seen := make(map[*html.Node]bool)
	track := func(n *html.Node) {
		if !seen[n] {
			seen[n] = true
			candidates = append(candidates, n)
		}
	}

	for i, s := range nodesWithText {
		boost := 0.0
		if r.isBoostable(s.node) {
			boost = (1.0 / startingBoost) * BoostWeight
			startingBoost++
		}

		if nodesNumber > NegativeScoringMinNodes {
			remaining := float64(nodesNumber - i)
			if remaining <= bottomNegativeScoreNodes {
				booster := bottomNegativeScoreNodes - remaining
				boost = -math.Pow(booster, 2)
				if math.Abs(boost) > NegativeScoringCap {
					boost = NegativeScoringOverride
				}
			}
		}

		upScore := math.Floor(float64(s.stopWords) + boost)

		parent := dom.Parent(s.node)
		if parent == nil {
			continue
		}
		r.scores.add(parent, upScore)
		r.scores.addNode(parent)
		track(parent)

		if grand := dom.Parent(parent); grand != nil {
			r.scores.add(grand, upScore/2)
			r.scores.addNode(grand)
			track(grand)
		}
	}

	var top *html.Node
	topScore := 0
	for _, c := range candidates {
		score := r.scores.score(c)
		if score > topScore {
			top = c
			topScore = score
		}
		if top == nil {
			top = c
		}
	}

	if top != nil {
		r.log.Debug().
			Str("tag", dom.Tag(top)).
			Int("score", topScore).
			Int("candidates", len(candidates)).
			Msg("selected root")
	}
	return top
}

// isBoostable reports whether one of the nearest preceding paragraphs is
// wordy enough to lend n a boost.
func (r *Readability) isBoostable(n *html.Node) bool {
	steps := 0
	for _, sib := range dom.PrevElements(n) {
		if !dom.IsTag(sib, "p") {
			continue
		}
		if steps >= BoostMaxSteps {
			return false
		}
		if r.wordStats(sib).StopWordCount > BoostMinStopWords {
			return true
		}
		steps++
	}
	return false
}

// isHighLinkDensity reports whether the anchors under n dominate its text
func (r *Readability) isHighLinkDensity(n *html.Node) bool {
	links := dom.FindTags(n, "a")
	if len(links) == 0 {
		return false
	}

	words := len(strings.Split(dom.Text(n), " "))

	texts := make([]string, len(links))
	for i, a := range links {
		texts[i] = dom.Text(a)
	}
	linkWords := len(strings.Split(strings.Join(texts, " "), " "))

	density := float64(linkWords) / float64(words) * float64(len(links))
	return density >= HighLinkDensity
}

// isTableAndNoParaExist prunes short paragraphs under n, then reports whether
// n is left without paragraphs and is not a list or table cell.
func (r *Readability) isTableAndNoParaExist(n *html.Node) bool {
	for _, p := range dom.FindTags(n, "p") {
		if dom.JSLength(dom.Text(p)) < MinSubParagraphLength {
			dom.Remove(p)
		}
	}

	if len(dom.FindTags(n, "p")) > 0 {
		return false
	}
	return !dom.IsTag(n, "td", "ul", "ol")
}

// isNodeScoreThresholdMet reports whether n scores high enough relative to
// root to survive post-cleanup.
func (r *Readability) isNodeScoreThresholdMet(root, n *html.Node) bool {
	threshold := float64(r.scores.score(root)) * ChildScoreThreshold
	if float64(r.scores.score(n)) < threshold && !dom.IsTag(n, "td", "ul", "ol", "blockquote") {
		return false
	}
	return true
}
