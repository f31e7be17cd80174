package readability

import (
	"golang.org/x/net/html"

	"github.com/mrjoshuak/gravity/internal/dom"
)

// PostCleanup recovers sibling content into root, then removes the direct
// children that look like navigation, empty containers or low-scoring noise.
func (r *Readability) PostCleanup(root *html.Node) *html.Node {
	r.AddSiblings(root)

	removed := 0
	for _, child := range dom.Children(root) {
		if dom.IsTag(child, "p", "a") {
			continue
		}
		if r.isHighLinkDensity(child) || r.isTableAndNoParaExist(child) || !r.isNodeScoreThresholdMet(root, child) {
			dom.Remove(child)
			removed++
		}
	}

	r.log.Debug().Int("removed", removed).Msg("post-cleanup done")
	return root
}
