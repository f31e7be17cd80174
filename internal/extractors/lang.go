package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abadojack/whatlanggo"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// maxDetectBytes bounds the text sample given to the language detector
const maxDetectBytes = 4096

// DetectLang guesses the two-letter language of the page's paragraph text.
// It returns "" when the detector is not confident.
func DetectLang(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		b.WriteString(s.Text())
		b.WriteByte(' ')
		return b.Len() < maxDetectBytes
	})

	sample := simplifiers.NormalizeWhitespace(b.String())
	if sample == "" {
		return ""
	}

	info := whatlanggo.Detect(sample)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
