package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// Title delimiters, tried in order; the first one present wins
var (
	TitleDelimiters     = []string{"|", " - ", "»", ":"}
	SoftTitleDelimiters = []string{"|", " - ", "»"}
)

// Title returns the page title hard-truncated on site-name delimiters
func Title(doc *goquery.Document) string {
	title := cleanTitle(rawTitle(doc), TitleDelimiters)
	return simplifiers.ReplaceCharacters(title, false, true)
}

// SoftTitle is Title without truncation on colons
func SoftTitle(doc *goquery.Document) string {
	return cleanTitle(rawTitle(doc), SoftTitleDelimiters)
}

// rawTitle returns the first non-blank title candidate
func rawTitle(doc *goquery.Document) string {
	candidates := []string{
		doc.Find(`meta[property="og:title"]`).First().AttrOr("content", ""),
		firstText(doc, `h1[class*="title"]`),
		firstText(doc, "title"),
		firstText(doc, "h1"),
		firstText(doc, "h2"),
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func cleanTitle(title string, delimiters []string) string {
	for _, d := range delimiters {
		if strings.Contains(title, d) {
			title = simplifiers.BiggestChunk(title, d)
			break
		}
	}
	return simplifiers.CleanText(title)
}
