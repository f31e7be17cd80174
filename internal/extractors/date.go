package extractors

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// SelectorDate lists the elements that may carry a publication date
const SelectorDate = "meta[property='article:published_time'], " +
	"meta[itemprop*='datePublished'], meta[name='dcterms.modified'], " +
	"meta[name='dcterms.date'], " +
	"meta[name='DC.date.issued'], meta[name='dc.date.issued'], " +
	"meta[name='dc.date.modified'], meta[name='dc.date.created'], " +
	"meta[name='DC.date'], meta[name='DC.Date'], meta[name='dc.date'], meta[name='date'], " +
	"time[itemprop*='pubDate'], time[itemprop*='pubdate'], " +
	"span[itemprop*='datePublished'], span[property*='datePublished'], " +
	"p[itemprop*='datePublished'], p[property*='datePublished'], " +
	"div[itemprop*='datePublished'], div[property*='datePublished'], " +
	"li[itemprop*='datePublished'], li[property*='datePublished'], " +
	"time, span[class*='date'], p[class*='date'], div[class*='date']"

// dateLayouts are the formats a date candidate is accepted in
var dateLayouts = []string{
	time.RFC3339,                 // "2006-01-02T15:04:05Z07:00"
	"2006-01-02T15:04:05",        // "2014-10-24T17:32:46"
	"2006-01-02T15:04:05.999Z",   // "2014-10-24T17:32:46.000Z"
	"2006-01-02T15:04:05.999999", // "2014-10-24T17:32:46.493"
	"2006-01-02T15:04:05-0700",   // Without colon in timezone
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102T150405Z",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
	"01/02/2006",
}

// ParseDate parses s in any of the accepted layouts. The zero time is
// returned when none matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second)
		}
	}
	return time.Time{}
}

// Date returns the publication date as written in the document. The first
// candidate element is read from its content, datetime or text, in that
// order; when that is not a parseable date the JSON-LD datePublished is used.
func Date(doc *goquery.Document) string {
	first := doc.Find(SelectorDate).First()

	var date string
	if content := strings.TrimSpace(simplifiers.CleanNull(first.AttrOr("content", ""))); content != "" {
		date = content
	} else if datetime := strings.TrimSpace(simplifiers.CleanNull(first.AttrOr("datetime", ""))); datetime != "" {
		date = datetime
	} else {
		date = simplifiers.CleanText(first.Text())
	}

	if !ParseDate(date).IsZero() {
		return date
	}

	var ld struct {
		DatePublished string `json:"datePublished"`
	}
	if raw := JSONLD(doc); raw != nil && json.Unmarshal(raw, &ld) == nil {
		return strings.TrimSpace(ld.DatePublished)
	}
	return ""
}

// JSONLD returns the first linked-data block when it is a single object
func JSONLD(doc *goquery.Document) json.RawMessage {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return nil
	}

	raw := strings.TrimSpace(script.Text())
	if !strings.HasPrefix(raw, "{") || !json.Valid([]byte(raw)) {
		return nil
	}
	return json.RawMessage(raw)
}
