package extractors

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// Selectors for the metadata fields, each a document-ordered group
const (
	SelectorAuthors = "meta[property='article:author'], meta[property='og:article:author'], " +
		"meta[name='author'], meta[name='dcterms.creator'], meta[name='DC.creator'], " +
		"meta[name='DC.Creator'], meta[name='dc.creator'], meta[name='creator']"
	SelectorDescription = "meta[name=description], meta[property='og:description']"
	SelectorImage       = "meta[property='og:image'], meta[property='og:image:url'], meta[itemprop=image], " +
		"meta[name='twitter:image:src'], meta[name='twitter:image'], meta[name='twitter:image0']"
	SelectorPublisher = "meta[property='og:site_name'], meta[itemprop=name], meta[name='dc.publisher'], " +
		"meta[name='DC.publisher'], meta[name='DC.Publisher']"
	SelectorSiteName  = "meta[property='og:site_name'], meta[itemprop=name]"
	SelectorCopyright = "p[class*='copyright'], div[class*='copyright'], span[class*='copyright'], " +
		"li[class*='copyright'], p[id*='copyright'], div[id*='copyright'], span[id*='copyright'], " +
		"li[id*='copyright']"
	SelectorCanonical = "link[rel='canonical'], meta[property='og:url']"
	SelectorTagsRel   = "a[rel='tag']"
	SelectorTagsHref  = "a[href*='/tag/'], a[href*='/tags/'], a[href*='/topic/'], a[href*='?keyword=']"
)

// authorFallbacks are tried in order when no author meta is present
var authorFallbacks = []string{
	"span[class*='author']",
	"p[class*='author']",
	"div[class*='author']",
	"span[class*='byline']",
	"p[class*='byline']",
	"div[class*='byline']",
}

// langCandidates locate a declared document language
var langCandidates = []Candidate{
	{XPath: "//html", Attr: "lang"},
	{XPath: "//meta[@name='lang']", Attr: "content"},
	{XPath: "//meta[@http-equiv='content-language']", Attr: "content"},
}

var (
	regexpLangCode  = regexp.MustCompile(`^[A-Za-z]{2}$`)
	regexpCopyright = regexp.MustCompile(`(?i)©(\s*copyright)?([^,;:.|\r\n]+)`)
)

// Authors returns every author declared in meta tags, or the text of the
// first author or byline element.
func Authors(doc *goquery.Document) []string {
	var authors []string
	doc.Find(SelectorAuthors).Each(func(_ int, s *goquery.Selection) {
		if author := strings.TrimSpace(simplifiers.CleanNull(s.AttrOr("content", ""))); author != "" {
			authors = append(authors, author)
		}
	})
	if len(authors) > 0 {
		return authors
	}

	for _, selector := range authorFallbacks {
		if text := simplifiers.CleanText(firstText(doc, selector)); text != "" {
			return []string{cleanByline(text)}
		}
	}
	return nil
}

// cleanByline strips the usual "By" prefixes from a visible byline
func cleanByline(byline string) string {
	for _, prefix := range []string{"By ", "by ", "Author: ", "Written by ", "Posted by "} {
		if strings.HasPrefix(byline, prefix) {
			return strings.TrimSpace(byline[len(prefix):])
		}
	}
	return byline
}

// Description returns the meta description
func Description(doc *goquery.Document) string {
	return simplifiers.ReplaceCharacters(metaContent(doc, SelectorDescription), false, true)
}

// Keywords returns the raw keywords meta content
func Keywords(doc *goquery.Document) string {
	return FirstValue(doc.Get(0), Candidate{XPath: "//meta[@name='keywords']", Attr: "content"})
}

// Lang returns the two-letter language declared by the document, or ""
func Lang(doc *goquery.Document) string {
	lang := FirstValue(doc.Get(0), langCandidates...)
	if len(lang) < 2 {
		return ""
	}
	if code := lang[:2]; regexpLangCode.MatchString(code) {
		return strings.ToLower(code)
	}
	return ""
}

// Locale returns the Open Graph locale
func Locale(doc *goquery.Document) string {
	return FirstValue(doc.Get(0), Candidate{XPath: "//meta[@property='og:locale']", Attr: "content"})
}

// Type returns the Open Graph type
func Type(doc *goquery.Document) string {
	return FirstValue(doc.Get(0), Candidate{XPath: "//meta[@property='og:type']", Attr: "content"})
}

// Image returns the lead image declared in meta tags
func Image(doc *goquery.Document) string {
	return metaContent(doc, SelectorImage)
}

// Publisher returns the publishing organization
func Publisher(doc *goquery.Document) string {
	return metaContent(doc, SelectorPublisher)
}

// SiteName returns the site name
func SiteName(doc *goquery.Document) string {
	return metaContent(doc, SelectorSiteName)
}

// Copyright returns the holder named after a copyright sign
func Copyright(doc *goquery.Document) string {
	text := firstText(doc, SelectorCopyright)
	if text == "" {
		text = doc.Find("body").Text()
	}
	m := regexpCopyright.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return simplifiers.CleanText(m[2])
}

// Tags returns the unique texts of tag links
func Tags(doc *goquery.Document) []string {
	elements := doc.Find(SelectorTagsRel)
	if elements.Length() == 0 {
		elements = doc.Find(SelectorTagsHref)
	}

	seen := make(map[string]bool)
	var tags []string
	elements.Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimSpace(s.Text())
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	})
	return tags
}

// Canonical returns the canonical link resolved against base. Without a
// declared link the base itself is returned.
func Canonical(doc *goquery.Document, base *url.URL) string {
	s := doc.Find(SelectorCanonical).First()

	var link string
	switch goquery.NodeName(s) {
	case "link":
		link = strings.TrimSpace(simplifiers.CleanNull(s.AttrOr("href", "")))
	case "meta":
		link = strings.TrimSpace(simplifiers.CleanNull(s.AttrOr("content", "")))
	}

	if base == nil {
		return link
	}
	if link == "" {
		return base.String()
	}
	return resolve(base, link)
}

// Favicon returns the icon link resolved against base
func Favicon(doc *goquery.Document, base *url.URL) string {
	var href string
	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		if rel == "shortcut icon" || rel == "icon" {
			href = s.AttrOr("href", "")
			return false
		}
		return true
	})

	if href == "" || base == nil {
		return href
	}
	return resolve(base, href)
}

// Origin returns scheme and host of u
func Origin(u *url.URL) string {
	if u == nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
