// Package simplifiers holds the plain-text clean-up helpers shared by the
// formatter and the metadata extractors.
package simplifiers

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mrjoshuak/gravity/internal/dom"
)

var (
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	lineBreakRegex      = regexp.MustCompile(`[\r\n\t]`)
	doubleSpaceRegex    = regexp.MustCompile(`\s\s+`)
	inlineCommentRegex  = regexp.MustCompile(`<!--.+?-->`)
	nullRegex           = regexp.MustCompile(`^null$`)
	replacementCharRune = "�"
)

// htmlEntities is the small set of entities decoded by ReplaceCharacters.
// Order matters: &amp; is decoded first.
var htmlEntities = []struct{ entity, value string }{
	{"&amp;", "&"},
	{"&apos;", "'"},
	{"&cent;", "¢"},
	{"&copy;", "©"},
	{"&euro;", "€"},
	{"&gt;", ">"},
	{"&lt;", "<"},
	{"&nbsp;", " "},
	{"&pound;", "£"},
	{"&quot;", "\""},
	{"&reg;", "®"},
	{"&yen;", "¥"},
}

var escapeChars = strings.NewReplacer("\n", " ", "\r", " ")

// NormalizeUnicode normalizes text to NFC form
func NormalizeUnicode(text string) string {
	return norm.NFC.String(text)
}

// NormalizeWhitespace replaces runs of whitespace with a single space and trims
func NormalizeWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// ReplaceCharacters decodes a fixed set of HTML entities when html is set and
// replaces raw CR and LF with spaces when chars is set.
func ReplaceCharacters(text string, html, chars bool) string {
	if html {
		for _, e := range htmlEntities {
			text = strings.ReplaceAll(text, e.entity, e.value)
		}
	}
	if chars {
		text = escapeChars.Replace(text)
	}
	return text
}

// CleanText flattens line breaks and tabs, collapses whitespace runs, drops
// inline comments and replacement characters, and trims.
func CleanText(text string) string {
	if text == "" {
		return text
	}
	text = lineBreakRegex.ReplaceAllString(text, " ")
	text = doubleSpaceRegex.ReplaceAllString(text, " ")
	text = inlineCommentRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, replacementCharRune, "")
	return strings.TrimSpace(text)
}

// CleanNull treats the literal string "null" as empty.
func CleanNull(text string) string {
	return nullRegex.ReplaceAllString(text, "")
}

// BiggestChunk splits text on sep and returns the longest piece in UTF-16
// units, the first one on ties.
func BiggestChunk(text, sep string) string {
	pieces := strings.Split(text, sep)
	best, longest := 0, dom.JSLength(pieces[0])
	for i, piece := range pieces {
		if dom.JSLength(piece) > longest {
			best, longest = i, dom.JSLength(piece)
		}
	}
	return pieces[best]
}
