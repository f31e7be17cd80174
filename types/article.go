// Package types provides the core data structures for the Gravity library.
package types

import (
	"encoding/json"
	"time"
)

// Link is an anchor found inside the extracted article body.
// Text holds the inner HTML of the anchor.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Video is an embedded media element found inside the article body.
type Video struct {
	Src    string `json:"src"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Article represents the extracted body and metadata of a page.
// When HasBody is false no article root was found and Text, Links and
// Videos are empty; this is not an error.
type Article struct {
	Title       string          `json:"title"`
	SoftTitle   string          `json:"soft_title"`
	Description string          `json:"description"`
	Keywords    string          `json:"keywords"`
	Authors     []string        `json:"authors"`
	Date        string          `json:"date"`
	Lang        string          `json:"lang"`
	Locale      string          `json:"locale"`
	Type        string          `json:"type"`
	Image       string          `json:"image"`
	Publisher   string          `json:"publisher"`
	SiteName    string          `json:"site_name"`
	Copyright   string          `json:"copyright"`
	Tags        []string        `json:"tags"`
	Canonical   string          `json:"canonical_link"`
	Favicon     string          `json:"favicon"`
	Origin      string          `json:"origin"`
	JSONLD      json.RawMessage `json:"jsonld,omitempty"`
	Text        string          `json:"text"`
	Links       []Link          `json:"links"`
	Videos      []Video         `json:"videos"`
	HasBody     bool            `json:"has_body"`
}

// StopwordLoader supplies the stopword list for a language code.
type StopwordLoader interface {
	Load(lang string) ([]string, error)
}

// ExtractionOptions configures a single extraction.
// An empty Language means detect it from the document, falling back to English.
type ExtractionOptions struct {
	Language      string        // ISO 639-1 code for stopword statistics
	URL           string        // Page address, used to resolve origin, canonical link and favicon
	MaxBufferSize int           // Maximum markup size in bytes
	Timeout       time.Duration // Timeout for the extraction
	SkipMetadata  bool          // Skip title, author, date and other metadata
}

// DefaultOptions returns the default extraction options.
// English statistics, a 1MB buffer and a 30 second timeout.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		Language:      "en",
		MaxBufferSize: 1024 * 1024, // 1MB
		Timeout:       time.Second * 30,
	}
}
