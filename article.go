package gravity

import (
	"github.com/mrjoshuak/gravity/internal/readability"
	"github.com/mrjoshuak/gravity/internal/stopwords"
	"github.com/mrjoshuak/gravity/types"
)

// Article represents the extracted body and metadata of a page.
type Article = types.Article

// Link is an anchor found inside the article body.
type Link = types.Link

// Video is an embedded media element found inside the article body.
type Video = types.Video

// ExtractionOptions configures a single extraction.
type ExtractionOptions = types.ExtractionOptions

// StopwordLoader supplies the stopword list for a language code.
// Return an error wrapping ErrStopwordsNotFound for unknown codes so the
// English fallback applies.
type StopwordLoader = types.StopwordLoader

// DefaultOptions returns the default extraction options.
// English statistics, a 1MB buffer limit and a 30 second timeout.
func DefaultOptions() ExtractionOptions {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information for the Gravity library.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information for the Gravity library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}

// Version is the current version of the Gravity library.
var Version = types.Version

// Name is the name of the Gravity library.
var Name = types.Name

// Errors returned by extraction. Use errors.Is to match them.
var (
	ErrDocumentTooLarge = readability.ErrDocumentLarge
	ErrTimeout          = readability.ErrTimeout
	ErrNoDocument       = readability.ErrNoDocument

	ErrStopwordsNotFound = stopwords.ErrNotFound
)

// IsTimeoutError reports whether err came from an extraction timeout.
func IsTimeoutError(err error) bool {
	return readability.IsTimeoutError(err)
}

// IsValidationError reports whether err came from rejected input.
func IsValidationError(err error) bool {
	return readability.IsValidationError(err)
}
