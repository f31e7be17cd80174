// Package stopwords counts common low-information words in a span of text.
// The count is used by the extraction pipeline as a stand-in for "is this
// substantive prose" and is never used to filter output.
package stopwords

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrjoshuak/gravity/internal/simplifiers"
)

// DefaultLanguage is used whenever no list exists for the requested code.
const DefaultLanguage = "en"

//go:embed data/stopwords-*.txt
var embedded embed.FS

// ErrNotFound is returned by a Loader when no list exists for a language.
var ErrNotFound = errors.New("stopwords list not found")

// RegexpPunctuation matches the characters stripped before tokenizing.
var RegexpPunctuation = regexp.MustCompile("[|@<>\\[\\]\"'.,\\-/#?!$%\\^&*+;:{}=_`~()]")

// WordStats holds the result of counting stopwords in one text span.
type WordStats struct {
	WordCount     int
	StopWordCount int
	StopWords     []string
}

// Loader returns the lowercase stopwords for a language code.
// Implementations return an error wrapping ErrNotFound for unknown codes.
type Loader interface {
	Load(lang string) ([]string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(lang string) ([]string, error)

// Load calls f(lang).
func (f LoaderFunc) Load(lang string) ([]string, error) {
	return f(lang)
}

// FileName returns the conventional file name of a language list.
func FileName(lang string) string {
	return "stopwords-" + lang + ".txt"
}

// FSLoader reads newline-delimited lists named stopwords-<lang>.txt from a file system.
type FSLoader struct {
	FS  fs.FS
	Dir string
}

// Load implements Loader.
func (l FSLoader) Load(lang string) ([]string, error) {
	if lang == "" || strings.ContainsAny(lang, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, lang)
	}
	data, err := fs.ReadFile(l.FS, filepath.ToSlash(filepath.Join(l.Dir, FileName(lang))))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, lang)
		}
		return nil, err
	}
	return parseList(data), nil
}

// EmbeddedLoader returns a Loader backed by the lists compiled into the binary.
func EmbeddedLoader() Loader {
	return FSLoader{FS: embedded, Dir: "data"}
}

// DirLoader returns a Loader reading lists from a directory on disk.
func DirLoader(dir string) Loader {
	return FSLoader{FS: os.DirFS(dir)}
}

// Chain returns a Loader trying each loader in turn. Only a not-found
// error moves on to the next loader.
func Chain(loaders ...Loader) Loader {
	return LoaderFunc(func(lang string) ([]string, error) {
		err := fmt.Errorf("%w: %q", ErrNotFound, lang)
		for _, l := range loaders {
			var words []string
			words, err = l.Load(lang)
			if err == nil {
				return words, nil
			}
			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
		return nil, err
	})
}

func parseList(data []byte) []string {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if len(word) > 0 {
			words = append(words, word)
		}
	}
	return words
}

// Cache memoizes stopword sets per language code. It is safe for concurrent
// use; sets are immutable once stored.
type Cache struct {
	loader Loader
	logger zerolog.Logger

	mu        sync.RWMutex
	sets      map[string]map[string]struct{}
	fallbacks map[string]struct{}
}

// NewCache returns a cache that loads lists through loader.
// A nil loader uses the embedded lists.
func NewCache(loader Loader, logger zerolog.Logger) *Cache {
	if loader == nil {
		loader = EmbeddedLoader()
	}
	return &Cache{
		loader:    loader,
		logger:    logger,
		sets:      make(map[string]map[string]struct{}),
		fallbacks: make(map[string]struct{}),
	}
}

var (
	sharedOnce sync.Once
	shared     *Cache
)

// Shared returns the process-wide cache over the embedded lists.
func Shared() *Cache {
	sharedOnce.Do(func() {
		shared = NewCache(nil, zerolog.Nop())
	})
	return shared
}

// Set returns the stopword set for lang, loading and memoizing it on first use.
// Unknown languages fall back to English with a logged warning.
func (c *Cache) Set(lang string) map[string]struct{} {
	if lang == "" {
		lang = DefaultLanguage
	}

	c.mu.RLock()
	set, ok := c.sets[lang]
	c.mu.RUnlock()
	if ok {
		return set
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.sets[lang]; ok {
		return set
	}

	words, err := c.loader.Load(lang)
	if err != nil {
		c.logger.Warn().Err(err).Str("lang", lang).Str("fallback", DefaultLanguage).
			Msg("no stopwords list for language, defaulting to English")
		c.fallbacks[lang] = struct{}{}
		if lang != DefaultLanguage {
			words, err = c.loader.Load(DefaultLanguage)
		}
		if err != nil && lang != DefaultLanguage {
			c.logger.Error().Err(err).Msg("English stopwords list unavailable")
		}
	}

	set = make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	c.sets[lang] = set
	return set
}

// FellBack reports whether lang was served by the English fallback.
func (c *Cache) FellBack(lang string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.fallbacks[lang]
	return ok
}

// Stats strips punctuation from NFC-normalized text, splits it on single
// spaces and counts the tokens found in the stopword list for lang. Empty
// tokens are counted as words; matched tokens are returned lowercased in
// input order.
func (c *Cache) Stats(text, lang string) WordStats {
	set := c.Set(lang)
	lower := cases.Lower(language.Und)

	stripped := RegexpPunctuation.ReplaceAllString(simplifiers.NormalizeUnicode(text), "")
	words := strings.Split(stripped, " ")

	stats := WordStats{WordCount: len(words)}
	for _, word := range words {
		w := lower.String(word)
		if _, ok := set[w]; ok {
			stats.StopWords = append(stats.StopWords, w)
		}
	}
	stats.StopWordCount = len(stats.StopWords)
	return stats
}
