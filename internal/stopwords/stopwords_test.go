package stopwords

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		lang      string
		words     int
		stopWords []string
	}{
		{name: "counts stopwords", text: "this is silly", lang: "en", words: 3, stopWords: []string{"this", "is"}},
		{name: "strips punctuation", text: "this! is?? silly....", lang: "en", words: 3, stopWords: []string{"this", "is"}},
		{name: "defaults to english", text: "this is fun", lang: "", words: 3, stopWords: []string{"this", "is"}},
		{name: "handles spanish", text: "este es rico", lang: "es", words: 3, stopWords: []string{"este", "es"}},
		{name: "case folds tokens", text: "THIS Is silly", lang: "en", words: 3, stopWords: []string{"this", "is"}},
		{name: "keeps duplicates in order", text: "the cat and the hat", lang: "en", words: 5, stopWords: []string{"the", "and", "the"}},
		{name: "counts empty tokens", text: "is  it", lang: "en", words: 3, stopWords: []string{"is", "it"}},
	}

	cache := NewCache(nil, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := cache.Stats(tt.text, tt.lang)
			assert.Equal(t, tt.words, stats.WordCount)
			assert.Equal(t, len(tt.stopWords), stats.StopWordCount)
			assert.Equal(t, tt.stopWords, stats.StopWords)
		})
	}
}

func TestStatsNormalizesDecomposedText(t *testing.T) {
	cache := NewCache(nil, zerolog.Nop())

	stats := cache.Stats("yo tambie\u0301n", "es")
	assert.Equal(t, []string{"yo", "también"}, stats.StopWords)
}

func TestFallbackToEnglish(t *testing.T) {
	var buf bytes.Buffer
	cache := NewCache(nil, zerolog.New(&buf))

	got := cache.Stats("this is fun", "xx-unknown")
	want := cache.Stats("this is fun", "en")

	assert.Equal(t, want, got)
	assert.True(t, cache.FellBack("xx-unknown"))
	assert.False(t, cache.FellBack("en"))
	assert.Contains(t, buf.String(), `"lang":"xx-unknown"`)

	// the warning is emitted once per language
	buf.Reset()
	cache.Stats("this is fun", "xx-unknown")
	assert.Empty(t, buf.String())
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName("zz")), []byte("foo\n\nbar\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName("en")), []byte("this\nis\n"), 0o644))

	cache := NewCache(DirLoader(dir), zerolog.Nop())

	stats := cache.Stats("foo baz bar", "zz")
	assert.Equal(t, []string{"foo", "bar"}, stats.StopWords)
	assert.False(t, cache.FellBack("zz"))

	stats = cache.Stats("this is foo", "qq")
	assert.Equal(t, []string{"this", "is"}, stats.StopWords)
	assert.True(t, cache.FellBack("qq"))
}

func TestChain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName("zz")), []byte("foo\n"), 0o644))

	loader := Chain(DirLoader(dir), EmbeddedLoader())

	words, err := loader.Load("zz")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, words)

	words, err = loader.Load("es")
	require.NoError(t, err)
	assert.Contains(t, words, "este")

	_, err = loader.Load("qq")
	assert.ErrorIs(t, err, ErrNotFound)

	broken := LoaderFunc(func(string) ([]string, error) { return nil, errors.New("disk on fire") })
	_, err = Chain(broken, EmbeddedLoader()).Load("en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoaderRejectsPathLikeCodes(t *testing.T) {
	_, err := EmbeddedLoader().Load("../en")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderFunc(t *testing.T) {
	calls := 0
	loader := LoaderFunc(func(lang string) ([]string, error) {
		calls++
		return []string{"alpha"}, nil
	})
	cache := NewCache(loader, zerolog.Nop())

	cache.Stats("alpha beta", "aa")
	stats := cache.Stats("alpha alpha", "aa")

	assert.Equal(t, 2, stats.StopWordCount)
	assert.Equal(t, 1, calls, "lists are memoized per language")
}

func TestConcurrentStats(t *testing.T) {
	cache := NewCache(nil, zerolog.Nop())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, lang := range []string{"en", "es", "fr", "de", "none"} {
				cache.Stats("this is a test of the cache", lang)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, cache.Stats("this is a test of the cache", "en").StopWordCount)
}

func TestShared(t *testing.T) {
	assert.Same(t, Shared(), Shared())
}
