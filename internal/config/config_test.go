package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "gravity.yaml", `
language: es
stopwordsDir: /etc/gravity/stopwords
timeout: 5s
maxBufferSize: 2048
format: text
verbose: true
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, File{
		Language:      "es",
		StopwordsDir:  "/etc/gravity/stopwords",
		Timeout:       5 * time.Second,
		MaxBufferSize: 2048,
		Format:        FormatText,
		Verbose:       true,
	}, f)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "gravity.json", `{"language":"fr","maxBufferSize":10}`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", f.Language)
	assert.Equal(t, 10, f.MaxBufferSize)
	assert.Zero(t, f.Timeout)
}

func TestLoadJSONTimeout(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    time.Duration
	}{
		{"duration string", `{"timeout":"5s","format":"text"}`, 5 * time.Second},
		{"nanoseconds", `{"timeout":1500000000}`, 1500 * time.Millisecond},
		{"null", `{"timeout":null,"language":"en"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeFile(t, "gravity.json", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Timeout)
		})
	}

	f, err := Load(writeFile(t, "gravity.json", `{"timeout":"5s","format":"text","verbose":true}`))
	require.NoError(t, err)
	assert.Equal(t, FormatText, f.Format)
	assert.True(t, f.Verbose)

	_, err = Load(writeFile(t, "gravity.json", `{"timeout":"soon"}`))
	assert.Error(t, err)
	_, err = Load(writeFile(t, "gravity.json", `{"timeout":true}`))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "c.yaml", "language: [unclosed"},
		{"bad json", "c.json", "{"},
		{"unknown format", "c.yml", "format: xml"},
		{"negative timeout", "c.yaml", "timeout: -1s"},
		{"negative buffer", "c.yaml", "maxBufferSize: -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
