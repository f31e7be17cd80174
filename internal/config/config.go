// Package config loads the gravity command line configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// File is the configuration file schema. Zero values mean "not set" and
// leave the built-in defaults or command line flags in effect.
type File struct {
	Language      string        `yaml:"language" json:"language"`
	StopwordsDir  string        `yaml:"stopwordsDir" json:"stopwordsDir"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	MaxBufferSize int           `yaml:"maxBufferSize" json:"maxBufferSize"`
	Format        string        `yaml:"format" json:"format"`
	Verbose       bool          `yaml:"verbose" json:"verbose"`
}

// UnmarshalJSON accepts timeout as a duration string ("5s") or as
// integer nanoseconds.
func (f *File) UnmarshalJSON(b []byte) error {
	type plain File
	aux := struct {
		*plain
		Timeout json.RawMessage `json:"timeout"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.Timeout) == 0 || string(aux.Timeout) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.Timeout, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		f.Timeout = d
		return nil
	}

	var ns int64
	if err := json.Unmarshal(aux.Timeout, &ns); err != nil {
		return fmt.Errorf("timeout: want a duration string or nanoseconds: %w", err)
	}
	f.Timeout = time.Duration(ns)
	return nil
}

// Load reads YAML or JSON into File, chosen by extension. Unknown
// extensions are tried as YAML.
func Load(path string) (File, error) {
	var f File
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}

	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &f); err != nil {
			return f, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &f); err != nil {
			return f, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate rejects values the extractor cannot use.
func (f File) Validate() error {
	switch f.Format {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown format %q, want %q or %q", f.Format, FormatJSON, FormatText)
	}
	if f.Timeout < 0 {
		return fmt.Errorf("negative timeout %v", f.Timeout)
	}
	if f.MaxBufferSize < 0 {
		return fmt.Errorf("negative maxBufferSize %d", f.MaxBufferSize)
	}
	return nil
}
