// Package main provides the command-line interface for Gravity.
// It extracts article text from HTML files or standard input and prints the
// result as JSON or plain text.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrjoshuak/gravity"
	"github.com/mrjoshuak/gravity/internal/config"
)

// extractFlags holds the extract command's flag values
type extractFlags struct {
	configPath    string
	lang          string
	format        string
	stopwordsDir  string
	pageURL       string
	timeout       time.Duration
	maxBufferSize int
	compact       bool
	verbose       bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "gravity",
		Short: "Gravity - extract the article body from HTML",
		Long: `Gravity locates the main article in an HTML page by scoring paragraphs
on their stopword content, and prints its text, links, videos and metadata.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newExtractCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := gravity.GetBuildInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (%s)\n", info.Name, info.Version, info.GoVersion)
			return err
		},
	}
}

func newExtractCmd() *cobra.Command {
	defaults := gravity.DefaultOptions()
	f := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [files...|-]",
		Short: "Extract articles from HTML files or standard input",
		Example: `  gravity extract article.html
  gravity extract --format text --lang es noticia.html
  curl -s https://example.com/post | gravity extract --url https://example.com/post -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML or JSON configuration file")
	flags.StringVar(&f.lang, "lang", defaults.Language, "Stopword language; empty detects it from the page")
	flags.StringVar(&f.format, "format", config.FormatJSON, "Output format: json or text")
	flags.StringVar(&f.stopwordsDir, "stopwords-dir", "", "Directory with stopwords-<lang>.txt lists")
	flags.StringVar(&f.pageURL, "url", "", "Page address used to resolve canonical and favicon links")
	flags.DurationVar(&f.timeout, "timeout", defaults.Timeout, "Timeout per document")
	flags.IntVar(&f.maxBufferSize, "max-buffer-size", defaults.MaxBufferSize, "Maximum document size in bytes")
	flags.BoolVar(&f.compact, "compact", false, "Output compact JSON without indentation")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log debug events to stderr")
	return cmd
}

// merge applies config file values for every flag the user did not set
func (f *extractFlags) merge(cmd *cobra.Command, file config.File) {
	changed := cmd.Flags().Changed
	if file.Language != "" && !changed("lang") {
		f.lang = file.Language
	}
	if file.Format != "" && !changed("format") {
		f.format = file.Format
	}
	if file.StopwordsDir != "" && !changed("stopwords-dir") {
		f.stopwordsDir = file.StopwordsDir
	}
	if file.Timeout != 0 && !changed("timeout") {
		f.timeout = file.Timeout
	}
	if file.MaxBufferSize != 0 && !changed("max-buffer-size") {
		f.maxBufferSize = file.MaxBufferSize
	}
	if file.Verbose && !changed("verbose") {
		f.verbose = true
	}
}

func runExtract(cmd *cobra.Command, f *extractFlags, args []string) error {
	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		f.merge(cmd, file)
	}
	if err := (config.File{Format: f.format}).Validate(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), f.verbose)

	opts := []gravity.Option{
		gravity.WithLanguage(f.lang),
		gravity.WithTimeout(f.timeout),
		gravity.WithMaxBufferSize(f.maxBufferSize),
		gravity.WithURL(f.pageURL),
		gravity.WithLogger(logger),
	}
	if f.stopwordsDir != "" {
		opts = append(opts, gravity.WithStopwordsDir(f.stopwordsDir))
	}
	ext := gravity.New(opts...)

	if len(args) == 0 {
		args = []string{"-"}
	}

	var failed int
	for _, path := range args {
		article, err := extractPath(cmd, ext, path)
		if err != nil {
			logger.Error().Err(err).Str("input", path).Msg("extraction failed")
			failed++
			continue
		}
		logger.Debug().Str("input", path).Bool("has_body", article.HasBody).Int("links", len(article.Links)).
			Msg("extracted")

		if err := write(cmd.OutOrStdout(), article, f.format, f.compact); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

func extractPath(cmd *cobra.Command, ext gravity.Extractor, path string) (*gravity.Article, error) {
	if path == "-" {
		return ext.ExtractFromReader(cmd.InOrStdin(), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ext.ExtractFromReader(file, nil)
}

func write(w io.Writer, article *gravity.Article, format string, compact bool) error {
	if format == config.FormatText {
		_, err := fmt.Fprintln(w, article.Text)
		return err
	}

	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(article)
}

// newLogger writes human-readable events to w, at debug level when verbose
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
