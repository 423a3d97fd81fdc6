package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/config"
	"github.com/deanrtaylor1/gobow/dataset"
	"github.com/deanrtaylor1/gobow/lexer"
	"github.com/deanrtaylor1/gobow/logger"
	"github.com/deanrtaylor1/gobow/vocab"
)

// corpusFlags are shared by the commands that load a corpus and build a
// vocabulary. Only flags set on the command line override the config.
type corpusFlags struct {
	url          string
	cacheDir     string
	minDF        int
	maxVocab     int
	vocabPath    string
	stem         bool
	stripHTML    bool
	stripHeaders bool
	noProgress   bool
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", "", "Dataset archive URL")
	flags.StringVar(&f.cacheDir, "cache-dir", "", "Directory for the downloaded and extracted dataset")
	flags.IntVar(&f.minDF, "min-df", vocab.DefaultMinDocumentFrequency, "Minimum document frequency of a token")
	flags.IntVar(&f.maxVocab, "max-vocab", vocab.DefaultMaxVocabularySize, "Maximum vocabulary size")
	flags.StringVar(&f.vocabPath, "vocab", "", "Use a saved vocabulary instead of building one")
	flags.BoolVar(&f.stem, "stem", false, "Stem word tokens")
	flags.BoolVar(&f.stripHTML, "strip-html", false, "Keep only the text of html documents")
	flags.BoolVar(&f.stripHeaders, "strip-headers", false, "Drop mail headers before tokenizing")
	flags.BoolVar(&f.noProgress, "no-progress", false, "Hide the download progress bar")
}

func (f *corpusFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Dataset.URL = f.url
	}
	if flags.Changed("cache-dir") {
		dir, err := config.ExpandPath(f.cacheDir)
		if err != nil {
			return err
		}
		cfg.Dataset.CacheDir = dir
	}
	if flags.Changed("min-df") {
		cfg.Vocabulary.MinDocumentFrequency = f.minDF
	}
	if flags.Changed("max-vocab") {
		cfg.Vocabulary.MaxVocabularySize = f.maxVocab
	}
	if flags.Changed("stem") {
		cfg.Tokenizer.Stem = f.stem
	}
	if flags.Changed("strip-html") {
		cfg.Tokenizer.StripHTML = f.stripHTML
	}
	if flags.Changed("strip-headers") {
		cfg.Tokenizer.StripHeaders = f.stripHeaders
	}
	return cfg.Validate()
}

// pipeline is the configured tokenizer and loader for one command run.
type pipeline struct {
	cfg       *config.Config
	log       *slog.Logger
	tokenizer *lexer.Tokenizer
	loader    *dataset.Loader
}

func newPipeline(ctx *commandContext, cmd *cobra.Command, flags *corpusFlags) (*pipeline, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if flags != nil {
		if err := flags.apply(cmd, cfg); err != nil {
			return nil, err
		}
	}
	log, err := ctx.log(cmd)
	if err != nil {
		return nil, err
	}
	tok, err := lexer.New(cfg.TokenizerOptions())
	if err != nil {
		return nil, err
	}

	progress := flags != nil && !flags.noProgress && isatty.IsTerminal(os.Stderr.Fd())
	loader := dataset.NewLoader(
		dataset.WithHTTPClient(&http.Client{Timeout: cfg.DownloadTimeout()}),
		dataset.WithLogger(log),
		dataset.WithProgress(progress),
	)
	return &pipeline{cfg: cfg, log: log, tokenizer: tok, loader: loader}, nil
}

func (p *pipeline) Close() {
	if err := p.tokenizer.Close(); err != nil {
		logger.HandleError(err)
	}
}

func (p *pipeline) loadCorpus(ctx context.Context) (*dataset.Corpus, error) {
	return p.loader.Load(ctx, p.cfg.Source())
}

// vocabulary loads the saved vocabulary at path, or builds one from docs.
func (p *pipeline) vocabulary(path string, docs []string) (*vocab.Vocabulary, error) {
	if path != "" {
		v, err := vocab.LoadFile(path)
		if err != nil {
			return nil, err
		}
		p.log.Info("vocabulary loaded", slog.String("path", path), slog.Int("tokens", v.Len()))
		return v, nil
	}
	opts := p.cfg.VocabularyOptions()
	v := vocab.Build(docs, p.tokenizer, opts)
	p.log.Info("vocabulary built",
		slog.Int("tokens", v.Len()),
		slog.Int("min_document_frequency", opts.MinDocumentFrequency),
		slog.Int("max_vocabulary_size", opts.MaxVocabularySize),
	)
	return v, nil
}
