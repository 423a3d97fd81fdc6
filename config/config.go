package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/deanrtaylor1/gobow/dataset"
	"github.com/deanrtaylor1/gobow/lexer"
	"github.com/deanrtaylor1/gobow/vocab"
)

//go:embed sample_config.toml
var sampleConfig string

// Dataset describes where the corpus is fetched from and cached.
type Dataset struct {
	URL             string `toml:"url"`
	CacheDir        string `toml:"cache_dir"`
	ArchiveName     string `toml:"archive_name"`
	DataFile        string `toml:"data_file"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// Vocabulary holds the vocabulary thresholds.
type Vocabulary struct {
	MinDocumentFrequency int `toml:"min_document_frequency"`
	MaxVocabularySize    int `toml:"max_vocabulary_size"`
}

// Tokenizer toggles optional tokenizer steps.
type Tokenizer struct {
	StripHeaders bool `toml:"strip_headers"`
	StripHTML    bool `toml:"strip_html"`
	Stem         bool `toml:"stem"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for gobow.
type Config struct {
	Dataset    Dataset    `toml:"dataset"`
	Vocabulary Vocabulary `toml:"vocabulary"`
	Tokenizer  Tokenizer  `toml:"tokenizer"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error: defaults apply and the returned bool is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Source returns the dataset source described by the configuration.
func (c *Config) Source() dataset.Source {
	return dataset.Source{
		URL:         c.Dataset.URL,
		CacheDir:    c.Dataset.CacheDir,
		ArchiveName: c.Dataset.ArchiveName,
		DataFile:    c.Dataset.DataFile,
	}
}

// VocabularyOptions returns the vocabulary thresholds.
func (c *Config) VocabularyOptions() vocab.Options {
	return vocab.Options{
		MinDocumentFrequency: c.Vocabulary.MinDocumentFrequency,
		MaxVocabularySize:    c.Vocabulary.MaxVocabularySize,
	}
}

// TokenizerOptions returns the tokenizer toggles.
func (c *Config) TokenizerOptions() lexer.Options {
	return lexer.Options{
		StripHeaders: c.Tokenizer.StripHeaders,
		StripHTML:    c.Tokenizer.StripHTML,
		Stem:         c.Tokenizer.Stem,
	}
}

// DownloadTimeout returns the download timeout as a duration.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Dataset.DownloadTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
