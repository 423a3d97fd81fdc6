package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateVocabulary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.URL == "" {
		return errors.New("dataset.url must be set")
	}
	u, err := url.Parse(c.Dataset.URL)
	if err != nil {
		return fmt.Errorf("dataset.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("dataset.url: unsupported scheme %q", u.Scheme)
	}
	if c.Dataset.DownloadTimeout < 0 {
		return errors.New("dataset.download_timeout must be positive")
	}
	return nil
}

func (c *Config) validateVocabulary() error {
	if c.Vocabulary.MinDocumentFrequency < 1 {
		return errors.New("vocabulary.min_document_frequency must be at least 1")
	}
	if c.Vocabulary.MaxVocabularySize < 1 {
		return errors.New("vocabulary.max_vocabulary_size must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
