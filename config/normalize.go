package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/deanrtaylor1/gobow/dataset"
)

func (c *Config) normalize() error {
	if err := c.normalizeDataset(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDataset() error {
	if value, ok := os.LookupEnv("GOBOW_DATASET_URL"); ok && strings.TrimSpace(value) != "" {
		c.Dataset.URL = value
	}
	if value, ok := os.LookupEnv("GOBOW_CACHE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Dataset.CacheDir = value
	}

	c.Dataset.URL = strings.TrimSpace(c.Dataset.URL)
	c.Dataset.ArchiveName = strings.TrimSpace(c.Dataset.ArchiveName)
	if c.Dataset.ArchiveName == "" {
		c.Dataset.ArchiveName = dataset.SMSSpamArchiveName
	}
	c.Dataset.DataFile = strings.TrimSpace(c.Dataset.DataFile)
	if c.Dataset.DataFile == "" {
		c.Dataset.DataFile = dataset.SMSSpamDataFile
	}
	if strings.TrimSpace(c.Dataset.CacheDir) == "" {
		c.Dataset.CacheDir = dataset.DefaultCacheDir
	}
	var err error
	if c.Dataset.CacheDir, err = expandPath(strings.TrimSpace(c.Dataset.CacheDir)); err != nil {
		return fmt.Errorf("dataset.cache_dir: %w", err)
	}
	if c.Dataset.DownloadTimeout == 0 {
		c.Dataset.DownloadTimeout = defaultDownloadTimeout
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("GOBOW_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
