package config

import (
	"github.com/deanrtaylor1/gobow/dataset"
	"github.com/deanrtaylor1/gobow/vocab"
)

const (
	defaultConfigPath      = "~/.config/gobow/config.toml"
	projectConfigFile      = "gobow.toml"
	defaultDownloadTimeout = 300
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Dataset: Dataset{
			URL:             dataset.SMSSpamURL,
			CacheDir:        dataset.DefaultCacheDir,
			ArchiveName:     dataset.SMSSpamArchiveName,
			DataFile:        dataset.SMSSpamDataFile,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Vocabulary: Vocabulary{
			MinDocumentFrequency: vocab.DefaultMinDocumentFrequency,
			MaxVocabularySize:    vocab.DefaultMaxVocabularySize,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
