// Package dataset fetches, unpacks and parses labelled text corpora.
package dataset

import "path/filepath"

const (
	SMSSpamURL         = "https://archive.ics.uci.edu/ml/machine-learning-databases/00228/smsspamcollection.zip"
	SMSSpamArchiveName = "smsspam.zip"
	SMSSpamDataFile    = "SMSSpamCollection"
	DefaultCacheDir    = "data/sms"

	extractedDir = "extracted"
)

// Source describes where a corpus comes from and where it is cached.
type Source struct {
	// URL of the archive.
	URL string
	// CacheDir holds the downloaded archive and its extracted tree.
	CacheDir string
	// ArchiveName is the file name the archive is stored under.
	ArchiveName string
	// DataFile is the base name of the tab separated file inside the archive.
	DataFile string
}

// SMSSpam returns the UCI SMS Spam Collection cached under cacheDir.
func SMSSpam(cacheDir string) Source {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	return Source{
		URL:         SMSSpamURL,
		CacheDir:    cacheDir,
		ArchiveName: SMSSpamArchiveName,
		DataFile:    SMSSpamDataFile,
	}
}

// ArchivePath is the local path of the downloaded archive.
func (s Source) ArchivePath() string {
	return filepath.Join(s.CacheDir, s.ArchiveName)
}

// ExtractedPath is the directory the archive is unpacked into.
func (s Source) ExtractedPath() string {
	return filepath.Join(s.CacheDir, extractedDir)
}
