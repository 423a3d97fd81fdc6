package vocab

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// snapshot is the gob payload; Vocabulary keeps its fields unexported.
type snapshot struct {
	Stats     []Stat
	Documents int
}

// Save writes the vocabulary as gzip compressed gob.
func (v *Vocabulary) Save(w io.Writer) error {
	gzipWriter := gzip.NewWriter(w)

	encoder := gob.NewEncoder(gzipWriter)
	if err := encoder.Encode(snapshot{Stats: v.Stats(), Documents: v.docs}); err != nil {
		return fmt.Errorf("error encoding vocabulary: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("error closing gzip writer: %w", err)
	}
	return nil
}

// Load reads a vocabulary written by Save.
func Load(r io.Reader) (*Vocabulary, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var snap snapshot
	if err := gob.NewDecoder(gzipReader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("error decoding vocabulary: %w", err)
	}
	return FromStats(snap.Stats, snap.Documents)
}

// SaveFile writes the vocabulary to path, replacing it atomically.
func (v *Vocabulary) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create vocabulary directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := v.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFile reads a vocabulary from path.
func LoadFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
