package dataset

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/deanrtaylor1/gobow/util"
)

const maxLineSize = 1 << 20

// Corpus holds documents and their 0/1 labels, aligned by position.
type Corpus struct {
	Docs   []string
	Labels []int
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.Docs) }

// Spam counts the documents labelled 1.
func (c *Corpus) Spam() int {
	n := 0
	for _, label := range c.Labels {
		n += label
	}
	return n
}

// Ham counts the documents labelled 0.
func (c *Corpus) Ham() int { return c.Len() - c.Spam() }

// Locate walks root in lexical order and returns the first regular file
// named name.
func Locate(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("search %s: %w", root, err)
	}
	if found == "" {
		return "", &NotFoundError{Name: name, Root: root}
	}
	return found, nil
}

// Parse reads "label<TAB>text" lines. Lines without a tab are skipped,
// invalid UTF-8 is dropped and a label of "spam" in any case maps to 1,
// anything else to 0.
func Parse(r io.Reader) (*Corpus, error) {
	corpus := &Corpus{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), ""))
		label, text, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		corpus.Docs = append(corpus.Docs, text)
		corpus.Labels = append(corpus.Labels, labelValue(label))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return corpus, nil
}

// scanLines is bufio.ScanLines that also ends a line at a lone \r, so
// files with classic Mac line endings parse.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		switch {
		case data[i] == '\n':
			return i + 1, data[:i], nil
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}
		// a trailing \r may be the first half of \r\n
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func labelValue(label string) int {
	if strings.EqualFold(label, "spam") {
		return 1
	}
	return 0
}

// ParseFile parses the corpus stored at path.
func ParseFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Load fetches the source archive if it is not cached, unpacks it once and
// parses its data file.
func (l *Loader) Load(ctx context.Context, src Source) (*Corpus, error) {
	archive, err := l.Fetch(ctx, src.URL, src.ArchivePath())
	if err != nil {
		return nil, err
	}

	extracted := src.ExtractedPath()
	if !util.PathExists(extracted) {
		if err := l.extractOnce(archive, extracted); err != nil {
			return nil, err
		}
	}

	dataFile, err := Locate(extracted, src.DataFile)
	if err != nil {
		return nil, err
	}
	corpus, err := ParseFile(dataFile)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded corpus",
		slog.String("file", dataFile),
		slog.Int("documents", corpus.Len()),
		slog.Int("spam", corpus.Spam()),
		slog.Int("ham", corpus.Ham()),
	)
	return corpus, nil
}

// extractOnce unpacks into a scratch directory and renames it into place,
// so a failed extraction is retried on the next run.
func (l *Loader) extractOnce(archive, dest string) error {
	scratch := dest + ".tmp"
	if err := os.RemoveAll(scratch); err != nil {
		return err
	}
	l.logger.Debug("extracting archive", slog.String("archive", archive), slog.String("dest", dest))
	if err := Extract(archive, scratch); err != nil {
		os.RemoveAll(scratch)
		return err
	}
	return os.Rename(scratch, dest)
}
