package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"

	"github.com/deanrtaylor1/gobow/logger"
	"github.com/deanrtaylor1/gobow/util"
)

const (
	defaultDownloadTimeout = 5 * time.Minute
	lockRetryDelay         = 250 * time.Millisecond
)

// Loader downloads and reads corpora.
type Loader struct {
	client   *http.Client
	logger   *slog.Logger
	progress bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProgress shows a progress bar on stderr while downloading.
func WithProgress(enabled bool) Option {
	return func(l *Loader) { l.progress = enabled }
}

// NewLoader creates a Loader. Without options it uses an http client with a
// five minute timeout and discards logs.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: defaultDownloadTimeout},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch downloads url to dest unless dest already exists. The download goes
// to a temporary file that is renamed into place, so an interrupted fetch
// never leaves a truncated archive behind.
func (l *Loader) Fetch(ctx context.Context, url, dest string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	if util.PathExists(dest) {
		l.logger.Debug("using cached archive", slog.String("path", dest))
		return dest, nil
	}

	lock := flock.New(dest + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("lock %s: %w", dest, err)
	}
	if !locked {
		return "", fmt.Errorf("lock %s: not acquired", dest)
	}
	defer lock.Unlock()

	// another process may have finished the download while we waited
	if util.PathExists(dest) {
		return dest, nil
	}

	l.logger.Info("downloading dataset", slog.String("url", url))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var out io.Writer = tmp
	if l.progress {
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
		defer bar.Close()
		out = io.MultiWriter(tmp, bar)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("move archive into place: %w", err)
	}

	l.logger.Info("dataset downloaded",
		slog.String("path", dest),
		slog.String("size", humanize.Bytes(uint64(written))),
		slog.Duration("elapsed", time.Since(start)),
	)
	return dest, nil
}
