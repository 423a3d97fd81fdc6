package dataset

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

var (
	zipMagic   = []byte("PK\x03\x04")
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
)

// Extract unpacks a zip or a (gzip, bzip2 or uncompressed) tar archive into
// dest. Every entry is checked before anything is written: if one would land
// outside dest the whole extraction fails with a PathTraversalError.
func Extract(archive, dest string) error {
	isZip, err := hasPrefix(archive, zipMagic)
	if err != nil {
		return err
	}
	if isZip {
		return extractZip(archive, dest)
	}
	return extractTar(archive, dest)
}

// resolve joins name onto dest and reports whether the result stays inside.
func resolve(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", &PathTraversalError{Entry: name, Dest: dest}
	}
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &PathTraversalError{Entry: name, Dest: dest}
	}
	return target, nil
}

func hasPrefix(path string, magic []byte) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("read archive: %w", err)
	}
	return bytes.Equal(head, magic), nil
}

func extractZip(archive, dest string) error {
	// an insecure entry name comes back as an error next to a usable
	// reader; the check below turns it into a PathTraversalError
	zr, err := zip.OpenReader(archive)
	if zr == nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if _, err := resolve(dest, file.Name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	for _, file := range zr.File {
		target, _ := resolve(dest, file.Name)
		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
		case mode.IsRegular():
			rc, err := file.Open()
			if err != nil {
				return fmt.Errorf("open zip entry %s: %w", file.Name, err)
			}
			err = writeFile(target, rc)
			rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// openTar opens a tar stream, undoing gzip or bzip2 compression.
func openTar(archive string) (*tar.Reader, io.Closer, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	br := bufio.NewReader(f)
	head, _ := br.Peek(3)

	var r io.Reader = br
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		r = gz
	case bytes.HasPrefix(head, bzip2Magic):
		r = bzip2.NewReader(br)
	}
	return tar.NewReader(r), f, nil
}

func extractTar(archive, dest string) error {
	tr, closer, err := openTar(archive)
	if err != nil {
		return err
	}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, tar.ErrInsecurePath) {
			closer.Close()
			return &PathTraversalError{Entry: hdr.Name, Dest: dest}
		}
		if err != nil {
			closer.Close()
			return fmt.Errorf("read tar entry: %w", err)
		}
		if _, err := resolve(dest, hdr.Name); err != nil {
			closer.Close()
			return err
		}
	}
	closer.Close()

	// second pass writes the entries that passed the check
	tr, closer, err = openTar(archive)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}
		target, err := resolve(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr); err != nil {
				return err
			}
		default:
			// links and devices are never materialised
		}
	}
}

func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return out.Close()
}
