package romloader

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// readEntry reads one archive member that has already been matched.
func readEntry(open func() (io.ReadCloser, error), name string) ([]byte, string, error) {
	rc, err := open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s in archive: %w", name, err)
	}
	defer rc.Close()

	data, err := readLimited(rc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, filepath.Base(name), nil
}

func readZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isROMName(f.Name) {
			return readEntry(f.Open, f.Name)
		}
	}
	return nil, "", ErrNoROMFile
}

func read7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isROMName(f.Name) {
			return readEntry(f.Open, f.Name)
		}
	}
	return nil, "", ErrNoROMFile
}

// readRAR streams through the archive; rardecode has no random access.
func readRAR(path string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		h, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil, "", ErrNoROMFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read rar entry: %w", err)
		}
		if h.IsDir || !isROMName(h.Name) {
			continue
		}

		data, err := readLimited(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", h.Name, err)
		}
		return data, filepath.Base(h.Name), nil
	}
}

// readGzip decompresses a single gzipped image. The name comes from the
// gzip header when present, else from the file name minus ".gz".
func readGzip(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	data, err := readLimited(gr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip: %w", err)
	}

	name := filepath.Base(gr.Name)
	if gr.Name == "" {
		base := filepath.Base(path)
		name = base[:len(base)-len(filepath.Ext(base))]
	}
	if !isROMName(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + Extensions[0]
	}
	return data, name, nil
}
