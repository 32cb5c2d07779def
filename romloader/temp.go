package romloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteTemp writes an unpacked image into dir under its entry name so the
// core can reopen it by path. Raw ROMs already live on disk and their
// original path is returned unchanged.
func (r *ROM) WriteTemp(dir string) (string, error) {
	if !r.Container.Archive() {
		return r.Path, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(r.Name))
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, r.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write extracted ROM: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to rename extracted ROM: %w", err)
	}
	return dst, nil
}

// CleanTemp removes images left in dir by earlier runs and returns how many
// were deleted. A missing dir is not an error.
func CleanTemp(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list temp dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".nds") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}
