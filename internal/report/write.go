package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteMarkdown writes the strategy document to path atomically: readers see
// either the previous file or the complete new one, never a partial write.
func WriteMarkdown(path, title, body string) error {
	content := fmt.Sprintf("# %s\n\n%s", title, body)
	return writeFileAtomic(path, []byte(content), 0o644)
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	// Temp file in the same directory: cross-filesystem renames are not
	// atomic.
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
