package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotInArchive is returned when the requested entry does not exist in the zip.
var ErrNotInArchive = errors.New("archive: entry not found")

// Extract copies the entry name (slash-separated, relative to the archive root) out of
// zipPath into destDir, preserving its directory. Entries that would escape destDir are refused.
// Returns the path of the extracted file.
func Extract(zipPath, name, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	clean := path.Clean(strings.TrimPrefix(name, "/"))
	dest, err := safeJoin(destDir, clean)
	if err != nil {
		return "", err
	}
	src, err := r.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotInArchive, clean)
		}
		return "", fmt.Errorf("unzip: %w", err)
	}
	defer src.Close()
	if info, err := src.Stat(); err == nil && info.IsDir() {
		return "", fmt.Errorf("unzip: %s is a directory", clean)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	_, err = io.Copy(out, src)
	out.Close()
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("unzip: %w", err)
	}
	return dest, nil
}

// safeJoin joins rel onto dir and fails when the result leaves dir.
func safeJoin(dir, rel string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	absDest, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("unzip: %w", err)
	}
	if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("unzip: %s escapes %s", rel, dir)
	}
	return absDest, nil
}
