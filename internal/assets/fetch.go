package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"model-viewer/internal/archive"
)

// ErrNotFound is returned when an asset does not exist under the root.
var ErrNotFound = errors.New("assets: not found")

// Fetcher makes the asset name (slash-separated, relative to the asset root) available
// as a local file and returns its path. Fetch may block; loaders call it off the render thread.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (localPath string, err error)
	// URL is the human-readable location of name, used in log lines.
	URL(name string) string
}

// NewFetcher picks a Fetcher for root: an http(s) URL, a .zip bundle, or a directory.
// Remote and zipped assets are copied under cacheDir.
func NewFetcher(root, cacheDir string) Fetcher {
	switch {
	case strings.HasPrefix(root, "http://"), strings.HasPrefix(root, "https://"):
		return NewHTTPFetcher(root, cacheDir)
	case strings.EqualFold(filepath.Ext(root), ".zip"):
		return &ZipFetcher{Archive: root, CacheDir: cacheDir}
	default:
		return &DirFetcher{Root: root}
	}
}

// cleanName normalizes name and rejects names that climb out of the root.
func cleanName(name string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("assets: invalid name %q", name)
	}
	return clean, nil
}

// DirFetcher serves assets from a directory on disk.
type DirFetcher struct {
	Root string
}

func (f *DirFetcher) URL(name string) string {
	return filepath.ToSlash(filepath.Join(f.Root, filepath.FromSlash(name)))
}

func (f *DirFetcher) Fetch(ctx context.Context, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := filepath.Join(f.Root, filepath.FromSlash(clean))
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, f.URL(clean))
		}
		return "", fmt.Errorf("assets: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("assets: %s is a directory", f.URL(clean))
	}
	return p, nil
}

// ZipFetcher serves assets out of a zip bundle, extracting each requested entry into CacheDir.
type ZipFetcher struct {
	Archive  string
	CacheDir string
}

func (f *ZipFetcher) URL(name string) string {
	return f.Archive + "!/" + name
}

func (f *ZipFetcher) Fetch(ctx context.Context, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := archive.Extract(f.Archive, clean, f.CacheDir)
	if err != nil {
		if errors.Is(err, archive.ErrNotInArchive) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, f.URL(clean))
		}
		return "", err
	}
	return p, nil
}
