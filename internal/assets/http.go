package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultUserAgent = "model-viewer/1.0"

// HTTPFetcher downloads assets relative to a base URL and caches them under CacheDir,
// keeping the relative layout so that files referencing each other (mtllib, map_Kd) resolve.
type HTTPFetcher struct {
	BaseURL  string
	CacheDir string
	Client   *http.Client
}

// NewHTTPFetcher returns a fetcher for baseURL with a 60 second client timeout.
func NewHTTPFetcher(baseURL, cacheDir string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (f *HTTPFetcher) URL(name string) string {
	return f.BaseURL + "/" + strings.TrimPrefix(name, "/")
}

// Fetch downloads name unless it is already cached. Partial downloads are removed.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(f.CacheDir, filepath.FromSlash(clean))
	if info, err := os.Stat(dest); err == nil && !info.IsDir() {
		return dest, nil
	}

	url := f.URL(clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("download: %w", err)
	}
	return dest, nil
}
