package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/adlib"
)

// SnapshotStore persists raw fetched page HTML with atomic update
// semantics. Pages are saved to a temporary directory, then moved
// atomically on Commit so a crashed crawl never leaves a half-written
// snapshot set behind. Snapshots allow re-running extraction against
// previously fetched pages without refetching.
type SnapshotStore struct {
	baseDir string
	name    string
}

// NewSnapshotStore creates a new SnapshotStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSnapshotStore(baseDir, name string) *SnapshotStore {
	return &SnapshotStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *SnapshotStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one page's HTML to the pending snapshot directory.
func (s *SnapshotStore) Save(ctx context.Context, page *adlib.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := snapshotPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(page.HTML), 0644)
}

// Commit atomically replaces the final snapshot directory with the
// pending one.
func (s *SnapshotStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending snapshot directory.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// snapshotPath converts a page URL to a relative .html file path.
// The query string is folded into the file name because archive page
// URLs frequently differ only by query parameters.
// Example: https://host/ads/archive/render_ad/?id=42 → ads/archive/render_ad/id_42.html
func snapshotPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.TrimPrefix(u.Path, "/")
	path = strings.TrimSuffix(path, "/")

	name := sanitizeFileName(u.RawQuery)
	if name == "" {
		name = "index"
	}

	if path == "" {
		return name + ".html", nil
	}
	return path + "/" + name + ".html", nil
}

// sanitizeFileName replaces characters outside [a-zA-Z0-9._-] with underscores.
func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
