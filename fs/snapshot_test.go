package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/adlib"
	"github.com/fwojciec/adlib/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore(t *testing.T) {
	t.Parallel()

	t.Run("Save then Commit moves pages to final directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewSnapshotStore(baseDir, "pages")
		ctx := context.Background()

		page := &adlib.Page{
			URL:       "https://www.facebook.com/ads/archive/render_ad/?id=2500687420313026",
			HTML:      "<html><body>ad</body></html>",
			FetchedAt: time.Now().UTC(),
		}
		require.NoError(t, store.Save(ctx, page))

		// Nothing in the final directory until Commit
		_, err := os.Stat(filepath.Join(baseDir, "pages"))
		require.True(t, os.IsNotExist(err))

		require.NoError(t, store.Commit())

		data, err := os.ReadFile(filepath.Join(baseDir, "pages", "ads", "archive", "render_ad", "id_2500687420313026.html"))
		require.NoError(t, err)
		assert.Equal(t, page.HTML, string(data))

		// Temp directory is gone after Commit
		_, err = os.Stat(filepath.Join(baseDir, "pages.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("URLs differing only by query get distinct files", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewSnapshotStore(baseDir, "pages")
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, &adlib.Page{URL: "https://host.test/ad/?id=1", HTML: "first"}))
		require.NoError(t, store.Save(ctx, &adlib.Page{URL: "https://host.test/ad/?id=2", HTML: "second"}))
		require.NoError(t, store.Commit())

		first, err := os.ReadFile(filepath.Join(baseDir, "pages", "ad", "id_1.html"))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(baseDir, "pages", "ad", "id_2.html"))
		require.NoError(t, err)
		assert.Equal(t, "first", string(first))
		assert.Equal(t, "second", string(second))
	})

	t.Run("Commit replaces a previous snapshot set", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		ctx := context.Background()

		store := fs.NewSnapshotStore(baseDir, "pages")
		require.NoError(t, store.Save(ctx, &adlib.Page{URL: "https://host.test/old", HTML: "old"}))
		require.NoError(t, store.Commit())

		store = fs.NewSnapshotStore(baseDir, "pages")
		require.NoError(t, store.Save(ctx, &adlib.Page{URL: "https://host.test/new", HTML: "new"}))
		require.NoError(t, store.Commit())

		_, err := os.Stat(filepath.Join(baseDir, "pages", "old", "index.html"))
		assert.True(t, os.IsNotExist(err), "previous snapshot should be replaced")
		data, err := os.ReadFile(filepath.Join(baseDir, "pages", "new", "index.html"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("Abort discards pending pages", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewSnapshotStore(baseDir, "pages")

		require.NoError(t, store.Save(context.Background(), &adlib.Page{URL: "https://host.test/ad", HTML: "x"}))
		require.NoError(t, store.Abort())

		_, err := os.Stat(filepath.Join(baseDir, "pages.tmp"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(baseDir, "pages"))
		assert.True(t, os.IsNotExist(err))
	})
}
