package web

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAndList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.AddClipboard("text one", "analysis one", "2025-01-01T10:00:00Z")
	require.NoError(t, err)
	second, err := store.AddClipboard("text two", "", "2025-01-01T11:00:00Z")
	require.NoError(t, err)

	list := store.List()
	require.Len(t, list, 2)
	// Новые записи первыми
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, "text two", latest.Text)
}

func TestStoreScreenshotWritesImage(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	pixels := []byte{0x89, 0x50, 0x4E, 0x47}
	r, err := store.AddScreenshot(pixels, "a task", "2025-01-01T10:00:00Z")
	require.NoError(t, err)
	require.NotEmpty(t, r.ImageFile)

	saved, err := os.ReadFile(store.ImagePath(r.ImageFile))
	require.NoError(t, err)
	assert.Equal(t, pixels, saved)
}

func TestStoreScreenshotWriteFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Без каталога картинок запись невозможна; список не должен пополниться
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "images")))
	_, err = store.AddScreenshot([]byte{1}, "", "")
	assert.Error(t, err)
	assert.Empty(t, store.List())
}

func TestStoreDeleteRemovesRecordAndImage(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	r, err := store.AddScreenshot([]byte{1}, "", "")
	require.NoError(t, err)

	removed, err := store.Delete(r.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, store.List())
	_, err = os.Stat(store.ImagePath(r.ImageFile))
	assert.True(t, os.IsNotExist(err))

	removed, err = store.Delete("missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStorePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	r, err := store.AddClipboard("remember me", "", "2025-01-01T10:00:00Z")
	require.NoError(t, err)

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	list := reopened.List()
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
	assert.Equal(t, "remember me", list[0].Text)
}

func TestStoreEvictsBeyondLimit(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for range maxResults + 5 {
		_, err := store.AddClipboard("x", "", "")
		require.NoError(t, err)
	}
	assert.Len(t, store.List(), maxResults)
}
