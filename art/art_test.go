package art

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "Song - Artist", Key("Song", "Artist"))
	assert.Equal(t, "Song", Key("Song", ""))
	assert.Equal(t, "Artist", Key("", "Artist"))
	assert.Equal(t, "", Key("", ""))
}

func TestUpdateDownloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	c := New(dir, time.Second)

	path, err := c.Update(context.Background(), "Song", "Artist", server.URL+"/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Song - Artist"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	target, err := os.Readlink(c.CurrentPath())
	require.NoError(t, err)
	assert.Equal(t, "Song - Artist", target)
	assert.True(t, c.Available())
}

func TestUpdateCachedSkipsFetch(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte("fresh"))
	}))
	defer server.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Song - Artist"), []byte("cached"), 0o644))

	c := New(dir, time.Second)
	path, err := c.Update(context.Background(), "Song", "Artist", server.URL+"/cover.jpg")
	require.NoError(t, err)

	assert.EqualValues(t, 0, atomic.LoadInt64(&calls))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cached", string(data))

	target, err := os.Readlink(c.CurrentPath())
	require.NoError(t, err)
	assert.Equal(t, "Song - Artist", target)
}

func TestUpdateFileURL(t *testing.T) {
	src := filepath.Join(t.TempDir(), "local.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o644))

	dir := t.TempDir()
	c := New(dir, time.Second)

	path, err := c.Update(context.Background(), "Song", "Artist", "file://"+src)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUpdateNoMetadataClears(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, time.Second)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink("old", c.CurrentPath()))

	path, err := c.Update(context.Background(), "", "", "http://example.com/a.jpg")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, err = os.Lstat(c.CurrentPath())
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateFetchFailureLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	c := New(dir, time.Second)

	_, err := c.Update(context.Background(), "Song", "Artist", server.URL+"/cover.jpg")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "Song - Artist"))
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, c.Available())
}

func TestUpdateFetchFailureClearsPreviousLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	c := New(dir, time.Second)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Old - Artist"), []byte("old"), 0o644))
	require.NoError(t, os.Symlink("Old - Artist", c.CurrentPath()))

	_, err := c.Update(context.Background(), "New", "Artist", server.URL+"/cover.jpg")
	require.Error(t, err)

	// The link must not keep advertising the previous track's cover.
	_, lstatErr := os.Lstat(c.CurrentPath())
	assert.True(t, os.IsNotExist(lstatErr))
	assert.False(t, c.Available())
}

func TestRepointReplacesExistingLink(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, time.Second)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("b"), 0o644))

	require.NoError(t, c.repoint("a"))
	require.NoError(t, c.repoint("b"))

	target, err := os.Readlink(c.CurrentPath())
	require.NoError(t, err)
	assert.Equal(t, "b", target)
}

func TestClearMissingLink(t *testing.T) {
	c := New(t.TempDir(), time.Second)
	assert.NoError(t, c.Clear())
}
