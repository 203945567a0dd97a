// Package art maintains the on-disk album cover cache and the
// "current" symlink the bar points its image widget at.
package art

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"mediabar/cache"
)

const currentLink = "current"

type Cache struct {
	dir    string
	client *http.Client
}

func New(dir string, timeout time.Duration) *Cache {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cache{
		dir:    dir,
		client: &http.Client{Timeout: timeout},
	}
}

// Key derives the cache file name for a track.
func Key(title, artist string) string {
	switch {
	case title != "" && artist != "":
		return cache.Filename(title + " - " + artist)
	case title != "":
		return cache.Filename(title)
	default:
		return cache.Filename(artist)
	}
}

// CurrentPath is where the symlink for the playing track lives.
func (c *Cache) CurrentPath() string {
	return filepath.Join(c.dir, currentLink)
}

// Available reports whether the current symlink resolves to a file.
func (c *Cache) Available() bool {
	info, err := os.Stat(c.CurrentPath())
	return err == nil && info.Size() > 0
}

// Update makes sure the art for the given track is cached and the
// current symlink points at it. Already-cached covers are never
// re-fetched. Returns the cached file path, or "" when the symlink was
// cleared instead.
func (c *Cache) Update(ctx context.Context, title, artist, artURL string) (string, error) {
	key := Key(title, artist)
	if key == "" {
		return "", c.Clear()
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(c.dir, key)
	if _, err := os.Stat(path); err != nil {
		if artURL == "" {
			return "", c.Clear()
		}
		if err := c.fetch(ctx, artURL, path); err != nil {
			// A stale link would advertise the previous track's cover.
			_ = c.Clear()
			return "", err
		}
	}
	if err := c.repoint(key); err != nil {
		return "", err
	}
	return path, nil
}

func (c *Cache) fetch(ctx context.Context, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing art url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return c.download(ctx, rawURL, dest)
	case "file":
		return c.copyLocal(u.Path, dest)
	default:
		return fmt.Errorf("unsupported art url scheme %q", u.Scheme)
	}
}

func (c *Cache) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building art request: %w", err)
	}
	req.Header.Set("User-Agent", "mediabar/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching art: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("art fetch returned status %d", resp.StatusCode)
	}
	return c.write(dest, resp.Body)
}

func (c *Cache) copyLocal(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening local art: %w", err)
	}
	defer f.Close()
	return c.write(dest, f)
}

// write lands the image through a temp file so a failed fetch never
// leaves a partial cover behind.
func (c *Cache) write(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(c.dir, ".art-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing art: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

// repoint atomically points the current symlink at target, a file name
// relative to the cache directory.
func (c *Cache) repoint(target string) error {
	tmp := filepath.Join(c.dir, "."+currentLink+"-tmp")
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.CurrentPath()); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Clear removes the current symlink.
func (c *Cache) Clear() error {
	err := os.Remove(c.CurrentPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
