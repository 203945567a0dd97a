// Package cache stores lyric documents and the song-info state file on
// disk. Everything here is best effort: readers tolerate missing or
// stale files, writers go through a temp file and rename.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"mediabar/lyrics"
)

const maxFilenameBytes = 200

var (
	unsafeRe   = regexp.MustCompile(`[\x00-\x1f<>:"/\\|?*]`)
	collapseRe = regexp.MustCompile(`_+`)
)

// Filename turns arbitrary track metadata into a safe file name.
// Inputs that sanitize away entirely fall back to a short hash so that
// distinct tracks never collide on an empty name.
func Filename(name string) string {
	if name == "" {
		return ""
	}
	s := unsafeRe.ReplaceAllString(name, "_")
	s = collapseRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, " ._")
	for len(s) > maxFilenameBytes {
		_, size := utf8LastRune(s)
		s = s[:len(s)-size]
	}
	s = strings.Trim(s, " ._")
	if s == "" {
		sum := sha1.Sum([]byte(name))
		return hex.EncodeToString(sum[:])[:16]
	}
	return s
}

func utf8LastRune(s string) (rune, int) {
	for i := len(s) - 1; i >= 0; i-- {
		if (s[i] & 0xc0) != 0x80 {
			return rune(s[i]), len(s) - i
		}
	}
	return 0, len(s)
}

type Cache struct {
	dir string
}

func New(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, Filename(key)+".lrc")
}

// Get returns the cached document for key, or (nil, nil) on a miss.
func (c *Cache) Get(key string) ([]lyrics.Line, error) {
	if key == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lyrics.Parse(string(data)), nil
}

// Set writes the document for key atomically. Unsynced documents are
// skipped: the LRC encoding collapses their zero timestamps, so a
// read-back would not return the same sequence.
func (c *Cache) Set(key string, lines []lyrics.Line) error {
	if key == "" || len(lines) == 0 || !lyrics.Timesynced(lines) {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return writeAtomic(c.dir, c.path(key), []byte(lyrics.Format(lines)))
}

// Info records the outcome of the last lyric resolution, so a track
// without lyrics does not hit the API on every poll.
type Info struct {
	TrackID   string    `json:"track_id"`
	Found     bool      `json:"found"`
	FetchedAt time.Time `json:"fetched_at"`
}

// infoTTL bounds how long a negative lookup is trusted.
const infoTTL = time.Hour

// Fresh reports whether the info still answers for the given track.
func (i *Info) Fresh(trackID string) bool {
	return i != nil && trackID != "" && i.TrackID == trackID &&
		time.Since(i.FetchedAt) < infoTTL
}

func (c *Cache) infoPath() string {
	return filepath.Join(c.dir, "song.json")
}

// LoadInfo returns the stored info, or nil when missing or corrupt.
func (c *Cache) LoadInfo() *Info {
	data, err := os.ReadFile(c.infoPath())
	if err != nil {
		return nil
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}

func (c *Cache) SaveInfo(info Info) error {
	if info.FetchedAt.IsZero() {
		info.FetchedAt = time.Now()
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return writeAtomic(c.dir, c.infoPath(), data)
}

func writeAtomic(dir, dest string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
