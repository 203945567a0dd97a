// Package lrclib fetches synchronized lyrics from the LRCLIB API.
package lrclib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mediabar/lyrics"
)

const (
	// DefaultURL is the public LRCLIB get endpoint.
	DefaultURL = "https://lrclib.net/api/get"

	userAgent = "mediabar/1.0"
)

// ErrNotFound means the API has no lyrics for the track.
var ErrNotFound = errors.New("lyrics not found")

type Client struct {
	http *http.Client
	url  string
}

func New(apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  apiURL,
	}
}

type response struct {
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
	Instrumental bool   `json:"instrumental"`
}

func (c *Client) Lyrics(ctx context.Context, q lyrics.Query) ([]lyrics.Line, error) {
	params := url.Values{}
	params.Set("track_name", q.Title)
	params.Set("artist_name", q.Artist)
	if q.Album != "" {
		params.Set("album_name", q.Album)
	}
	if q.Duration > 0 {
		params.Set("duration", strconv.Itoa(q.Duration))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lrclib request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding lrclib response: %w", err)
	}
	if body.Instrumental {
		return nil, ErrNotFound
	}
	if body.SyncedLyrics != "" {
		lines := lyrics.Parse(body.SyncedLyrics)
		if len(lines) == 0 {
			return nil, fmt.Errorf("lrclib returned unparsable synced lyrics")
		}
		return lines, nil
	}
	if body.PlainLyrics != "" {
		return plainLines(body.PlainLyrics), nil
	}
	return nil, ErrNotFound
}

// plainLines wraps untimed lyrics as a document with zero timestamps.
func plainLines(plain string) []lyrics.Line {
	var lines []lyrics.Line
	for _, raw := range strings.Split(strings.TrimSpace(plain), "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		lines = append(lines, lyrics.Line{Words: raw})
	}
	return lines
}
