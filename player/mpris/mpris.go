// Package mpris talks to media players over the MPRIS D-Bus interface.
package mpris

import (
	"fmt"
	"strings"

	"mediabar/player"

	gompris "github.com/Pauloo27/go-mpris"
	"github.com/godbus/dbus/v5"
)

const noTrackPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"

type Client struct {
	conn      *dbus.Conn
	preferred string
}

// New creates an MPRIS client. The bus connection is established lazily
// so that a missing session bus degrades instead of failing startup.
func New(preferred string) *Client {
	return &Client{preferred: preferred}
}

func (c *Client) bus() (*dbus.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	c.conn = conn
	return conn, nil
}

// current picks the active player on the bus. Returns nil when no
// player is registered.
func (c *Client) current() (*gompris.Player, error) {
	conn, err := c.bus()
	if err != nil {
		return nil, err
	}
	names, err := gompris.List(conn)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}
	name := names[0]
	if c.preferred != "" {
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), strings.ToLower(c.preferred)) {
				name = n
				break
			}
		}
	}
	return gompris.New(conn, name), nil
}

func (c *Client) State() (*player.State, error) {
	p, err := c.current()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	status, err := p.GetPlaybackStatus()
	if err != nil {
		return nil, fmt.Errorf("reading playback status: %w", err)
	}
	meta, err := p.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	st := &player.State{Volume: -1}
	switch status {
	case gompris.PlaybackPlaying:
		st.Status = player.StatusPlaying
	case gompris.PlaybackPaused:
		st.Status = player.StatusPaused
	default:
		st.Status = player.StatusStopped
	}

	st.Title = metaString(meta, "xesam:title")
	st.Album = metaString(meta, "xesam:album")
	st.Artist = metaArtist(meta)
	st.ArtURL = metaString(meta, "mpris:artUrl")

	if v, ok := meta["mpris:trackid"]; ok {
		if id := fmt.Sprint(v.Value()); id != "" && id != noTrackPath {
			st.ID = id
		}
	}
	if st.ID == "" {
		st.ID = st.Key()
	}
	if v, ok := meta["mpris:length"]; ok {
		st.Duration = int(asInt64(v.Value()) / 1000)
	}
	if pos, err := p.GetPosition(); err == nil {
		// GetPosition reports seconds.
		st.Position = int(pos * 1000)
	}
	if vol, err := p.GetVolume(); err == nil {
		st.Volume = vol
	}
	if identity, err := p.GetIdentity(); err == nil {
		st.Player = identity
	}
	return st, nil
}

func (c *Client) PlayPause() error {
	p, err := c.current()
	if err != nil {
		return err
	}
	if p == nil {
		return player.ErrNoPlayer
	}
	return p.PlayPause()
}

func (c *Client) Next() error {
	p, err := c.current()
	if err != nil {
		return err
	}
	if p == nil {
		return player.ErrNoPlayer
	}
	return p.Next()
}

func (c *Client) Previous() error {
	p, err := c.current()
	if err != nil {
		return err
	}
	if p == nil {
		return player.ErrNoPlayer
	}
	return p.Previous()
}

func (c *Client) ChangeVolume(delta float64) error {
	p, err := c.current()
	if err != nil {
		return err
	}
	if p == nil {
		return player.ErrNoPlayer
	}
	vol, err := p.GetVolume()
	if err != nil {
		return fmt.Errorf("reading volume: %w", err)
	}
	vol += delta
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	return p.SetVolume(vol)
}

func metaString(meta map[string]dbus.Variant, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}
	if s, ok := v.Value().(string); ok {
		return s
	}
	return ""
}

// metaArtist handles players that report xesam:artist as a string,
// a []string or a []interface{}.
func metaArtist(meta map[string]dbus.Variant) string {
	v, ok := meta["xesam:artist"]
	if !ok {
		return ""
	}
	switch value := v.Value().(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, ", ")
	case []interface{}:
		parts := make([]string, 0, len(value))
		for _, p := range value {
			if s, ok := p.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func asInt64(v interface{}) int64 {
	switch value := v.(type) {
	case int64:
		return value
	case uint64:
		return int64(value)
	case int32:
		return int64(value)
	case uint32:
		return int64(value)
	case int:
		return int64(value)
	case float64:
		return int64(value)
	}
	return 0
}
