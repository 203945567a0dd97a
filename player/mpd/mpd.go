// Package mpd reports and controls playback through an MPD server.
package mpd

import (
	"fmt"
	"strconv"

	"mediabar/player"

	gompd "github.com/fhs/gompd/mpd"
)

type Client struct {
	address  string
	password string
}

func New(address, password string) *Client {
	return &Client{address: address, password: password}
}

// connect dials a fresh connection. Reporters are one-shot processes,
// so there is nothing to keep alive between calls.
func (c *Client) connect() (*gompd.Client, error) {
	if c.password != "" {
		return gompd.DialAuthenticated("tcp", c.address, c.password)
	}
	return gompd.Dial("tcp", c.address)
}

func (c *Client) State() (*player.State, error) {
	conn, err := c.connect()
	if err != nil {
		return nil, fmt.Errorf("connecting to mpd: %w", err)
	}
	defer conn.Close()

	status, err := conn.Status()
	if err != nil {
		return nil, fmt.Errorf("reading mpd status: %w", err)
	}
	song, err := conn.CurrentSong()
	if err != nil {
		return nil, fmt.Errorf("reading current song: %w", err)
	}

	st := &player.State{Player: "mpd", Volume: -1}
	switch status["state"] {
	case "play":
		st.Status = player.StatusPlaying
	case "pause":
		st.Status = player.StatusPaused
	default:
		st.Status = player.StatusStopped
	}

	st.Title = song["Title"]
	st.Artist = song["Artist"]
	st.Album = song["Album"]
	st.ID = song["Id"]
	if st.ID == "" {
		st.ID = song["file"]
	}
	if st.ID == "" {
		st.ID = st.Key()
	}

	if elapsed, err := strconv.ParseFloat(status["elapsed"], 64); err == nil {
		st.Position = int(elapsed * 1000)
	}
	if duration, err := strconv.ParseFloat(status["duration"], 64); err == nil {
		st.Duration = int(duration * 1000)
	} else if secs, err := strconv.Atoi(song["Time"]); err == nil {
		st.Duration = secs * 1000
	}
	if vol, err := strconv.Atoi(status["volume"]); err == nil && vol >= 0 {
		st.Volume = float64(vol) / 100
	}
	return st, nil
}

func (c *Client) PlayPause() error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	status, err := conn.Status()
	if err != nil {
		return err
	}
	if status["state"] == "play" {
		return conn.Pause(true)
	}
	return conn.Play(-1)
}

func (c *Client) Next() error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Next()
}

func (c *Client) Previous() error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Previous()
}

func (c *Client) ChangeVolume(delta float64) error {
	conn, err := c.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	status, err := conn.Status()
	if err != nil {
		return err
	}
	vol, err := strconv.Atoi(status["volume"])
	if err != nil || vol < 0 {
		return player.ErrNoPlayer
	}
	vol += int(delta * 100)
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}
	return conn.SetVolume(vol)
}
