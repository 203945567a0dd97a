// Package playerctl shells out to the playerctl daemon client. It is
// the fallback backend for players that are awkward to reach over the
// bus directly.
package playerctl

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"mediabar/player"
)

// Fields are separated with the ASCII unit separator so that titles
// containing the usual punctuation survive.
const fieldSep = "\x1f"

var metadataFormat = strings.Join([]string{
	"{{status}}",
	"{{title}}",
	"{{artist}}",
	"{{album}}",
	"{{playerName}}",
	"{{position}}",
	"{{mpris:length}}",
	"{{volume}}",
	"{{mpris:artUrl}}",
	"{{mpris:trackid}}",
}, fieldSep)

type Client struct {
	player  string
	timeout time.Duration
}

func New(name string, timeout time.Duration) *Client {
	if name == "" {
		name = "playerctld"
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Client{player: name, timeout: timeout}
}

func (c *Client) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "playerctl", append([]string{"--player=" + c.player}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.ToLower(strings.TrimSpace(stderr.String()))
		if strings.Contains(msg, "no player") || strings.Contains(msg, "no players found") {
			return "", player.ErrNoPlayer
		}
		return "", fmt.Errorf("playerctl %s: %w (%s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (c *Client) State() (*player.State, error) {
	out, err := c.run("metadata", "--format", metadataFormat)
	if err != nil {
		if err == player.ErrNoPlayer {
			return nil, nil
		}
		return nil, err
	}
	return parseState(out)
}

// parseState decodes one metadata line in the format above.
func parseState(line string) (*player.State, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != 10 {
		return nil, fmt.Errorf("unexpected playerctl output: %q", line)
	}

	st := &player.State{Volume: -1}
	switch strings.ToLower(fields[0]) {
	case "playing":
		st.Status = player.StatusPlaying
	case "paused":
		st.Status = player.StatusPaused
	default:
		st.Status = player.StatusStopped
	}
	st.Title = strings.TrimSpace(fields[1])
	st.Artist = strings.TrimSpace(fields[2])
	st.Album = strings.TrimSpace(fields[3])
	st.Player = strings.TrimSpace(fields[4])

	// Position and length are reported in microseconds.
	if us, err := strconv.ParseInt(fields[5], 10, 64); err == nil {
		st.Position = int(us / 1000)
	}
	if us, err := strconv.ParseInt(fields[6], 10, 64); err == nil {
		st.Duration = int(us / 1000)
	}
	if vol, err := strconv.ParseFloat(fields[7], 64); err == nil {
		st.Volume = vol
	}
	st.ArtURL = strings.TrimSpace(fields[8])
	st.ID = strings.TrimSpace(fields[9])
	if st.ID == "" {
		st.ID = st.Key()
	}
	return st, nil
}

func (c *Client) PlayPause() error {
	_, err := c.run("play-pause")
	return err
}

func (c *Client) Next() error {
	_, err := c.run("next")
	return err
}

func (c *Client) Previous() error {
	_, err := c.run("previous")
	return err
}

func (c *Client) ChangeVolume(delta float64) error {
	step := strconv.FormatFloat(math.Abs(delta), 'f', 2, 64)
	if delta < 0 {
		_, err := c.run("volume", step+"-")
		return err
	}
	_, err := c.run("volume", step+"+")
	return err
}
