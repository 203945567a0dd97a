package player

import "errors"

// ErrNoPlayer is returned by control operations when no player is
// available to receive the command.
var ErrNoPlayer = errors.New("no player available")

// Status of playback as reported by a backend.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusStopped Status = "stopped"
)

// State describes the currently reported track.
type State struct {
	// ID of the current track.
	ID string
	// Title of the current track.
	Title string
	// Artist of the current track. Multiple artists are joined.
	Artist string
	// Album of the current track.
	Album string
	// Player is the name of the backend player reporting the state.
	Player string
	// Position of the current track in ms.
	Position int
	// Duration of the current track in ms. Zero when unknown.
	Duration int
	// Status of playback.
	Status Status
	// Volume in the range [0, 1]. Negative when unknown.
	Volume float64
	// ArtURL points at the album art, when the player exposes one.
	ArtURL string
}

// HasTrack reports whether the state carries usable track metadata.
func (s *State) HasTrack() bool {
	return s != nil && (s.Title != "" || s.Artist != "")
}

// Key is a stable cache key for the current track.
func (s *State) Key() string {
	switch {
	case s == nil:
		return ""
	case s.Title != "" && s.Artist != "":
		return s.Artist + " - " + s.Title
	case s.Title != "":
		return s.Title
	default:
		return s.Artist
	}
}

type Player interface {
	State() (*State, error)
}

// Controller is a player that also accepts playback commands.
type Controller interface {
	Player
	PlayPause() error
	Next() error
	Previous() error
	// ChangeVolume shifts the volume by delta in the range [-1, 1].
	ChangeVolume(delta float64) error
}
