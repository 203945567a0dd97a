// Package report maps player state onto the records the bar renders.
package report

import (
	"fmt"
	"strings"
	"unicode"

	"mediabar/player"
)

// Icons are Font Awesome glyphs, matching the bar's icon font.
const (
	iconPlaying = "\uf04c   "
	iconPaused  = "\uf04b   "
	iconStopped = "\uf04d   "
)

// Options control text rendering.
type Options struct {
	// MaxLength of the text field in cells. Zero disables truncation.
	MaxLength int
	// Overflow strategy: "word", "none" or "ellipsis".
	Overflow string
}

// Clock formats a millisecond offset as mm:ss.
func Clock(ms int) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func trackText(st *player.State) string {
	switch {
	case st.Title != "" && st.Artist != "":
		return st.Title + " - " + st.Artist
	case st.Title != "":
		return st.Title
	default:
		return st.Artist
	}
}

func statusIcon(status player.Status) string {
	switch status {
	case player.StatusPlaying:
		return iconPlaying
	case player.StatusPaused:
		return iconPaused
	default:
		return iconStopped
	}
}

func joinTooltip(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
