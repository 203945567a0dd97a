// Package waybar emits the single-line JSON records the bar host
// consumes.
package waybar

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Style classes understood by the bar stylesheet.
const (
	ClassPlaying    = "playing"
	ClassPaused     = "paused"
	ClassStopped    = "stopped"
	ClassEmpty      = "empty"
	ClassOffline    = "offline"
	ClassError      = "error"
	ClassNoLyrics   = "no-lyrics"
	ClassNoMetadata = "no-metadata"
)

// Record is one line of bar output.
type Record struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

// Write emits the record as a single JSON line. HTML escaping is off so
// lyric text passes through verbatim.
func (r Record) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// Truncate cuts s down to width cells. Overflow selects the strategy:
// "word" breaks on word boundaries, "none" breaks anywhere, anything
// else breaks anywhere and marks the cut with an ellipsis. Width 0
// disables truncation.
func Truncate(s string, width int, overflow string) string {
	if width <= 0 {
		return s
	}
	switch overflow {
	case "word":
		return strings.Split(wordwrap.String(s, width), "\n")[0]
	case "none":
		return strings.Split(wrap.String(s, width), "\n")[0]
	default:
		lines := strings.Split(wrap.String(s, width), "\n")
		if len(lines) == 1 {
			return lines[0]
		}
		first := strings.Split(wrap.String(lines[0], width-3), "\n")[0]
		return first + "..."
	}
}
