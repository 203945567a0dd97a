package report

import (
	"mediabar/lyrics"
	"mediabar/player"
	"mediabar/waybar"
)

// leadingPlaceholder is shown before the first timed line starts.
const leadingPlaceholder = "..."

// LyricsError is rendered when the status query itself failed.
func LyricsError() waybar.Record {
	return waybar.Record{
		Text:    "No Media",
		Tooltip: "Error checking player status",
		Class:   waybar.ClassError,
	}
}

// Lyrics builds the record for the lyrics reporter. lines is the
// resolved document for the current track; nil means resolution failed
// or found nothing.
func Lyrics(st *player.State, lines []lyrics.Line, opts Options) waybar.Record {
	if st == nil {
		return waybar.Record{
			Text:    "No Media",
			Tooltip: "Player stopped or not running",
			Class:   waybar.ClassOffline,
		}
	}
	if !st.HasTrack() {
		return waybar.Record{
			Text:    "No Media",
			Tooltip: "Nothing is playing",
			Class:   waybar.ClassNoMetadata,
		}
	}
	if st.Status == player.StatusStopped {
		return waybar.Record{
			Text:    "No Media Playing",
			Tooltip: lyricsTooltip(st, "", "", false),
			Class:   waybar.ClassEmpty,
		}
	}

	class := waybar.ClassPlaying
	if st.Status == player.StatusPaused {
		class = waybar.ClassPaused
	}

	if len(lines) == 0 {
		return waybar.Record{
			Text:    waybar.Truncate(trackText(st), opts.MaxLength, opts.Overflow),
			Tooltip: lyricsTooltip(st, "", "", false),
			Class:   waybar.ClassNoLyrics,
		}
	}
	if !lyrics.Timesynced(lines) {
		// Unsynced document: nothing sensible to highlight.
		return waybar.Record{
			Text:    waybar.Truncate(trackText(st), opts.MaxLength, opts.Overflow),
			Tooltip: lyricsTooltip(st, "", "", false),
			Class:   class,
		}
	}

	var current, next string
	text := leadingPlaceholder
	atEnd := false

	i := lyrics.Index(lines, st.Position)
	if i < 0 {
		next = lines[0].Words
	} else {
		current = lines[i].Words
		text = current
		if i+1 < len(lines) {
			next = lines[i+1].Words
		} else {
			atEnd = true
		}
	}

	return waybar.Record{
		Text:    waybar.Truncate(text, opts.MaxLength, opts.Overflow),
		Tooltip: lyricsTooltip(st, current, next, atEnd),
		Class:   class,
	}
}

func lyricsTooltip(st *player.State, current, next string, atEnd bool) string {
	parts := []string{
		"Song: " + orNA(st.Title),
		"Artist: " + orNA(st.Artist),
		"Status: " + capitalize(string(st.Status)),
	}
	if current != "" {
		parts = append(parts, "Now: "+current)
	}
	if next != "" {
		parts = append(parts, "Next: "+next)
	} else if atEnd {
		parts = append(parts, "Next: (End)")
	}
	return joinTooltip(parts)
}
