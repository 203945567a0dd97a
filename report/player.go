package report

import (
	"fmt"

	"mediabar/player"
	"mediabar/waybar"
)

// PlayerError is rendered when the status query itself failed, as
// opposed to no player being present.
func PlayerError() waybar.Record {
	return waybar.Record{
		Text:    iconStopped + "No Media",
		Tooltip: "Player unresponsive",
		Class:   waybar.ClassError,
	}
}

// Player builds the status record for the player reporter. A nil state
// means no player was reachable.
func Player(st *player.State, artCached bool, opts Options) waybar.Record {
	if st == nil {
		return waybar.Record{
			Text:    iconStopped + "No Player",
			Tooltip: "No player is running",
			Class:   waybar.ClassOffline,
		}
	}

	icon := statusIcon(st.Status)
	class := waybar.ClassStopped
	switch st.Status {
	case player.StatusPlaying:
		class = waybar.ClassPlaying
	case player.StatusPaused:
		class = waybar.ClassPaused
	}

	if st.Status == player.StatusStopped && !st.HasTrack() && st.Album == "" {
		return waybar.Record{
			Text:    icon + "No Media",
			Tooltip: playerTooltip(st, artCached),
			Class:   waybar.ClassEmpty,
		}
	}

	var text string
	switch {
	case st.HasTrack():
		text = trackText(st)
	case st.Player != "" && st.Status != player.StatusStopped:
		text = st.Player
	default:
		text = "No Title"
	}

	return waybar.Record{
		Text:    icon + waybar.Truncate(text, opts.MaxLength, opts.Overflow),
		Tooltip: playerTooltip(st, artCached),
		Class:   class,
	}
}

func playerTooltip(st *player.State, artCached bool) string {
	parts := []string{
		"Player: " + orNA(st.Player),
		"Status: " + capitalize(string(st.Status)),
	}
	if st.Title != "" {
		parts = append(parts, "Song: "+st.Title)
	}
	if st.Artist != "" {
		parts = append(parts, "Artist: "+st.Artist)
	}
	if st.Album != "" {
		parts = append(parts, "Album: "+st.Album)
	}
	if st.Status != player.StatusStopped {
		if st.Duration > 0 {
			parts = append(parts, fmt.Sprintf("Progress: %s / %s", Clock(st.Position), Clock(st.Duration)))
		}
		if st.Volume >= 0 {
			parts = append(parts, fmt.Sprintf("Volume: %.0f%%", st.Volume*100))
		}
	} else if st.HasTrack() && st.Duration > 0 {
		parts = append(parts, "Length: "+Clock(st.Duration))
	}

	switch {
	case artCached:
		parts = append(parts, "Cover Art: Available")
	case st.ArtURL != "":
		parts = append(parts, "Cover Art: URL provided (processing)")
	default:
		parts = append(parts, "Cover Art: N/A")
	}
	return joinTooltip(parts)
}
