package report

import (
	"testing"

	"mediabar/lyrics"
	"mediabar/player"
	"mediabar/waybar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playingState() *player.State {
	return &player.State{
		ID:       "track-1",
		Title:    "Karma Police",
		Artist:   "Radiohead",
		Album:    "OK Computer",
		Player:   "spotify",
		Position: 75000,
		Duration: 264000,
		Status:   player.StatusPlaying,
		Volume:   0.65,
		ArtURL:   "https://example.com/cover.jpg",
	}
}

func TestErrorRecords(t *testing.T) {
	assert.Equal(t, waybar.ClassError, PlayerError().Class)
	assert.Equal(t, waybar.ClassError, LyricsError().Class)
}

func TestPlayerOffline(t *testing.T) {
	rec := Player(nil, false, Options{})
	assert.Equal(t, waybar.ClassOffline, rec.Class)
	assert.Contains(t, rec.Text, "No Player")
}

func TestPlayerPlaying(t *testing.T) {
	rec := Player(playingState(), true, Options{})

	assert.Equal(t, waybar.ClassPlaying, rec.Class)
	assert.Contains(t, rec.Text, "Karma Police - Radiohead")
	assert.Contains(t, rec.Tooltip, "Player: spotify")
	assert.Contains(t, rec.Tooltip, "Status: Playing")
	assert.Contains(t, rec.Tooltip, "Album: OK Computer")
	assert.Contains(t, rec.Tooltip, "Progress: 01:15 / 04:24")
	assert.Contains(t, rec.Tooltip, "Volume: 65%")
	assert.Contains(t, rec.Tooltip, "Cover Art: Available")
}

func TestPlayerStoppedWithoutMetadata(t *testing.T) {
	st := &player.State{Player: "mpd", Status: player.StatusStopped, Volume: -1}
	rec := Player(st, false, Options{})
	assert.Equal(t, waybar.ClassEmpty, rec.Class)
	assert.Contains(t, rec.Text, "No Media")
	assert.Contains(t, rec.Tooltip, "Cover Art: N/A")
}

func TestPlayerTruncation(t *testing.T) {
	st := playingState()
	st.Title = "An Exceptionally Long Song Title That Keeps Going"
	rec := Player(st, false, Options{MaxLength: 20, Overflow: "ellipsis"})
	assert.Contains(t, rec.Text, "...")
}

func TestPlayerIdempotent(t *testing.T) {
	a := Player(playingState(), true, Options{MaxLength: 40, Overflow: "ellipsis"})
	b := Player(playingState(), true, Options{MaxLength: 40, Overflow: "ellipsis"})
	assert.Equal(t, a, b)
}

func TestLyricsOffline(t *testing.T) {
	rec := Lyrics(nil, nil, Options{})
	assert.Equal(t, waybar.ClassOffline, rec.Class)
}

func TestLyricsNoMetadata(t *testing.T) {
	st := &player.State{Player: "spotify", Status: player.StatusPlaying}
	rec := Lyrics(st, nil, Options{})
	assert.Equal(t, waybar.ClassNoMetadata, rec.Class)
}

func TestLyricsStopped(t *testing.T) {
	st := playingState()
	st.Status = player.StatusStopped
	rec := Lyrics(st, nil, Options{})
	assert.Equal(t, waybar.ClassEmpty, rec.Class)
}

func TestLyricsResolutionFailed(t *testing.T) {
	rec := Lyrics(playingState(), nil, Options{})
	assert.Equal(t, waybar.ClassNoLyrics, rec.Class)
	assert.Equal(t, "Karma Police - Radiohead", rec.Text)
}

func TestLyricsCurrentLine(t *testing.T) {
	lines := []lyrics.Line{
		{Time: 10000, Words: "first line"},
		{Time: 70000, Words: "second line"},
		{Time: 120000, Words: "third line"},
	}
	rec := Lyrics(playingState(), lines, Options{})

	assert.Equal(t, waybar.ClassPlaying, rec.Class)
	assert.Equal(t, "second line", rec.Text)
	assert.Contains(t, rec.Tooltip, "Now: second line")
	assert.Contains(t, rec.Tooltip, "Next: third line")
}

func TestLyricsLeadingState(t *testing.T) {
	st := playingState()
	st.Position = 500
	lines := []lyrics.Line{{Time: 10000, Words: "first line"}}
	rec := Lyrics(st, lines, Options{})

	assert.Equal(t, "...", rec.Text)
	assert.Contains(t, rec.Tooltip, "Next: first line")
	assert.NotContains(t, rec.Tooltip, "Now:")
}

func TestLyricsDocumentEnd(t *testing.T) {
	st := playingState()
	st.Position = 200000
	lines := []lyrics.Line{{Time: 10000, Words: "only line"}}
	rec := Lyrics(st, lines, Options{})

	assert.Equal(t, "only line", rec.Text)
	assert.Contains(t, rec.Tooltip, "Next: (End)")
}

func TestLyricsUnsyncedDocument(t *testing.T) {
	st := playingState()
	st.Status = player.StatusPaused
	lines := []lyrics.Line{{Words: "plain one"}, {Words: "plain two"}}
	rec := Lyrics(st, lines, Options{})

	assert.Equal(t, waybar.ClassPaused, rec.Class)
	assert.Equal(t, "Karma Police - Radiohead", rec.Text)
}

func TestLyricsIdempotent(t *testing.T) {
	lines := []lyrics.Line{{Time: 10000, Words: "first line"}}
	a := Lyrics(playingState(), lines, Options{})
	b := Lyrics(playingState(), lines, Options{})
	assert.Equal(t, a, b)
}

func TestClock(t *testing.T) {
	tests := []struct {
		ms   int
		want string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{1000, "00:01"},
		{75000, "01:15"},
		{3599000, "59:59"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Clock(tt.ms))
	}
}
