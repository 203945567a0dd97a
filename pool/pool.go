// Package pool drives the continuous modes: it polls the player,
// resolves the lyric document per track and emits display updates.
package pool

import (
	"context"
	"time"

	"mediabar/cache"
	"mediabar/lyrics"
	"mediabar/player"
)

// Update is sent whenever the displayed state changes. At most one
// lyric document is active at a time, matching the reported track.
type Update struct {
	State *player.State
	Lines []lyrics.Line
	// Index of the current line, -1 before the first line or when
	// there is no document.
	Index int
	Err   error
}

// Listen polls pl until ctx is cancelled and sends updates on ch. The
// lyric document is resolved once per track: cache first, then the
// provider, with a best-effort write-back. ch is closed on return.
func Listen(ctx context.Context, pl player.Player, provider lyrics.Provider, store *cache.Cache, interval time.Duration, ch chan<- Update) {
	defer close(ch)
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		trackKey string
		lines    []lyrics.Line
		last     Update
		sent     bool
	)

	for {
		st, err := pl.State()
		switch {
		case err != nil:
			select {
			case ch <- Update{Err: err, Index: -1}:
			case <-ctx.Done():
				return
			}
		default:
			if !st.HasTrack() {
				trackKey, lines = "", nil
			} else if st.Key() != trackKey {
				trackKey = st.Key()
				lines = resolve(ctx, st, provider, store)
			}

			upd := Update{State: st, Lines: lines, Index: -1}
			if st != nil && len(lines) > 0 {
				upd.Index = lyrics.Index(lines, st.Position)
			}
			if !sent || changed(last, upd) {
				select {
				case ch <- upd:
				case <-ctx.Done():
					return
				}
				last, sent = upd, true
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func resolve(ctx context.Context, st *player.State, provider lyrics.Provider, store *cache.Cache) []lyrics.Line {
	key := st.Key()
	if store != nil {
		if cached, err := store.Get(key); err == nil && cached != nil {
			return cached
		}
	}
	if provider == nil {
		return nil
	}
	q := lyrics.Query{
		Title:    st.Title,
		Artist:   st.Artist,
		Album:    st.Album,
		Duration: st.Duration / 1000,
	}
	lines, err := provider.Lyrics(ctx, q)
	if err != nil {
		return nil
	}
	if store != nil {
		_ = store.Set(key, lines)
	}
	return lines
}

func changed(a, b Update) bool {
	if (a.State == nil) != (b.State == nil) {
		return true
	}
	if a.State == nil {
		return (a.Err != nil) != (b.Err != nil)
	}
	return a.State.ID != b.State.ID ||
		a.State.Status != b.State.Status ||
		a.Index != b.Index ||
		len(a.Lines) != len(b.Lines)
}
