package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"mediabar/cache"
	"mediabar/config"
	"mediabar/lyrics"
	"mediabar/lyrics/lrclib"
	"mediabar/player"
	"mediabar/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics [action]",
	Short: "Print the current lyric line as a waybar record",
	Long: "Without arguments, prints one waybar JSON line with the lyric\n" +
		"line matching the playback position. With an action argument,\n" +
		"relays the action instead.",
	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := config.GetPlayer(conf)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			return relay(ctrl, args[0])
		}

		st, err := ctrl.State()
		if err != nil {
			log.Warn("player state unavailable", zap.Error(err))
			return emit(report.LyricsError())
		}

		var lines []lyrics.Line
		if st != nil && st.HasTrack() {
			lines = resolveLyrics(st)
		}

		return emit(report.Lyrics(st, lines, renderOpts()))
	},
}

// resolveLyrics returns the lyric document for the current track:
// disk cache first, then lrclib. A miss is remembered for an hour so
// repeated bar refreshes don't hammer the provider.
func resolveLyrics(st *player.State) []lyrics.Line {
	store := cache.New(filepath.Join(cacheBase, "lyrics"))
	key := st.Key()

	cached, err := store.Get(key)
	if err != nil {
		log.Debug("lyrics cache read failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		return cached
	}

	if info := store.LoadInfo(); info != nil && info.Fresh(st.ID) && !info.Found {
		log.Debug("lyrics known missing", zap.String("track", st.ID))
		return nil
	}

	client := lrclib.New(conf.Lyrics.URL,
		time.Duration(conf.Lyrics.TimeoutSeconds)*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(conf.Lyrics.TimeoutSeconds)*time.Second)
	defer cancel()

	lines, err := client.Lyrics(ctx, lyrics.Query{
		Title:    st.Title,
		Artist:   st.Artist,
		Album:    st.Album,
		Duration: st.Duration / 1000,
	})
	if err != nil {
		if errors.Is(err, lrclib.ErrNotFound) {
			saveInfo(store, st.ID, false)
		} else {
			// Transient failures don't poison the negative cache.
			log.Warn("lyrics fetch failed", zap.String("track", st.ID), zap.Error(err))
		}
		return nil
	}

	if err := store.Set(key, lines); err != nil {
		log.Debug("lyrics cache write failed", zap.String("key", key), zap.Error(err))
	}
	saveInfo(store, st.ID, true)
	return lines
}

func saveInfo(store *cache.Cache, trackID string, found bool) {
	err := store.SaveInfo(cache.Info{
		TrackID:   trackID,
		Found:     found,
		FetchedAt: time.Now(),
	})
	if err != nil {
		log.Debug("lyrics info write failed", zap.Error(err))
	}
}
