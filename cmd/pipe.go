package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"mediabar/cache"
	"mediabar/config"
	"mediabar/lyrics"
	"mediabar/lyrics/lrclib"
	"mediabar/pool"
	"mediabar/waybar"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Continuously print the current lyric line to stdout",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := config.GetPlayer(conf)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider := lrclib.New(conf.Lyrics.URL,
			time.Duration(conf.Lyrics.TimeoutSeconds)*time.Second)
		store := cache.New(filepath.Join(cacheBase, "lyrics"))
		interval := time.Duration(conf.Pipe.IntervalMS) * time.Millisecond

		ch := make(chan pool.Update)
		go pool.Listen(ctx, ctrl, provider, store, interval, ch)

		var printed string
		for update := range ch {
			if update.Err != nil {
				log.Debug("update error", zap.Error(update.Err))
				continue
			}

			line := pipeLine(update)
			if line == printed {
				continue
			}
			printed = line
			fmt.Println(line)
		}
		return nil
	},
}

// pipeLine picks the text for one update: the current synced line, or
// the track name when the document is untimed or missing.
func pipeLine(update pool.Update) string {
	var line string
	switch {
	case update.State == nil || !update.State.HasTrack():
		return ""
	case len(update.Lines) == 0 || !lyrics.Timesynced(update.Lines):
		line = update.State.Title + " - " + update.State.Artist
	case update.Index < 0:
		return ""
	default:
		line = update.Lines[update.Index].Words
	}
	return waybar.Truncate(line, conf.TextLength, conf.Overflow)
}
