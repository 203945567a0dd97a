package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mediabar/art"
	"mediabar/config"
	"mediabar/player"
	"mediabar/report"
	"mediabar/waybar"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var playerCmd = &cobra.Command{
	Use:   "player [action]",
	Short: "Print the player status as a waybar record",
	Long: "Without arguments, prints one waybar JSON line describing the\n" +
		"current player state. With an action argument (play-pause, next,\n" +
		"previous, volume-up, volume-down), relays the action instead.",
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
			return emit(report.PlayerError())
		}

		artCached := false
		if conf.Art.Enabled {
			artCached = updateArt(st)
		}

		return emit(report.Player(st, artCached, renderOpts()))
	},
}

// relay forwards a bar click or scroll to the player. Nothing is
// printed; the bar refreshes the status on its own schedule.
func relay(ctrl player.Controller, action string) error {
	var err error
	switch action {
	case "play-pause":
		err = ctrl.PlayPause()
	case "next":
		err = ctrl.Next()
	case "previous":
		err = ctrl.Previous()
	case "volume-up":
		err = ctrl.ChangeVolume(conf.VolumeStep)
	case "volume-down":
		err = ctrl.ChangeVolume(-conf.VolumeStep)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if errors.Is(err, player.ErrNoPlayer) {
		log.Debug("action dropped, no player", zap.String("action", action))
		return nil
	}
	if err != nil {
		log.Warn("action failed", zap.String("action", action), zap.Error(err))
	}
	return nil
}

// updateArt refreshes the cover cache and reports whether a cover for
// the current track is on disk.
func updateArt(st *player.State) bool {
	covers := art.New(
		filepath.Join(cacheBase, "covers"),
		time.Duration(conf.Art.TimeoutSeconds)*time.Second,
	)

	if st == nil || !st.HasTrack() {
		if err := covers.Clear(); err != nil {
			log.Debug("clearing cover link", zap.Error(err))
		}
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(conf.Art.TimeoutSeconds)*time.Second)
	defer cancel()

	if _, err := covers.Update(ctx, st.Title, st.Artist, st.ArtURL); err != nil {
		log.Debug("cover update failed",
			zap.String("url", st.ArtURL), zap.Error(err))
	}
	return covers.Available()
}

func renderOpts() report.Options {
	return report.Options{
		MaxLength: conf.TextLength,
		Overflow:  conf.Overflow,
	}
}

func emit(rec waybar.Record) error {
	return rec.Write(os.Stdout)
}
