package cmd

import (
	"fmt"
	"os"

	"mediabar/config"
	"mediabar/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// FlagVerbose mirrors debug output to stderr.
	FlagVerbose bool
	// FlagPlayer overrides the configured backend.
	FlagPlayer string

	conf      *config.Config
	log       *zap.Logger
	cacheBase string
)

var rootCmd = &cobra.Command{
	Use:   "mediabar",
	Short: "Media status reporters for waybar",
	Long: "mediabar reports player status and synced lyrics as waybar\n" +
		"JSON records, and relays click and scroll playback actions.",

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if FlagPlayer != "" {
			conf.Player = FlagPlayer
		}

		logDir, err := conf.LogBase()
		if err != nil {
			logDir = ""
		}
		log, err = logger.New(logDir, FlagVerbose)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}

		cacheBase, err = conf.CacheBase()
		if err != nil {
			return fmt.Errorf("resolving cache directory: %w", err)
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&FlagVerbose, "verbose", "v", false,
		"mirror debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&FlagPlayer, "player", "",
		"player backend (mpris, mpd, playerctl)")

	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(lyricsCmd)
	rootCmd.AddCommand(pipeCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
