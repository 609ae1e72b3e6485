package cmd

import (
	"github.com/joho/godotenv"
	"github.com/jsphweid/chordbloom/config"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/spf13/cobra"
)

// Version is set via ldflags during build
var Version = "dev"

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "chordbloom",
	Short: "Chord progression generator",
	Long: `Generates I-V-vi-IV chord progressions in any key and mode, swaps
single chords for smart substitutes, schedules tied notes and writes
the result as MIDI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file found, using environment variables", nil)
		}
		cfg = config.Load()
		logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
