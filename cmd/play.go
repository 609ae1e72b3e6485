package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/player"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	playGroups groupFlags
	playPort   string
	playLoop   bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	playGroups.register(playCmd)
	playCmd.Flags().StringVar(&playPort, "port", "", "midi out port name (defaults to MIDI_OUT_PORT, then the first port)")
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "repeat until interrupted")
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Plays a progression on a MIDI out port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := file.Read(args[0])
		if err != nil {
			return err
		}
		body, err := playGroups.request(p)
		if err != nil {
			return err
		}
		res, scheduled, err := scheduleProgression(body)
		if err != nil {
			return err
		}

		defer gomidi.CloseDriver()
		port := playPort
		if port == "" {
			port = cfg.MidiOutPort
		}
		send, err := player.OpenPort(port)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		pl := player.New(send)
		logger.Info("Playing", logger.Fields{"events": len(res.Events), "beats": res.TotalBeats, "loop": playLoop})
		if playLoop {
			err = pl.Loop(ctx, res.Events, scheduled.TempoBPM)
		} else {
			err = pl.Play(ctx, res.Events, scheduled.TempoBPM)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
