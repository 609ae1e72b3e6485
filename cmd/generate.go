package cmd

import (
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateKey, "key", defaultKey, "tonic, e.g. C, F#, Bb")
	generateCmd.Flags().StringVar(&generateMode, "mode", defaultMode, "major, minor, dorian, phrygian, lydian, mixolydian, aeolian or locrian")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write to this .yml or .json file instead of stdout")
}

var (
	generateKey  string
	generateMode string
	generateOut  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a progression",
	Long:  `Generates a I-V-vi-IV progression of seventh chords, voice led from chord to chord.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := generateProgression(model.GenerateRequestBody{Key: generateKey, Mode: generateMode})
		if err != nil {
			return err
		}
		logger.Debug("Generated progression", logger.Fields{"key": p.Key, "mode": p.Mode})
		return output(cmd.OutOrStdout(), generateOut, p)
	},
}
