package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.Flags().StringVar(&swapMode, "mode", "harmony", "harmony or voicing")
	swapCmd.Flags().Int64Var(&swapSeed, "seed", 0, "seed for the pick (defaults to the clock)")
	swapCmd.Flags().StringVarP(&swapOut, "out", "o", "", "write to this file instead of stdout")
}

var (
	swapMode string
	swapSeed int64
	swapOut  string
)

var swapCmd = &cobra.Command{
	Use:   "swap <file> <index>",
	Short: "Swaps one chord for a substitute",
	Long: `Replaces the chord at index with a functional substitute (harmony) or
a richer or plainer chord on the same root (voicing).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := file.Read(args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad index %q", args[1])
		}

		body := model.SwapRequestBody{Progression: p, Index: index, Mode: swapMode}
		if cmd.Flags().Changed("seed") {
			body.Seed = &swapSeed
		}
		res, err := swapChord(body)
		if err != nil {
			return err
		}
		logger.Info("Swapped chord", logger.Fields{
			"index": index,
			"from":  p.Chords[index].DisplayName(),
			"to":    res.Chord.DisplayName(),
			"seed":  res.Seed,
		})
		return output(cmd.OutOrStdout(), swapOut, res.Progression)
	},
}
