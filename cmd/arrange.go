package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/chordbloom/arrange"
	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
	"github.com/spf13/cobra"
)

var (
	arrangeOut string
	nudgeBy    int
)

func init() {
	rootCmd.AddCommand(arrangeCmd)
	arrangeCmd.PersistentFlags().StringVarP(&arrangeOut, "out", "o", "", "write to this file instead of stdout")
	nudgeCmd.Flags().IntVar(&nudgeBy, "by", 1, "octaves to shift, negative for down")

	arrangeCmd.AddCommand(moveCmd, insertCmd, dupCmd, removeCmd, pasteCmd, nudgeCmd)
}

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "Edits the chord order of a progression",
	Long: `Moves, inserts, duplicates, removes, copies and re-octaves chords.
Indices start at 0.`,
}

var moveCmd = &cobra.Command{
	Use:   "move <file> <from> <to>",
	Short: "Moves a chord to another position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpMove, args[1:], func(body *model.ArrangeRequestBody, n []int) {
			body.Index, body.To = n[0], n[1]
		})
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert <file> <position> <root> [quality]",
	Short: "Inserts a new chord before position",
	Long: `Inserts a chord on root (maj unless quality is given) so that it ends up
at position; the end of the progression is position len. It is voiced against
the chord before it.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpInsert, args[1:2], func(body *model.ArrangeRequestBody, n []int) {
			body.Index = n[0] - 1
			body.Root = args[2]
			if len(args) == 4 {
				body.Quality = args[3]
			}
		})
	},
}

var dupCmd = &cobra.Command{
	Use:   "dup <file> <index>",
	Short: "Repeats a chord right after itself",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpDuplicate, args[1:], func(body *model.ArrangeRequestBody, n []int) {
			body.Index = n[0]
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <index>",
	Short: "Removes a chord",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpRemove, args[1:], func(body *model.ArrangeRequestBody, n []int) {
			body.Index = n[0]
		})
	},
}

var pasteCmd = &cobra.Command{
	Use:   "paste <file> <from> <to>",
	Short: "Copies one chord over another",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpPaste, args[1:], func(body *model.ArrangeRequestBody, n []int) {
			body.Index, body.To = n[0], n[1]
		})
	},
}

var nudgeCmd = &cobra.Command{
	Use:   "nudge <file> <index>",
	Short: "Shifts a chord by whole octaves",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArrange(cmd, args[0], arrange.OpNudge, args[1:], func(body *model.ArrangeRequestBody, n []int) {
			body.Index, body.Delta = n[0], nudgeBy
		})
	},
}

// runArrange reads path, parses the index arguments and applies op.
func runArrange(cmd *cobra.Command, path string, op arrange.Op, indexArgs []string, fill func(*model.ArrangeRequestBody, []int)) error {
	p, err := file.Read(path)
	if err != nil {
		return err
	}
	indices := make([]int, len(indexArgs))
	for i, a := range indexArgs {
		if indices[i], err = strconv.Atoi(a); err != nil {
			return fmt.Errorf("bad index %q", a)
		}
	}

	body := model.ArrangeRequestBody{Progression: p, Op: string(op)}
	fill(&body, indices)
	res, err := arrangeProgression(body)
	if err != nil {
		return err
	}
	logger.Info("Arranged progression", logger.Fields{"op": op, "chords": len(res.Progression.Chords)})
	return output(cmd.OutOrStdout(), arrangeOut, res.Progression)
}
