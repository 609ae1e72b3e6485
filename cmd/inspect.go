package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/chordbloom/chord"
	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/jsphweid/chordbloom/util"
	"github.com/spf13/cobra"
)

var inspectGroups groupFlags

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectGroups.register(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspects a progression",
	Long:  `Prints chord names, notes and the tie plan of a progression.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := file.Read(args[0])
		if err != nil {
			return err
		}
		body, err := inspectGroups.request(p)
		if err != nil {
			return err
		}
		res, scheduled, err := scheduleProgression(body)
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), scheduled, res)
		return nil
	},
}

func inspect(w io.Writer, p model.Progression, res model.ScheduleResponse) {
	fmt.Fprintf(w, "%v, %v BPM, %v beats\n", theory.KeyLabel(p.Key, p.Mode), p.TempoBPM, res.TotalBeats)
	for i, c := range p.Chords {
		function := c.Function
		if function == "" {
			function = "-"
		}
		fmt.Fprintf(w, "%2d  %-8v %-6v %-18v %v beats  (%v)\n",
			i, c.DisplayName(), function, chord.CreateChordKey(c.Notes), c.DurationBeats, pitchNames(c.Notes))
	}

	if len(res.TiePlan.SustainGlobal) > 0 {
		fmt.Fprintf(w, "held throughout: %v\n", pitchNames(res.TiePlan.SustainGlobal))
	}
	for _, boundary := range util.GetKeys(res.TiePlan.SustainNext) {
		fmt.Fprintf(w, "tied %d -> %d: %v\n", boundary, boundary+1, pitchNames(res.TiePlan.SustainNext[boundary]))
	}
	fmt.Fprintf(w, "%d note events\n", len(res.Events))
}

func pitchNames(notes []int) string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = string(theory.Notes[theory.PitchClass(n)])
	}
	return strings.Join(names, " ")
}
