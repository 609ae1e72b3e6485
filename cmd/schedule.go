package cmd

import (
	"encoding/json"

	"github.com/jsphweid/chordbloom/file"
	"github.com/spf13/cobra"
)

var scheduleGroups groupFlags

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleGroups.register(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <file>",
	Short: "Prints the note events of a progression",
	Long:  `Prints the note events, tie plan and total length of a progression as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := file.Read(args[0])
		if err != nil {
			return err
		}
		body, err := scheduleGroups.request(p)
		if err != nil {
			return err
		}
		res, _, err := scheduleProgression(body)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}
