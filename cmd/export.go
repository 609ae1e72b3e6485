package cmd

import (
	"fmt"

	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
	"github.com/spf13/cobra"
)

var (
	exportGroups groupFlags
	exportOut    string
	exportTied   bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportGroups.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "midi file to write (defaults to a new file in OUT_DIR)")
	exportCmd.Flags().BoolVar(&exportTied, "tied", false, "write tied notes as held notes")
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Writes a progression as a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := file.Read(args[0])
		if err != nil {
			return err
		}
		body, err := exportGroups.request(p)
		if err != nil {
			return err
		}
		data, err := exportMidi(model.ExportRequestBody{ScheduleRequestBody: body, Tied: exportTied})
		if err != nil {
			return err
		}

		path := outPath(exportOut, ".mid")
		if err := file.WriteBytes(path, data); err != nil {
			return err
		}
		logger.Info("Exported midi", logger.Fields{"path": path, "bytes": len(data), "tied": exportTied})
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
