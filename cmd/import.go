package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/chordbloom/chord"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/midi"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/jsphweid/chordbloom/util"
	"github.com/spf13/cobra"
)

var (
	importKey  string
	importMode string
	importOut  string
	importMax  int
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importKey, "key", defaultKey, "key the chords are read in")
	importCmd.Flags().StringVar(&importMode, "mode", "major", "mode the chords are read in")
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "file to write, or directory when importing a directory")
	importCmd.Flags().IntVar(&importMax, "max", 0, "import at most this many files from a directory")
}

var importCmd = &cobra.Command{
	Use:   "import <file.mid|dir>",
	Short: "Reads progressions from MIDI files",
	Long: `Reads every change in the held notes of a MIDI file as a chord and names
it. Chords that cannot be named keep their notes. Given a directory, every
.mid file below it is imported into OUT_DIR (or --out).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, mode, err := parseKeyMode(importKey, importMode)
		if err != nil {
			return err
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if info.IsDir() {
			return importDir(cmd, args[0], key, mode)
		}

		p, err := importFile(args[0], key, mode)
		if err != nil {
			return err
		}
		return output(cmd.OutOrStdout(), importOut, p)
	},
}

func importFile(path string, key theory.NoteName, mode theory.Mode) (model.Progression, error) {
	f, err := midi.ReadFile(path)
	if err != nil {
		return model.Progression{}, err
	}
	p := chord.ToProgression(chord.GetBlocks(f), midi.TicksPerQuarter(f), midi.Tempo(f), key, mode)
	if len(p.Chords) == 0 {
		return model.Progression{}, fmt.Errorf("no chords found in %v", path)
	}
	logger.Info("Imported midi", logger.Fields{"path": path, "chords": len(p.Chords), "tempo": p.TempoBPM})
	return p, nil
}

func importDir(cmd *cobra.Command, dir string, key theory.NoteName, mode theory.Mode) error {
	paths, err := util.GatherAllMidiPaths(dir, importMax)
	if err != nil {
		return err
	}
	outDir := importOut
	if outDir == "" {
		outDir = cfg.OutDir
	}

	var imported int
	for _, path := range paths {
		p, err := importFile(path, key, mode)
		if err != nil {
			logger.Warn("Skipping file", logger.Fields{"path": path, "error": err.Error()})
			continue
		}
		name := filepath.Base(path)
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".yml"
		if err := output(cmd.OutOrStdout(), filepath.Join(outDir, name), p); err != nil {
			return err
		}
		imported++
	}
	logger.Info("Imported directory", logger.Fields{"dir": dir, "files": len(paths), "imported": imported})
	return nil
}
