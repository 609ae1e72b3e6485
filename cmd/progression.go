package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/chordbloom/file"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/util"
	"github.com/spf13/cobra"
)

// output writes p to path, or to w as YAML when path is empty.
func output(w io.Writer, path string, p model.Progression) error {
	if path == "" {
		data, err := file.Encode(p, ".yml")
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	if err := file.Write(path, p); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %v\n", path)
	return nil
}

// groupFlags are the tie and loop options shared by schedule, export and play.
type groupFlags struct {
	groupNext string
	groupAll  bool
	from, to  int
}

func (g *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.groupNext, "group-next", "", "boundaries to tie into the next chord, e.g. 0,2")
	cmd.Flags().BoolVar(&g.groupAll, "group-all", false, "hold common tones through the whole progression")
	cmd.Flags().IntVar(&g.from, "from", -1, "first chord of the loop range")
	cmd.Flags().IntVar(&g.to, "to", -1, "last chord of the loop range")
}

func (g *groupFlags) request(p model.Progression) (model.ScheduleRequestBody, error) {
	indices, err := util.ParseIndexList(g.groupNext)
	if err != nil {
		return model.ScheduleRequestBody{}, fmt.Errorf("--group-next: %w", err)
	}
	body := model.ScheduleRequestBody{
		Progression: p,
		GroupNext:   util.FlagsAt(indices, len(p.Chords)-1),
		GroupAll:    g.groupAll,
	}
	if g.from >= 0 || g.to >= 0 {
		from := util.Max(g.from, 0)
		to := g.to
		if to < 0 {
			to = len(p.Chords) - 1
		}
		body.Loop = &model.LoopRange{From: from, To: to}
	}
	return body, nil
}

func outPath(path, ext string) string {
	if path != "" {
		return path
	}
	return filepath.Join(cfg.OutDir, file.NewName(ext))
}
