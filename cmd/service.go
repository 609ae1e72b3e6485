package cmd

import (
	"github.com/jsphweid/chordbloom/arrange"
	"github.com/jsphweid/chordbloom/generator"
	"github.com/jsphweid/chordbloom/grouping"
	"github.com/jsphweid/chordbloom/midi"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/swap"
	"github.com/jsphweid/chordbloom/theory"
)

const (
	defaultKey  = "C"
	defaultMode = "minor"
)

func parseKeyMode(key, mode string) (theory.NoteName, theory.Mode, error) {
	if key == "" {
		key = defaultKey
	}
	if mode == "" {
		mode = defaultMode
	}
	k, err := theory.ParseNoteName(key)
	if err != nil {
		return "", "", err
	}
	m, err := theory.ParseMode(mode)
	if err != nil {
		return "", "", err
	}
	return k, m, nil
}

func generateProgression(body model.GenerateRequestBody) (model.Progression, error) {
	key, mode, err := parseKeyMode(body.Key, body.Mode)
	if err != nil {
		return model.Progression{}, err
	}
	return generator.Generate(key, mode), nil
}

func swapChord(body model.SwapRequestBody) (model.SwapResponse, error) {
	if err := body.Progression.Validate(); err != nil {
		return model.SwapResponse{}, err
	}
	mode, err := swap.ParseMode(body.Mode)
	if err != nil {
		return model.SwapResponse{}, err
	}
	seed := swap.ClockSeed()
	if body.Seed != nil {
		seed = *body.Seed
	}

	p, err := swap.Apply(body.Progression, body.Index, mode, seed)
	if err != nil {
		return model.SwapResponse{}, err
	}
	return model.SwapResponse{Chord: p.Chords[body.Index], Progression: p, Seed: seed}, nil
}

func arrangeProgression(body model.ArrangeRequestBody) (model.ArrangeResponse, error) {
	p := body.Progression
	if err := p.Validate(); err != nil {
		return model.ArrangeResponse{}, err
	}
	op, err := arrange.ParseOp(body.Op)
	if err != nil {
		return model.ArrangeResponse{}, err
	}

	var res model.Progression
	var flags []bool
	switch op {
	case arrange.OpMove:
		res, flags, err = arrange.Move(p, body.Index, body.To)
	case arrange.OpInsert:
		var c model.Chord
		c, err = insertedChord(p, body)
		if err == nil {
			res, err = arrange.InsertAfter(p, body.Index, c)
		}
	case arrange.OpDuplicate:
		res, err = arrange.Duplicate(p, body.Index)
	case arrange.OpRemove:
		res, err = arrange.Remove(p, body.Index)
	case arrange.OpPaste:
		var cb arrange.Clipboard
		if err = cb.Copy(p, body.Index); err == nil {
			res, err = cb.Paste(p, body.To)
		}
	case arrange.OpNudge:
		res, err = arrange.NudgeOctave(p, body.Index, body.Delta)
	}
	if err != nil {
		return model.ArrangeResponse{}, err
	}
	if flags == nil {
		flags = arrange.KeepGroups(res, body.GroupNext)
	}
	return model.ArrangeResponse{Progression: res, GroupNext: flags}, nil
}

func insertedChord(p model.Progression, body model.ArrangeRequestBody) (model.Chord, error) {
	root, err := theory.ParseNoteName(body.Root)
	if err != nil {
		return model.Chord{}, err
	}
	quality := theory.Maj
	if body.Quality != "" {
		if quality, err = theory.ParseQuality(body.Quality); err != nil {
			return model.Chord{}, err
		}
	}
	return arrange.NewChord(p, body.Index, theory.Symbol{Root: root, Quality: quality})
}

// loopSlice cuts the progression down to the loop range when there is one.
func loopSlice(body model.ScheduleRequestBody) (model.Progression, []bool, error) {
	if err := body.Progression.Validate(); err != nil {
		return model.Progression{}, nil, err
	}
	if body.Loop == nil {
		return body.Progression, body.GroupNext, nil
	}
	return arrange.Loop(body.Progression, body.GroupNext, *body.Loop)
}

func scheduleProgression(body model.ScheduleRequestBody) (model.ScheduleResponse, model.Progression, error) {
	p, groupNext, err := loopSlice(body)
	if err != nil {
		return model.ScheduleResponse{}, model.Progression{}, err
	}

	plan := grouping.ComputeTiePlan(p, groupNext, body.GroupAll)
	events := grouping.Expand(p, plan, body.GroupAll)
	if events == nil {
		events = []model.NoteEvent{}
	}
	return model.ScheduleResponse{
		Events:     events,
		TiePlan:    plan.Response(),
		TotalBeats: grouping.TotalBeats(p),
	}, p, nil
}

func exportMidi(body model.ExportRequestBody) ([]byte, error) {
	if body.Tied {
		res, p, err := scheduleProgression(body.ScheduleRequestBody)
		if err != nil {
			return nil, err
		}
		f, err := midi.ExportEvents(res.Events, p.TempoBPM)
		if err != nil {
			return nil, err
		}
		return midi.Bytes(f)
	}

	p, _, err := loopSlice(body.ScheduleRequestBody)
	if err != nil {
		return nil, err
	}
	f, err := midi.Export(p)
	if err != nil {
		return nil, err
	}
	return midi.Bytes(f)
}
