package model

import (
	"errors"
	"fmt"

	"github.com/jsphweid/chordbloom/theory"
	"github.com/jsphweid/chordbloom/util"
)

var ErrInvalidProgression = errors.New("invalid progression")

// highest MIDI note number
const maxNote = 127

type Notes = []int

type Chord struct {
	Root          theory.NoteName `json:"root" yaml:"root"`
	Quality       theory.Quality  `json:"quality" yaml:"quality"`
	Octave        int             `json:"octave" yaml:"octave"`
	Notes         Notes           `json:"notes" yaml:"notes,flow"`
	DurationBeats float64         `json:"duration_beats" yaml:"duration_beats"`

	// NOTE: scale degree as a decimal string, e.g. "5"; empty when unknown
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
}

func (c Chord) Symbol() theory.Symbol {
	return theory.Symbol{Root: c.Root, Quality: c.Quality}
}

func (c Chord) DisplayName() string {
	return theory.DisplayName(c.Root, c.Quality)
}

func (c Chord) Clone() Chord {
	res := c
	if c.Notes != nil {
		res.Notes = make(Notes, len(c.Notes))
		copy(res.Notes, c.Notes)
	}
	return res
}

type Progression struct {
	Chords   []Chord         `json:"chords" yaml:"chords"`
	TempoBPM float64         `json:"tempo_bpm" yaml:"tempo_bpm"`
	Key      theory.NoteName `json:"key" yaml:"key"`
	Mode     theory.Mode     `json:"mode" yaml:"mode"`
}

// Clone deep copies the progression so edits never alias the original.
func (p Progression) Clone() Progression {
	res := p
	if p.Chords != nil {
		res.Chords = make([]Chord, len(p.Chords))
		for i, c := range p.Chords {
			res.Chords[i] = c.Clone()
		}
	}
	return res
}

func (p Progression) TotalBeats() float64 {
	durations := make([]float64, len(p.Chords))
	for i, c := range p.Chords {
		durations[i] = c.DurationBeats
	}
	return util.Sum(durations)
}

// Validate checks the invariants callers outside the generator can break.
func (p Progression) Validate() error {
	if p.TempoBPM <= 0 {
		return fmt.Errorf("%w: tempo must be positive, got %v", ErrInvalidProgression, p.TempoBPM)
	}
	if _, err := theory.ParseNoteName(string(p.Key)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProgression, err)
	}
	if _, err := theory.ParseMode(string(p.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProgression, err)
	}
	for i, c := range p.Chords {
		if _, err := theory.ParseNoteName(string(c.Root)); err != nil {
			return fmt.Errorf("%w: chord %d: %v", ErrInvalidProgression, i, err)
		}
		for _, n := range c.Notes {
			if n < 0 || n > maxNote {
				return fmt.Errorf("%w: chord %d: note %d outside 0-%d", ErrInvalidProgression, i, n, maxNote)
			}
		}
		if _, err := theory.ParseQuality(string(c.Quality)); err != nil {
			return fmt.Errorf("%w: chord %d: %v", ErrInvalidProgression, i, err)
		}
		if c.DurationBeats <= 0 {
			return fmt.Errorf("%w: chord %d: duration must be positive", ErrInvalidProgression, i)
		}
	}
	return nil
}

type NoteEvent struct {
	Midi          int     `json:"midi"`
	StartBeats    float64 `json:"start_beats"`
	DurationBeats float64 `json:"duration_beats"`
}

func (e NoteEvent) EndBeats() float64 {
	return e.StartBeats + e.DurationBeats
}
