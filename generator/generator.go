package generator

import (
	"strconv"

	"github.com/jsphweid/chordbloom/constants"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
)

// Degrees is the I-V-vi-IV skeleton every generated progression follows.
var Degrees = []int{1, 5, 6, 4}

// Generate builds a four chord progression in key/mode. Chords are seventh
// chords at octave 4; each chord after the first is voiced as close as
// possible to the one before it.
func Generate(key theory.NoteName, mode theory.Mode) model.Progression {
	scale := theory.NewScale(key, mode)

	chords := make([]model.Chord, 0, len(Degrees))
	for i, degree := range Degrees {
		sym := theory.DiatonicChord(scale, degree, true)

		var previous model.Notes
		if i > 0 {
			previous = chords[i-1].Notes
		}
		chords = append(chords, model.Chord{
			Root:          sym.Root,
			Quality:       sym.Quality,
			Octave:        constants.DefaultOctave,
			Notes:         Voice(sym, constants.DefaultOctave, previous),
			DurationBeats: constants.DefaultChordBeats,
			Function:      strconv.Itoa(degree),
		})
	}

	return model.Progression{
		Chords:   chords,
		TempoBPM: constants.DefaultTempoBPM,
		Key:      key,
		Mode:     mode,
	}
}

// Voice places sym at octave, led from previous when there is one and in
// root position otherwise.
func Voice(sym theory.Symbol, octave int, previous model.Notes) model.Notes {
	if len(previous) == 0 {
		return theory.ChordNotes(sym, octave)
	}
	intervals := sym.Quality.Intervals()
	if intervals == nil {
		intervals = theory.Maj.Intervals()
	}
	return theory.OptimizeVoicing(previous, theory.RootMidi(sym.Root, octave), intervals)
}
