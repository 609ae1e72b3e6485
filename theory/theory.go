package theory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownNote    = errors.New("unknown note name")
	ErrUnknownMode    = errors.New("unknown mode")
	ErrUnknownQuality = errors.New("unknown chord quality")
)

type NoteName string

const (
	C  NoteName = "C"
	Db NoteName = "Db"
	D  NoteName = "D"
	Eb NoteName = "Eb"
	E  NoteName = "E"
	F  NoteName = "F"
	Gb NoteName = "Gb"
	G  NoteName = "G"
	Ab NoteName = "Ab"
	A  NoteName = "A"
	Bb NoteName = "Bb"
	B  NoteName = "B"
)

// Notes is indexed by semitone value.
var Notes = [12]NoteName{C, Db, D, Eb, E, F, Gb, G, Ab, A, Bb, B}

var noteValues = map[NoteName]int{
	C: 0, Db: 1, D: 2, Eb: 3, E: 4, F: 5,
	Gb: 6, G: 7, Ab: 8, A: 9, Bb: 10, B: 11,
}

// sharp spellings are accepted on input but never produced
var sharpSpellings = map[string]NoteName{
	"C#": Db, "D#": Eb, "F#": Gb, "G#": Ab, "A#": Bb,
}

type Mode string

const (
	Major      Mode = "major"
	Minor      Mode = "minor"
	Dorian     Mode = "dorian"
	Phrygian   Mode = "phrygian"
	Lydian     Mode = "lydian"
	Mixolydian Mode = "mixolydian"
	Aeolian    Mode = "aeolian"
	Locrian    Mode = "locrian"
)

var Modes = []Mode{Major, Minor, Dorian, Phrygian, Lydian, Mixolydian, Aeolian, Locrian}

var ModeIntervals = map[Mode][7]int{
	Major:      {0, 2, 4, 5, 7, 9, 11},
	Minor:      {0, 2, 3, 5, 7, 8, 10},
	Dorian:     {0, 2, 3, 5, 7, 9, 10},
	Phrygian:   {0, 1, 3, 5, 7, 8, 10},
	Lydian:     {0, 2, 4, 6, 7, 9, 11},
	Mixolydian: {0, 2, 4, 5, 7, 9, 10},
	Aeolian:    {0, 2, 3, 5, 7, 8, 10},
	Locrian:    {0, 1, 3, 5, 6, 8, 10},
}

type Quality string

const (
	Maj        Quality = "maj"
	Min        Quality = "min"
	Dim        Quality = "dim"
	Aug        Quality = "aug"
	Maj7       Quality = "maj7"
	Min7       Quality = "min7"
	Dom7       Quality = "dom7"
	Min7b5     Quality = "min7b5"
	Dim7       Quality = "dim7"
	Maj9       Quality = "maj9"
	Min9       Quality = "min9"
	Dom7b9     Quality = "dom7b9"
	Dom7Sharp9 Quality = "dom7#9"
	Maj11      Quality = "maj11"
	Min11      Quality = "min11"
	Dom11      Quality = "dom11"
	Maj13      Quality = "maj13"
	Min13      Quality = "min13"
	Dom13      Quality = "dom13"
)

type QualityDefinition struct {
	Intervals []int
	Suffix    string
}

var Qualities = []Quality{
	Maj, Min, Dim, Aug,
	Maj7, Min7, Dom7, Min7b5, Dim7,
	Maj9, Min9, Dom7b9, Dom7Sharp9,
	Maj11, Min11, Dom11,
	Maj13, Min13, Dom13,
}

var ChordQualities = map[Quality]QualityDefinition{
	Maj:        {Intervals: []int{0, 4, 7}, Suffix: ""},
	Min:        {Intervals: []int{0, 3, 7}, Suffix: "m"},
	Dim:        {Intervals: []int{0, 3, 6}, Suffix: "dim"},
	Aug:        {Intervals: []int{0, 4, 8}, Suffix: "aug"},
	Maj7:       {Intervals: []int{0, 4, 7, 11}, Suffix: "maj7"},
	Min7:       {Intervals: []int{0, 3, 7, 10}, Suffix: "m7"},
	Dom7:       {Intervals: []int{0, 4, 7, 10}, Suffix: "7"},
	Min7b5:     {Intervals: []int{0, 3, 6, 10}, Suffix: "m7b5"},
	Dim7:       {Intervals: []int{0, 3, 6, 9}, Suffix: "dim7"},
	Maj9:       {Intervals: []int{0, 4, 7, 11, 14}, Suffix: "maj9"},
	Min9:       {Intervals: []int{0, 3, 7, 10, 14}, Suffix: "m9"},
	Dom7b9:     {Intervals: []int{0, 4, 7, 10, 13}, Suffix: "7b9"},
	Dom7Sharp9: {Intervals: []int{0, 4, 7, 10, 15}, Suffix: "7#9"},
	Maj11:      {Intervals: []int{0, 4, 7, 11, 14, 17}, Suffix: "maj11"},
	Min11:      {Intervals: []int{0, 3, 7, 10, 14, 17}, Suffix: "m11"},
	Dom11:      {Intervals: []int{0, 4, 7, 10, 14, 17}, Suffix: "11"},
	Maj13:      {Intervals: []int{0, 4, 7, 11, 14, 21}, Suffix: "maj13"},
	Min13:      {Intervals: []int{0, 3, 7, 10, 14, 21}, Suffix: "m13"},
	Dom13:      {Intervals: []int{0, 4, 7, 10, 14, 21}, Suffix: "13"},
}

// Intervals returns a copy of the quality's offsets from the root, or nil
// for an unknown quality.
func (q Quality) Intervals() []int {
	def, ok := ChordQualities[q]
	if !ok {
		return nil
	}
	res := make([]int, len(def.Intervals))
	copy(res, def.Intervals)
	return res
}

// Symbol is a chord without a voicing.
type Symbol struct {
	Root    NoteName `json:"root" yaml:"root"`
	Quality Quality  `json:"quality" yaml:"quality"`
}

type Scale struct {
	Root      NoteName
	Mode      Mode
	Intervals [7]int
}

func NewScale(root NoteName, mode Mode) Scale {
	return Scale{Root: root, Mode: mode, Intervals: ModeIntervals[mode]}
}

func ParseNoteName(s string) (NoteName, error) {
	s = strings.TrimSpace(s)
	if len(s) > 0 {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	if _, ok := noteValues[NoteName(s)]; ok {
		return NoteName(s), nil
	}
	if n, ok := sharpSpellings[s]; ok {
		return n, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNote, s)
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ModeIntervals[m]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func ParseQuality(s string) (Quality, error) {
	q := Quality(strings.TrimSpace(s))
	if _, ok := ChordQualities[q]; ok {
		return q, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

func NoteValue(n NoteName) int {
	return noteValues[n]
}

func mod12(v int) int {
	return ((v % 12) + 12) % 12
}

func mod7(v int) int {
	return ((v % 7) + 7) % 7
}

// PitchClass maps a MIDI note number to 0-11.
func PitchClass(midi int) int {
	return mod12(midi)
}

// RootMidi places a note in an octave, C4 = 60.
func RootMidi(n NoteName, octave int) int {
	return (octave+1)*12 + NoteValue(n)
}

// ScaleDegree returns the note at a 1-based degree; degrees wrap every 7.
func ScaleDegree(s Scale, degree int) NoteName {
	interval := s.Intervals[mod7(degree-1)]
	return Notes[mod12(NoteValue(s.Root)+interval)]
}

// DegreeOf finds the 1-based degree of a note in the scale, or 0 when the
// note is not diatonic to it.
func DegreeOf(s Scale, n NoteName) int {
	for d := 1; d <= 7; d++ {
		if ScaleDegree(s, d) == n {
			return d
		}
	}
	return 0
}

// DiatonicChord stacks thirds on a scale degree and classifies the triad.
// With extensions the result is the matching seventh chord. The fifth
// degree of major and minor is always dominant.
func DiatonicChord(s Scale, degree int, extensions bool) Symbol {
	root := ScaleDegree(s, degree)

	first := s.Intervals[mod7(degree-1)]
	third := mod12(s.Intervals[mod7(degree+1)] - first)
	fifth := mod12(s.Intervals[mod7(degree+3)] - first)

	var q Quality
	switch {
	case third == 4 && fifth == 7:
		q = pick(extensions, Maj7, Maj)
	case third == 3 && fifth == 7:
		q = pick(extensions, Min7, Min)
	case third == 3 && fifth == 6:
		q = pick(extensions, Min7b5, Dim)
	case third == 4 && fifth == 8:
		q = Aug
	default:
		q = pick(extensions, Dom7, Maj)
	}

	if degree == 5 && (s.Mode == Major || s.Mode == Minor) {
		q = pick(extensions, Dom7, Maj)
	}

	return Symbol{Root: root, Quality: q}
}

func pick(cond bool, a, b Quality) Quality {
	if cond {
		return a
	}
	return b
}

// ParallelModes lists every scale sharing root, used for modal interchange.
// Aeolian is left out since it duplicates minor.
func ParallelModes(root NoteName) []Scale {
	modes := []Mode{Major, Minor, Dorian, Phrygian, Lydian, Mixolydian, Locrian}
	res := make([]Scale, 0, len(modes))
	for _, m := range modes {
		res = append(res, NewScale(root, m))
	}
	return res
}

func TransposeNote(n NoteName, semitones int) NoteName {
	return Notes[mod12(NoteValue(n)+semitones)]
}

func TritoneSubstitution(root NoteName) NoteName {
	return TransposeNote(root, 6)
}

// SecondaryDominant is the V7 of target, a perfect fifth above it.
func SecondaryDominant(target NoteName) Symbol {
	return Symbol{Root: TransposeNote(target, 7), Quality: Dom7}
}

// ChordNotes returns the root position voicing of a chord.
func ChordNotes(sym Symbol, octave int) []int {
	root := RootMidi(sym.Root, octave)
	intervals := sym.Quality.Intervals()
	if intervals == nil {
		intervals = Maj.Intervals()
	}
	notes := make([]int, len(intervals))
	for i, interval := range intervals {
		notes[i] = root + interval
	}
	return notes
}
