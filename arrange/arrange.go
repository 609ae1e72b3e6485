package arrange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordbloom/constants"
	"github.com/jsphweid/chordbloom/generator"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/jsphweid/chordbloom/util"
)

var (
	ErrIndexOutOfRange = errors.New("chord index out of range")
	ErrEmptyClipboard  = errors.New("nothing copied")
	ErrBadLoopRange    = errors.New("bad loop range")
	ErrUnknownOp       = errors.New("unknown arrange op")
)

// Op names one edit of a progression.
type Op string

const (
	OpMove      Op = "move"
	OpInsert    Op = "insert"
	OpDuplicate Op = "duplicate"
	OpRemove    Op = "remove"
	OpPaste     Op = "paste"
	OpNudge     Op = "nudge"
)

func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case OpMove, OpInsert, OpDuplicate, OpRemove, OpPaste, OpNudge:
		return op, nil
	case "dup":
		return OpDuplicate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

const (
	minOctave = theory.MinMidi/12 - 1
	maxOctave = theory.MaxMidi/12 - 1
)

func checkIndex(p model.Progression, i int) error {
	if i < 0 || i >= len(p.Chords) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(p.Chords))
	}
	return nil
}

// KeepGroups fits groupNext to the boundaries of p: flags past the last
// boundary are dropped and missing ones are off.
func KeepGroups(p model.Progression, groupNext []bool) []bool {
	flags := NoGroups(p)
	copy(flags, groupNext)
	return flags
}

// NewChord builds sym at the default octave and length, voiced against the
// chord at index after, or in root position when after is -1. The function
// label is left empty.
func NewChord(p model.Progression, after int, sym theory.Symbol) (model.Chord, error) {
	var previous model.Notes
	if after != -1 {
		if err := checkIndex(p, after); err != nil {
			return model.Chord{}, err
		}
		previous = p.Chords[after].Notes
	}
	return model.Chord{
		Root:          sym.Root,
		Quality:       sym.Quality,
		Octave:        constants.DefaultOctave,
		Notes:         generator.Voice(sym, constants.DefaultOctave, previous),
		DurationBeats: constants.DefaultChordBeats,
	}, nil
}

// NoGroups is a fresh set of group flags, one per boundary, all off.
func NoGroups(p model.Progression) []bool {
	if len(p.Chords) < 2 {
		return []bool{}
	}
	return make([]bool, len(p.Chords)-1)
}

// Move takes the chord at from and puts it at to. Boundaries change meaning
// after a move, so the group flags come back cleared.
func Move(p model.Progression, from, to int) (model.Progression, []bool, error) {
	if err := checkIndex(p, from); err != nil {
		return model.Progression{}, nil, err
	}
	if err := checkIndex(p, to); err != nil {
		return model.Progression{}, nil, err
	}

	res := p.Clone()
	moved := res.Chords[from]
	chords := append(res.Chords[:from:from], res.Chords[from+1:]...)
	chords = append(chords[:to:to], append([]model.Chord{moved}, chords[to:]...)...)
	res.Chords = chords
	return res, NoGroups(res), nil
}

// InsertAfter places a copy of c right after index. An index of -1 puts it
// first.
func InsertAfter(p model.Progression, index int, c model.Chord) (model.Progression, error) {
	if index != -1 {
		if err := checkIndex(p, index); err != nil {
			return model.Progression{}, err
		}
	}
	res := p.Clone()
	at := index + 1
	chords := make([]model.Chord, 0, len(res.Chords)+1)
	chords = append(chords, res.Chords[:at]...)
	chords = append(chords, c.Clone())
	chords = append(chords, res.Chords[at:]...)
	res.Chords = chords
	return res, nil
}

// Duplicate repeats the chord at index directly after itself.
func Duplicate(p model.Progression, index int) (model.Progression, error) {
	if err := checkIndex(p, index); err != nil {
		return model.Progression{}, err
	}
	return InsertAfter(p, index, p.Chords[index])
}

func Remove(p model.Progression, index int) (model.Progression, error) {
	if err := checkIndex(p, index); err != nil {
		return model.Progression{}, err
	}
	res := p.Clone()
	res.Chords = append(res.Chords[:index:index], res.Chords[index+1:]...)
	return res, nil
}

// Clipboard holds one copied chord.
type Clipboard struct {
	chord *model.Chord
}

func (cb *Clipboard) Copy(p model.Progression, index int) error {
	if err := checkIndex(p, index); err != nil {
		return err
	}
	c := p.Chords[index].Clone()
	cb.chord = &c
	return nil
}

func (cb *Clipboard) Full() bool {
	return cb.chord != nil
}

// Paste overwrites the chord at index with the copied one.
func (cb *Clipboard) Paste(p model.Progression, index int) (model.Progression, error) {
	if cb.chord == nil {
		return model.Progression{}, ErrEmptyClipboard
	}
	if err := checkIndex(p, index); err != nil {
		return model.Progression{}, err
	}
	res := p.Clone()
	res.Chords[index] = cb.chord.Clone()
	return res, nil
}

// NudgeOctave shifts the chord at index by whole octaves. Notes are clamped
// to the playable range and the octave label follows them.
func NudgeOctave(p model.Progression, index, delta int) (model.Progression, error) {
	if err := checkIndex(p, index); err != nil {
		return model.Progression{}, err
	}
	res := p.Clone()
	c := &res.Chords[index]
	c.Notes = theory.ApplyOctaveOffset(c.Notes, delta)
	c.Octave = clampOctave(c.Octave + delta)
	return res, nil
}

func clampOctave(o int) int {
	return util.Max(minOctave, util.Min(o, maxOctave))
}

// Loop cuts chords from..to (inclusive) out of p, along with the group flags
// for the boundaries inside that range.
func Loop(p model.Progression, groupNext []bool, r model.LoopRange) (model.Progression, []bool, error) {
	if r.From < 0 || r.To >= len(p.Chords) || r.From > r.To {
		return model.Progression{}, nil, fmt.Errorf("%w: %d..%d of %d", ErrBadLoopRange, r.From, r.To, len(p.Chords))
	}

	res := p.Clone()
	res.Chords = res.Chords[r.From : r.To+1]

	flags := make([]bool, 0, r.To-r.From)
	for i := r.From; i < r.To; i++ {
		flags = append(flags, i < len(groupNext) && groupNext[i])
	}
	return res, flags, nil
}
