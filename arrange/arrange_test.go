package arrange

import (
	"testing"

	"github.com/jsphweid/chordbloom/generator"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roots(p model.Progression) []theory.NoteName {
	var res []theory.NoteName
	for _, c := range p.Chords {
		res = append(res, c.Root)
	}
	return res
}

func TestMove(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)
	before := p.Clone()

	cases := []struct {
		from, to int
		want     []theory.NoteName
	}{
		{0, 2, []theory.NoteName{theory.G, theory.A, theory.C, theory.F}},
		{3, 0, []theory.NoteName{theory.F, theory.C, theory.G, theory.A}},
		{1, 1, []theory.NoteName{theory.C, theory.G, theory.A, theory.F}},
	}
	for _, tc := range cases {
		res, flags, err := Move(p, tc.from, tc.to)
		require.NoError(t, err)
		assert.Equal(t, tc.want, roots(res))
		assert.Equal(t, []bool{false, false, false}, flags)
	}
	assert.Equal(t, before, p)

	_, _, err := Move(p, 0, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestInsertAfterAndDuplicate(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)
	extra := model.Chord{Root: theory.D, Quality: theory.Min7, Octave: 4, Notes: []int{62, 65, 69, 72}, DurationBeats: 2}

	res, err := InsertAfter(p, 1, extra)
	require.NoError(t, err)
	assert.Equal(t, []theory.NoteName{theory.C, theory.G, theory.D, theory.A, theory.F}, roots(res))

	res, err = InsertAfter(p, -1, extra)
	require.NoError(t, err)
	assert.Equal(t, theory.D, res.Chords[0].Root)

	res, err = Duplicate(p, 3)
	require.NoError(t, err)
	assert.Len(t, res.Chords, 5)
	assert.Equal(t, res.Chords[3], res.Chords[4])
	res.Chords[4].Notes[0] = 0
	assert.NotEqual(t, 0, res.Chords[3].Notes[0])

	_, err = InsertAfter(p, 4, extra)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemove(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)

	res, err := Remove(p, 1)
	require.NoError(t, err)
	assert.Equal(t, []theory.NoteName{theory.C, theory.A, theory.F}, roots(res))
	assert.Len(t, p.Chords, 4)

	_, err = Remove(model.Progression{}, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCopyPaste(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)
	var cb Clipboard

	_, err := cb.Paste(p, 0)
	assert.ErrorIs(t, err, ErrEmptyClipboard)
	assert.False(t, cb.Full())

	require.NoError(t, cb.Copy(p, 2))
	assert.True(t, cb.Full())
	p.Chords[2].Notes[0] = 1

	res, err := cb.Paste(p, 0)
	require.NoError(t, err)
	assert.Equal(t, theory.A, res.Chords[0].Root)
	assert.Equal(t, []int{60, 64, 67, 69}, res.Chords[0].Notes)
	assert.Equal(t, theory.C, p.Chords[0].Root)
}

func TestNudgeOctave(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)

	up, err := NudgeOctave(p, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{72, 76, 79, 83}, up.Chords[0].Notes)
	assert.Equal(t, 5, up.Chords[0].Octave)
	assert.Equal(t, []int{60, 64, 67, 71}, p.Chords[0].Notes)

	high, err := NudgeOctave(p, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{96, 96, 96, 96}, high.Chords[0].Notes)
	assert.Equal(t, 7, high.Chords[0].Octave)

	low, err := NudgeOctave(p, 0, -4)
	require.NoError(t, err)
	assert.Equal(t, []int{36, 36, 36, 36}, low.Chords[0].Notes)
	assert.Equal(t, 2, low.Chords[0].Octave)
}

func TestLoop(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)
	groupNext := []bool{true, false, true}

	res, flags, err := Loop(p, groupNext, model.LoopRange{From: 1, To: 3})
	require.NoError(t, err)
	assert.Equal(t, []theory.NoteName{theory.G, theory.A, theory.F}, roots(res))
	assert.Equal(t, []bool{false, true}, flags)

	res, flags, err = Loop(p, nil, model.LoopRange{From: 2, To: 2})
	require.NoError(t, err)
	assert.Len(t, res.Chords, 1)
	assert.Empty(t, flags)

	res.Chords[0].Notes[0] = 0
	assert.Equal(t, 60, p.Chords[2].Notes[0])

	for _, r := range []model.LoopRange{{From: -1, To: 2}, {From: 2, To: 1}, {From: 0, To: 4}} {
		_, _, err := Loop(p, groupNext, r)
		assert.ErrorIs(t, err, ErrBadLoopRange)
	}
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]Op{"move": OpMove, " Nudge ": OpNudge, "dup": OpDuplicate, "paste": OpPaste} {
		op, err := ParseOp(in)
		require.NoError(t, err)
		assert.Equal(t, want, op)
	}
	_, err := ParseOp("swap")
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestKeepGroups(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)
	assert.Equal(t, []bool{true, false, false}, KeepGroups(p, []bool{true}))
	assert.Equal(t, []bool{true, true, false}, KeepGroups(p, []bool{true, true, false, true, true}))
	assert.Equal(t, []bool{}, KeepGroups(model.Progression{}, []bool{true}))
}

func TestNewChord(t *testing.T) {
	p := generator.Generate(theory.C, theory.Major)

	first, err := NewChord(p, -1, theory.Symbol{Root: theory.D, Quality: theory.Min7})
	require.NoError(t, err)
	assert.Equal(t, model.Chord{Root: theory.D, Quality: theory.Min7, Octave: 4, Notes: []int{62, 65, 69, 72}, DurationBeats: 4}, first)

	// a triad never beats the root position against a four note chord
	after, err := NewChord(p, 0, theory.Symbol{Root: theory.F, Quality: theory.Maj})
	require.NoError(t, err)
	assert.Equal(t, []int{65, 69, 72}, after.Notes)
	assert.Equal(t, "", after.Function)

	_, err = NewChord(p, 4, theory.Symbol{Root: theory.F, Quality: theory.Maj})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
