package swap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/chordbloom/generator"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
)

var (
	ErrIndexOutOfRange = errors.New("chord index out of range")
	ErrUnknownSwapMode = errors.New("unknown swap mode")
)

type Mode string

const (
	Harmony Mode = "harmony"
	Voicing Mode = "voicing"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Harmony, Voicing:
		return m, nil
	case "":
		return Harmony, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSwapMode, s)
}

var functionGroups = [][]int{
	{1, 3, 6}, // tonic
	{2, 4},    // subdominant
	{5, 7},    // dominant
}

var (
	majorLadder    = []theory.Quality{theory.Maj, theory.Maj7, theory.Maj9, theory.Maj13}
	minorLadder    = []theory.Quality{theory.Min, theory.Min7, theory.Min9, theory.Min11, theory.Min13}
	dominantLadder = []theory.Quality{theory.Dom7, theory.Dom7b9, theory.Dom7Sharp9, theory.Dom13}
)

// SmartSwap picks a replacement for the chord at index. The pool of
// candidates depends on mode and the choice is a pure function of seed, so
// equal arguments always give the same chord. The replacement keeps the
// original duration, octave and function label and is voiced against the
// chord before it.
func SmartSwap(p model.Progression, index int, mode Mode, seed int64) (model.Chord, error) {
	if index < 0 || index >= len(p.Chords) {
		return model.Chord{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(p.Chords))
	}

	var pool []theory.Symbol
	switch mode {
	case Harmony:
		pool = HarmonyCandidates(p, index)
	case Voicing:
		pool = VoicingCandidates(p.Chords[index].Quality, p.Chords[index].Root)
	default:
		return model.Chord{}, fmt.Errorf("%w: %q", ErrUnknownSwapMode, mode)
	}

	current := p.Chords[index]
	picked := pool[Select(seed, len(pool))]

	var previous model.Notes
	if index > 0 {
		previous = p.Chords[index-1].Notes
	}

	return model.Chord{
		Root:          picked.Root,
		Quality:       picked.Quality,
		Octave:        current.Octave,
		Notes:         generator.Voice(picked, current.Octave, previous),
		DurationBeats: current.DurationBeats,
		Function:      current.Function,
	}, nil
}

// Apply returns a copy of p with the chord at index swapped.
func Apply(p model.Progression, index int, mode Mode, seed int64) (model.Progression, error) {
	c, err := SmartSwap(p, index, mode, seed)
	if err != nil {
		return model.Progression{}, err
	}
	res := p.Clone()
	res.Chords[index] = c
	return res, nil
}

// HarmonyCandidates gathers functional substitutes for the chord at index:
// siblings from the same function group, chords borrowed from parallel
// modes, the tritone substitute of a dominant and the secondary dominant
// (plus its tritone substitute) of the following chord.
func HarmonyCandidates(p model.Progression, index int) []theory.Symbol {
	current := p.Chords[index]
	scale := theory.NewScale(p.Key, p.Mode)
	degree := functionDegree(current, scale)

	var pool []theory.Symbol

	for _, group := range functionGroups {
		if !contains(group, degree) {
			continue
		}
		for _, d := range group {
			pool = append(pool, theory.DiatonicChord(scale, d, true))
		}
		break
	}

	if degree > 0 {
		for _, parallel := range theory.ParallelModes(p.Key) {
			if parallel.Mode == p.Mode {
				continue
			}
			pool = append(pool, theory.DiatonicChord(parallel, degree, true))
		}
	}

	if strings.HasPrefix(string(current.Quality), "dom") {
		pool = append(pool, theory.Symbol{Root: theory.TritoneSubstitution(current.Root), Quality: current.Quality})
	}

	if index+1 < len(p.Chords) {
		secondary := theory.SecondaryDominant(p.Chords[index+1].Root)
		pool = append(pool,
			secondary,
			theory.Symbol{Root: theory.TritoneSubstitution(secondary.Root), Quality: theory.Dom7},
		)
	}

	return dedupe(pool, current.Symbol())
}

// VoicingCandidates keeps root and offers the other qualities of the same
// family: minor, dominant or major.
func VoicingCandidates(q theory.Quality, root theory.NoteName) []theory.Symbol {
	ladder := majorLadder
	switch name := string(q); {
	case strings.Contains(name, "min") || q == theory.Dim:
		ladder = minorLadder
	case strings.Contains(name, "dom"):
		ladder = dominantLadder
	}

	var pool []theory.Symbol
	for _, candidate := range ladder {
		if candidate != q {
			pool = append(pool, theory.Symbol{Root: root, Quality: candidate})
		}
	}
	if len(pool) == 0 {
		for _, candidate := range ladder {
			pool = append(pool, theory.Symbol{Root: root, Quality: candidate})
		}
	}
	return pool
}

// Select maps a seed onto [0, n). Negative seeds use their magnitude.
func Select(seed int64, n int) int {
	if n <= 0 {
		return 0
	}
	var magnitude uint64
	if seed < 0 {
		magnitude = uint64(-(seed + 1)) + 1
	} else {
		magnitude = uint64(seed)
	}
	return int(magnitude % uint64(n))
}

// ClockSeed is a seed for callers that want a different pick every time.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}

// functionDegree reads the chord's function label. Chords without one get
// the degree of their root in the key, or 0 when it is not diatonic.
func functionDegree(c model.Chord, scale theory.Scale) int {
	if c.Function == "" {
		return theory.DegreeOf(scale, c.Root)
	}
	degree, err := strconv.Atoi(strings.TrimSpace(c.Function))
	if err != nil || degree < 1 {
		return 0
	}
	return degree
}

func dedupe(pool []theory.Symbol, exclude theory.Symbol) []theory.Symbol {
	seen := map[theory.Symbol]bool{exclude: true}
	var res []theory.Symbol
	for _, s := range pool {
		if seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, s)
	}
	if len(res) == 0 {
		return []theory.Symbol{exclude}
	}
	return res
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
