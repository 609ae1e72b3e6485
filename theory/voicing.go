package theory

import (
	"math"
	"sort"
)

// PenaltyDistance is returned by VoiceLeadingDistance for chords of
// different sizes. Treat it as "reject this candidate".
const PenaltyDistance = 1000

const (
	MinMidi = 36 // C2
	MaxMidi = 96 // C7
)

// VoiceLeadingDistance is the smallest total semitone motion needed to move
// the voices of a onto the notes of b, trying every permutation of b.
//
// The search is O(n!) in chord size. Chords here have at most six notes,
// so the worst case is 720 permutations.
func VoiceLeadingDistance(a, b []int) int {
	if len(a) != len(b) {
		return PenaltyDistance
	}
	if len(a) == 0 {
		return 0
	}

	perm := make([]int, len(b))
	copy(perm, b)

	best := math.MaxInt
	var permute func(start int)
	permute = func(start int) {
		if start == len(perm)-1 {
			var dist int
			for i, n := range perm {
				dist += abs(n - a[i])
			}
			if dist < best {
				best = dist
			}
			return
		}
		for i := start; i < len(perm); i++ {
			perm[start], perm[i] = perm[i], perm[start]
			permute(start + 1)
			perm[start], perm[i] = perm[i], perm[start]
		}
	}
	permute(0)

	return best
}

// OptimizeVoicing picks the inversion and octave placement of a chord that
// moves least from previous. Inversion k raises the lowest k notes an
// octave; each inversion is tried an octave down, in place and an octave up.
// The root position voicing wins unless a candidate is strictly closer.
func OptimizeVoicing(previous []int, rootMidi int, intervals []int) []int {
	base := make([]int, len(intervals))
	for i, interval := range intervals {
		base[i] = rootMidi + interval
	}

	bestNotes := base
	bestDistance := VoiceLeadingDistance(previous, base)

	for inv := 0; inv < len(intervals); inv++ {
		inverted := make([]int, len(base))
		copy(inverted, base)
		for i := 0; i < inv; i++ {
			inverted[i] += 12
		}
		sort.Ints(inverted)

		for shift := -1; shift <= 1; shift++ {
			shifted := make([]int, len(inverted))
			for i, n := range inverted {
				shifted[i] = n + shift*12
			}
			if d := VoiceLeadingDistance(previous, shifted); d < bestDistance {
				bestDistance = d
				bestNotes = shifted
			}
		}
	}

	return bestNotes
}

// ApplyOctaveOffset moves every note by whole octaves, clamping each into
// [MinMidi, MaxMidi].
func ApplyOctaveOffset(notes []int, offset int) []int {
	res := make([]int, len(notes))
	for i, n := range notes {
		res[i] = clamp(n+offset*12, MinMidi, MaxMidi)
	}
	return res
}

// Span is the distance in semitones between the lowest and highest note.
func Span(notes []int) int {
	if len(notes) == 0 {
		return 0
	}
	lo, hi := notes[0], notes[0]
	for _, n := range notes[1:] {
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return hi - lo
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
