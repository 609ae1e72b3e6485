package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoiceLeadingDistanceIdentity(t *testing.T) {
	for _, notes := range [][]int{{}, {60}, {60, 64, 67}, {60, 64, 67, 71}, {48, 55, 62, 64, 69, 72}} {
		assert.Equal(t, 0, VoiceLeadingDistance(notes, notes))
	}
}

func TestVoiceLeadingDistanceIgnoresOrder(t *testing.T) {
	assert.Equal(t, 0, VoiceLeadingDistance([]int{60, 64, 67}, []int{67, 60, 64}))
	assert.Equal(t, 3, VoiceLeadingDistance([]int{60, 64, 67}, []int{60, 65, 69}))
}

func TestVoiceLeadingDistancePenalty(t *testing.T) {
	assert.Equal(t, PenaltyDistance, VoiceLeadingDistance([]int{60, 64, 67}, []int{60, 64, 67, 71}))
}

func TestVoiceLeadingDistanceDoesNotMutate(t *testing.T) {
	b := []int{71, 67, 64, 60}
	VoiceLeadingDistance([]int{60, 64, 67, 71}, b)
	assert.Equal(t, []int{71, 67, 64, 60}, b)
}

func TestOptimizeVoicingNeverWorse(t *testing.T) {
	previous := []int{60, 64, 67, 71}
	cases := []Symbol{{F, Dom7}, {G, Dom7}, {A, Min7}, {Db, Maj7}, {B, Min7b5}, {E, Dim7}}

	for _, sym := range cases {
		t.Run(sym.String(), func(t *testing.T) {
			root := RootMidi(sym.Root, 4)
			intervals := sym.Quality.Intervals()
			base := ChordNotes(sym, 4)

			optimized := OptimizeVoicing(previous, root, intervals)
			assert.LessOrEqual(t, VoiceLeadingDistance(previous, optimized), VoiceLeadingDistance(previous, base))
			assert.Len(t, optimized, len(intervals))
		})
	}
}

func TestOptimizeVoicingPicksCloseInversion(t *testing.T) {
	// G7 after Cmaj7: second inversion an octave down
	got := OptimizeVoicing([]int{60, 64, 67, 71}, 67, Dom7.Intervals())
	assert.Equal(t, []int{62, 65, 67, 71}, got)
	assert.Equal(t, 3, VoiceLeadingDistance([]int{60, 64, 67, 71}, got))
}

func TestOptimizeVoicingFallsBackToRootPosition(t *testing.T) {
	// sizes differ so every candidate scores the penalty
	got := OptimizeVoicing([]int{60, 64, 67}, 65, Maj7.Intervals())
	assert.Equal(t, []int{65, 69, 72, 76}, got)
}

func TestApplyOctaveOffset(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{72, 76, 79}, ApplyOctaveOffset([]int{60, 64, 67}, 1))
	assert.Equal([]int{36, 40, 43}, ApplyOctaveOffset([]int{48, 52, 55}, -1))
	assert.Equal([]int{36, 36}, ApplyOctaveOffset([]int{40, 45}, -2))
	assert.Equal([]int{96}, ApplyOctaveOffset([]int{90}, 1))
}

func TestSpan(t *testing.T) {
	assert.Equal(t, 0, Span(nil))
	assert.Equal(t, 11, Span([]int{64, 60, 71, 67}))
}
