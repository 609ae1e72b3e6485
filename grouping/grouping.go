package grouping

import (
	"sort"

	"github.com/jsphweid/chordbloom/constants"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
)

// TiePlan lists the pitch classes that sustain instead of being struck
// again. SustainNext is keyed by boundary index: boundary i sits between
// chord i and chord i+1.
type TiePlan struct {
	SustainGlobal []int
	SustainNext   map[int][]int
}

func (tp TiePlan) TiedAt(boundary, pc int) bool {
	return containsInt(tp.SustainNext[boundary], pc)
}

func (tp TiePlan) Response() model.TiePlanResponse {
	res := model.TiePlanResponse{
		SustainGlobal: append([]int{}, tp.SustainGlobal...),
		SustainNext:   make(map[int][]int, len(tp.SustainNext)),
	}
	for k, v := range tp.SustainNext {
		res.SustainNext[k] = append([]int{}, v...)
	}
	return res
}

// ComputeTiePlan works out which pitch classes sustain. groupNext[i] ties
// chord i into chord i+1; missing entries count as false. groupAll looks
// for pitch classes to hold through the whole progression.
func ComputeTiePlan(p model.Progression, groupNext []bool, groupAll bool) TiePlan {
	plan := TiePlan{SustainNext: make(map[int][]int)}

	if groupAll && len(p.Chords) > 0 {
		plan.SustainGlobal = globalTies(p.Chords)
	}

	for i := 0; i+1 < len(p.Chords); i++ {
		if i >= len(groupNext) || !groupNext[i] {
			continue
		}
		if ties := boundaryTies(p.Chords[i], p.Chords[i+1]); len(ties) > 0 {
			plan.SustainNext[i] = ties
		}
	}

	return plan
}

// ComputeNoteEvents expands a progression into note events, never striking
// a tied pitch class twice. Start and duration are in beats from the top of
// the progression.
func ComputeNoteEvents(p model.Progression, groupNext []bool, groupAll bool) []model.NoteEvent {
	plan := ComputeTiePlan(p, groupNext, groupAll)
	return Expand(p, plan, groupAll)
}

// Expand turns a tie plan into events. Notes held globally start with the
// first chord and last the whole progression. A note tied forward keeps
// sounding through every following chord for as long as the tie chain holds,
// and the chords it runs into skip that pitch class.
func Expand(p model.Progression, plan TiePlan, groupAll bool) []model.NoteEvent {
	var events []model.NoteEvent
	if len(p.Chords) == 0 {
		return events
	}

	consumed := make(map[int]bool)
	if groupAll && len(plan.SustainGlobal) > 0 {
		total := p.TotalBeats()
		for _, n := range p.Chords[0].Notes {
			pc := theory.PitchClass(n)
			if containsInt(plan.SustainGlobal, pc) {
				events = append(events, model.NoteEvent{Midi: n, StartBeats: 0, DurationBeats: total})
				consumed[pc] = true
			}
		}
	}

	var cursor float64
	for i, c := range p.Chords {
		for _, n := range c.Notes {
			pc := theory.PitchClass(n)
			if consumed[pc] {
				continue
			}
			if i > 0 && plan.TiedAt(i-1, pc) {
				continue
			}
			events = append(events, model.NoteEvent{
				Midi:          n,
				StartBeats:    cursor,
				DurationBeats: tiedDuration(p.Chords, plan, i, pc),
			})
		}
		cursor += c.DurationBeats
	}

	return events
}

// tiedDuration is the length of chord i plus every chord the pitch class
// is carried into.
func tiedDuration(chords []model.Chord, plan TiePlan, i, pc int) float64 {
	dur := chords[i].DurationBeats
	for j := i; j+1 < len(chords) && plan.TiedAt(j, pc); j++ {
		dur += chords[j+1].DurationBeats
		if !containsInt(pitchClasses(chords[j+1]), pc) {
			break
		}
	}
	return dur
}

func TotalBeats(p model.Progression) float64 {
	return p.TotalBeats()
}

// globalTies intersects the pitch classes of every chord. With nothing in
// common it falls back to the most frequent pitch classes.
func globalTies(chords []model.Chord) []int {
	common := pitchClasses(chords[0])
	for _, c := range chords[1:] {
		pcs := pitchClasses(c)
		var next []int
		for _, pc := range common {
			if containsInt(pcs, pc) {
				next = append(next, pc)
			}
		}
		common = next
	}
	if len(common) > 0 {
		return capTies(common)
	}
	return capTies(mostFrequent(chords))
}

func mostFrequent(chords []model.Chord) []int {
	counts := make(map[int]int)
	var order []int
	for _, c := range chords {
		for _, n := range c.Notes {
			pc := theory.PitchClass(n)
			if _, ok := counts[pc]; !ok {
				order = append(order, pc)
			}
			counts[pc]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}

// boundaryTies intersects two neighbouring chords. With no common tone it
// pairs each note of a with its nearest note in b, keeping pairs at most a
// semitone apart, and ties the pitch classes from a.
func boundaryTies(a, b model.Chord) []int {
	pcsB := pitchClasses(b)
	var common []int
	for _, pc := range pitchClasses(a) {
		if containsInt(pcsB, pc) {
			common = append(common, pc)
		}
	}
	if len(common) > 0 {
		return capTies(common)
	}

	var near []int
	for _, n := range a.Notes {
		if len(b.Notes) == 0 {
			break
		}
		closest := b.Notes[0]
		for _, m := range b.Notes[1:] {
			if absInt(m-n) < absInt(closest-n) {
				closest = m
			}
		}
		pc := theory.PitchClass(n)
		if absInt(closest-n) <= constants.MaxTieSemitones && !containsInt(near, pc) {
			near = append(near, pc)
		}
	}
	return capTies(near)
}

func capTies(pcs []int) []int {
	if len(pcs) > constants.MaxTies {
		pcs = pcs[:constants.MaxTies]
	}
	return pcs
}

// pitchClasses keeps the first occurrence order of the chord's notes.
func pitchClasses(c model.Chord) []int {
	var res []int
	for _, n := range c.Notes {
		pc := theory.PitchClass(n)
		if !containsInt(res, pc) {
			res = append(res, pc)
		}
	}
	return res
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
