package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"gitlab.com/gomidi/midi/v2/smf"
)

// CreateChordKey is a canonical string for a set of notes, e.g. "60-64-67".
func CreateChordKey(notes []int) string {
	sorted := append([]int{}, notes...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = fmt.Sprintf("%v", n)
	}
	return strings.Join(parts, "-")
}

// Identify names the chord formed by notes. The bass note is tried as the
// root first, then the other notes from low to high; the first quality whose
// pitch classes match exactly wins.
func Identify(notes []int) (theory.Symbol, bool) {
	if len(notes) == 0 {
		return theory.Symbol{}, false
	}
	sorted := append([]int{}, notes...)
	sort.Ints(sorted)

	pcs := make(map[int]bool)
	for _, n := range sorted {
		pcs[theory.PitchClass(n)] = true
	}

	tried := make(map[int]bool)
	for _, n := range sorted {
		root := theory.PitchClass(n)
		if tried[root] {
			continue
		}
		tried[root] = true
		for _, q := range theory.Qualities {
			if matches(q, root, pcs) {
				return theory.Symbol{Root: theory.Notes[root], Quality: q}, true
			}
		}
	}
	return theory.Symbol{}, false
}

func matches(q theory.Quality, root int, pcs map[int]bool) bool {
	want := make(map[int]bool)
	for _, i := range q.Intervals() {
		want[(root+i)%12] = true
	}
	if len(want) != len(pcs) {
		return false
	}
	for pc := range want {
		if !pcs[pc] {
			return false
		}
	}
	return true
}

type reducedEvent struct {
	ticks     int64
	isNoteOff bool
	note      int
}

// Block is a set of notes held together, from one change in the held notes
// to the next.
type Block struct {
	StartTicks    int64
	DurationTicks int64
	Notes         []int
}

// GetBlocks walks every track of s and records which notes are held after
// each tick that has note events. Silent stretches are dropped.
func GetBlocks(s *smf.SMF) []Block {
	var events []reducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				events = append(events, reducedEvent{ticks: absTicks, note: int(key)})
			case event.Message.GetNoteEnd(&channel, &key):
				events = append(events, reducedEvent{ticks: absTicks, isNoteOff: true, note: int(key)})
			}
		}
	}

	// smaller offsets first, then note offs
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ticks != events[j].ticks {
			return events[i].ticks < events[j].ticks
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var blocks []Block
	pressed := make(map[int]int)
	for i := 0; i < len(events); {
		at := events[i].ticks
		for ; i < len(events) && events[i].ticks == at; i++ {
			evt := events[i]
			if evt.isNoteOff {
				if pressed[evt.note] > 1 {
					pressed[evt.note]--
				} else {
					delete(pressed, evt.note)
				}
			} else {
				pressed[evt.note]++
			}
		}

		if n := len(blocks); n > 0 && blocks[n-1].DurationTicks == 0 {
			blocks[n-1].DurationTicks = at - blocks[n-1].StartTicks
		}
		if len(pressed) > 0 {
			blocks = append(blocks, Block{StartTicks: at, Notes: heldNotes(pressed)})
		}
	}
	return blocks
}

func heldNotes(pressed map[int]int) []int {
	notes := make([]int, 0, len(pressed))
	for n := range pressed {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	return notes
}

// ToProgression turns blocks into chords in key/mode. Blocks that do not
// spell a known chord keep their notes and are labelled as a major chord on
// the bass. Function labels are left empty.
func ToProgression(blocks []Block, ticksPerQuarter int, tempoBPM float64, key theory.NoteName, mode theory.Mode) model.Progression {
	p := model.Progression{TempoBPM: tempoBPM, Key: key, Mode: mode}
	for _, b := range blocks {
		if b.DurationTicks <= 0 {
			continue
		}
		sym, ok := Identify(b.Notes)
		if !ok {
			sym = theory.Symbol{Root: theory.Notes[theory.PitchClass(b.Notes[0])], Quality: theory.Maj}
		}
		p.Chords = append(p.Chords, model.Chord{
			Root:          sym.Root,
			Quality:       sym.Quality,
			Octave:        b.Notes[0]/12 - 1,
			Notes:         append(model.Notes{}, b.Notes...),
			DurationBeats: float64(b.DurationTicks) / float64(ticksPerQuarter),
		})
	}
	return p
}
