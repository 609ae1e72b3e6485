package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/chordbloom/constants"
	"github.com/jsphweid/chordbloom/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// the parser can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// TicksPerQuarter falls back to the export resolution for SMPTE timed files.
func TicksPerQuarter(s *smf.SMF) int {
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok {
		return int(tf)
	}
	return constants.TicksPerQuarter
}

// Tempo is the first tempo change in the file, or the default tempo.
func Tempo(s *smf.SMF) float64 {
	changes := s.TempoChanges()
	if len(changes) > 0 && changes[0].BPM > 0 {
		return changes[0].BPM
	}
	return constants.DefaultTempoBPM
}

func newFile() *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)
	return s
}

func tempoOrDefault(bpm float64) float64 {
	if bpm <= 0 {
		return constants.DefaultTempoBPM
	}
	return bpm
}

// Export writes the progression chord by chord: every note of a chord starts
// together and stops together. Chords last a whole number of beats, at least
// one. An empty progression gives a file with one empty track.
func Export(p model.Progression) (*smf.SMF, error) {
	s := newFile()

	var track smf.Track
	if len(p.Chords) > 0 {
		track.Add(0, smf.MetaTempo(tempoOrDefault(p.TempoBPM)))
	}

	for _, c := range p.Chords {
		if len(c.Notes) == 0 {
			continue
		}
		for _, n := range c.Notes {
			track.Add(0, gomidi.NoteOn(constants.MidiChannel, key(n), constants.NoteOnVelocity))
		}

		beats := math.Max(1, math.Round(c.DurationBeats))
		delta := uint32(beats) * constants.TicksPerQuarter
		for _, n := range c.Notes {
			track.Add(delta, gomidi.NoteOffVelocity(constants.MidiChannel, key(n), constants.NoteOffVelocity))
			delta = 0
		}
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("error adding track: %w", err)
	}
	return s, nil
}

type tickEvent struct {
	tick  uint32
	off   bool
	order int
	msg   gomidi.Message
}

// ExportEvents writes scheduled note events, so tied notes come out as one
// long note.
func ExportEvents(events []model.NoteEvent, tempoBPM float64) (*smf.SMF, error) {
	s := newFile()

	var track smf.Track
	if len(events) > 0 {
		track.Add(0, smf.MetaTempo(tempoOrDefault(tempoBPM)))
	}

	var timeline []tickEvent
	for i, e := range events {
		start := ticks(e.StartBeats)
		end := ticks(e.EndBeats())
		if end <= start {
			end = start + 1
		}
		timeline = append(timeline,
			tickEvent{tick: start, order: i, msg: gomidi.NoteOn(constants.MidiChannel, key(e.Midi), constants.NoteOnVelocity)},
			tickEvent{tick: end, off: true, order: i, msg: gomidi.NoteOffVelocity(constants.MidiChannel, key(e.Midi), constants.NoteOffVelocity)},
		)
	}

	// note offs go first so a pitch struck again on the same tick is not cut
	sort.SliceStable(timeline, func(i, j int) bool {
		a, b := timeline[i], timeline[j]
		if a.tick != b.tick {
			return a.tick < b.tick
		}
		if a.off != b.off {
			return a.off
		}
		return a.order < b.order
	})

	var last uint32
	for _, ev := range timeline {
		track.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("error adding track: %w", err)
	}
	return s, nil
}

var ErrNoFile = errors.New("no midi file")

func Bytes(s *smf.SMF) ([]byte, error) {
	if s == nil {
		return nil, ErrNoFile
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error writing midi file: %w", err)
	}
	return buf.Bytes(), nil
}

func WriteFile(path string, s *smf.SMF) error {
	data, err := Bytes(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ticks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * constants.TicksPerQuarter))
}

func key(n int) uint8 {
	return uint8(n & 0x7f)
}
