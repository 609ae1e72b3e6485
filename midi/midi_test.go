package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordbloom/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteMsg struct {
	tick     int64
	on       bool
	key, vel uint8
}

func notesOf(t *testing.T, data []byte) []noteMsg {
	s, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	var res []noteMsg
	var abs int64
	for _, ev := range s.Tracks[0] {
		abs += int64(ev.Delta)
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			res = append(res, noteMsg{tick: abs, on: true, key: key, vel: vel})
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			res = append(res, noteMsg{tick: abs, key: key, vel: vel})
		}
	}
	return res
}

var cToF = model.Progression{
	TempoBPM: 90,
	Chords: []model.Chord{
		{Notes: []int{60, 64, 67}, DurationBeats: 2},
		{Notes: []int{60, 65, 69}, DurationBeats: 0.2},
	},
}

func TestExportHeader(t *testing.T) {
	s, err := Export(cToF)
	require.NoError(t, err)
	data, err := Bytes(s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]byte("MThd"), data[0:4])
	assert.Equal([]byte{0, 0, 0, 6}, data[4:8])
	assert.Equal([]byte{0, 0}, data[8:10])
	assert.Equal([]byte{0, 1}, data[10:12])
	assert.Equal([]byte{0x01, 0xe0}, data[12:14])
	assert.Equal([]byte("MTrk"), data[14:18])
}

func TestExportChordByChord(t *testing.T) {
	s, err := Export(cToF)
	require.NoError(t, err)
	data, err := Bytes(s)
	require.NoError(t, err)

	assert.Equal(t, []noteMsg{
		{0, true, 60, 0x50}, {0, true, 64, 0x50}, {0, true, 67, 0x50},
		{960, false, 60, 0x40}, {960, false, 64, 0x40}, {960, false, 67, 0x40},
		{960, true, 60, 0x50}, {960, true, 65, 0x50}, {960, true, 69, 0x50},
		{1440, false, 60, 0x40}, {1440, false, 65, 0x40}, {1440, false, 69, 0x40},
	}, notesOf(t, data))

	read, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 90, Tempo(read), 0.01)
	assert.Equal(t, 480, TicksPerQuarter(read))
}

func TestExportEmptyProgression(t *testing.T) {
	s, err := Export(model.Progression{})
	require.NoError(t, err)
	data, err := Bytes(s)
	require.NoError(t, err)

	assert.Equal(t, []byte("MTrk"), data[14:18])
	assert.Equal(t, []byte{0, 0, 0, 4, 0x00, 0xff, 0x2f, 0x00}, data[18:])
	assert.Empty(t, notesOf(t, data))

	read, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, float64(120), Tempo(read))
}

func TestExportEventsKeepsTies(t *testing.T) {
	events := []model.NoteEvent{
		{Midi: 60, StartBeats: 0, DurationBeats: 8},
		{Midi: 64, StartBeats: 0, DurationBeats: 4},
		{Midi: 64, StartBeats: 4, DurationBeats: 4},
		{Midi: 69, StartBeats: 4, DurationBeats: 4},
	}
	s, err := ExportEvents(events, 120)
	require.NoError(t, err)
	data, err := Bytes(s)
	require.NoError(t, err)

	assert.Equal(t, []noteMsg{
		{0, true, 60, 0x50}, {0, true, 64, 0x50},
		{1920, false, 64, 0x40},
		{1920, true, 64, 0x50}, {1920, true, 69, 0x50},
		{3840, false, 60, 0x40}, {3840, false, 64, 0x40}, {3840, false, 69, 0x40},
	}, notesOf(t, data))
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progression.mid")
	s, err := Export(cToF)
	require.NoError(t, err)
	require.NoError(t, WriteFile(path, s))

	read, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, read.Tracks, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestReadGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("definitely not midi")))
	assert.Error(t, err)
}

func TestBytesWithoutFile(t *testing.T) {
	_, err := Bytes(nil)
	assert.ErrorIs(t, err, ErrNoFile)
}
