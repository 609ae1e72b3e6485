package file

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jsphweid/chordbloom/generator"
	"github.com/jsphweid/chordbloom/model"
	"github.com/jsphweid/chordbloom/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handWritten = `
key: D
mode: dorian
tempo_bpm: 96
chords:
  - root: D
    quality: min7
    octave: 3
    notes: [50, 53, 57, 60]
    duration_beats: 2
  - root: G
    quality: dom7
    octave: 3
    notes: [50, 53, 55, 59]
    duration_beats: 2
    function: "4"
`

func TestParseYAML(t *testing.T) {
	p, err := Parse([]byte(handWritten))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(theory.D, p.Key)
	assert.Equal(theory.Dorian, p.Mode)
	assert.Equal(float64(96), p.TempoBPM)
	require.Len(t, p.Chords, 2)
	assert.Equal(model.Chord{Root: theory.G, Quality: theory.Dom7, Octave: 3, Notes: []int{50, 53, 55, 59}, DurationBeats: 2, Function: "4"}, p.Chords[1])
	assert.Equal("", p.Chords[0].Function)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"key":"A","mode":"minor","tempo_bpm":120,"chords":[{"root":"A","quality":"min","octave":4,"notes":[69,72,76],"duration_beats":4}]}`)
	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []int{69, 72, 76}, p.Chords[0].Notes)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("key: H\nmode: major\ntempo_bpm: 120\n"))
	assert.ErrorIs(t, err, model.ErrInvalidProgression)

	_, err = Parse([]byte("key: C\nmode: major\ntempo_bpm: 0\n"))
	assert.ErrorIs(t, err, model.ErrInvalidProgression)

	_, err = Parse([]byte("chords: [[["))
	assert.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	p := generator.Generate(theory.Bb, theory.Mixolydian)
	dir := t.TempDir()

	for _, name := range []string{"p.yml", "p.json", "nested/dir/p.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Write(path, p))
			read, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, p, read)
		})
	}

	data, err := os.ReadFile(filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration_beats": 4`)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewName(t *testing.T) {
	name := NewName(".mid")
	assert.Regexp(t, regexp.MustCompile(`^progression-[0-9a-f-]{36}\.mid$`), name)
	assert.NotEqual(t, name, NewName(".mid"))
}
