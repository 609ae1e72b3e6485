package constants

const DefaultTempoBPM = 120

const DefaultOctave = 4

const DefaultChordBeats = 4

// most pitch classes a tie plan will sustain across one boundary (or globally)
const MaxTies = 2

// nearest-neighbour tie fallback only pairs notes this close
const MaxTieSemitones = 1

// 480 ticks per quarter note, as the exporter always wrote
const TicksPerQuarter = 480

const (
	NoteOnVelocity  = 0x50
	NoteOffVelocity = 0x40
)

const MidiChannel = 0
