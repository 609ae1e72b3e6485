package theory

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName renders a chord the way a lead sheet would: "C", "Am7", "G7".
func DisplayName(root NoteName, q Quality) string {
	def, ok := ChordQualities[q]
	if !ok {
		return string(root) + string(q)
	}
	return string(root) + def.Suffix
}

func (s Symbol) String() string {
	return DisplayName(s.Root, s.Quality)
}

// Title renders a mode for labels, e.g. "Mixolydian".
func (m Mode) Title() string {
	return cases.Title(language.English).String(string(m))
}

// KeyLabel renders a key and mode as "C Minor".
func KeyLabel(root NoteName, m Mode) string {
	return string(root) + " " + m.Title()
}
