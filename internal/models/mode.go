package models

import "strings"

type Mode string

const (
	ModeEasy    Mode = "Easy"
	ModeRegular Mode = "Regular"
	ModeHard    Mode = "Hard"
)

var modeSynonyms = map[string]Mode{
	"easy": ModeEasy,
	"slow": ModeEasy,
	"e":    ModeEasy,
	"s":    ModeEasy,

	"regular": ModeRegular,
	"normal":  ModeRegular,
	"medium":  ModeRegular,
	"r":       ModeRegular,
	"n":       ModeRegular,
	"m":       ModeRegular,

	"hard": ModeHard,
	"fast": ModeHard,
	"h":    ModeHard,
	"f":    ModeHard,
}

// NormalizeMode maps user input such as "  slow" or "F" to a canonical mode.
// ok is false for empty or unknown input.
func NormalizeMode(raw string) (mode Mode, ok bool) {
	mode, ok = modeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return mode, ok
}

func (m Mode) String() string {
	return string(m)
}
