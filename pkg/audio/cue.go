// Package audio plays the short synthesized cues that accompany narration.
package audio

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Cue identifies a sound.
type Cue int

const (
	CueIntro      Cue = iota // Title screen jingle
	CueLevel                 // New level announced
	CuePick                  // Letter picked, pitched by letter
	CueCorrect               // Letter accepted
	CueWrong                 // Letter rejected
	CueComplete              // Word finished
	CueIncomplete            // Next level refused
	CueWord                  // Target word spelled as notes
	CueFanfare               // Campaign finished
	cueCount
)

var cueNames = [cueCount]string{
	"intro", "level", "pick", "correct", "wrong", "complete", "incomplete", "word", "fanfare",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}

// Note is one tone of a cue. A zero Freq is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

const (
	c5 = 523.25
	e5 = 659.25
	g5 = 783.99
	c6 = 1046.50
	e4 = 329.63
	g4 = 392.00
	g3 = 196.00
	d3 = 146.83

	baseFreq = 220.0
	noteLen  = 120 * time.Millisecond
)

// alphabet orders the Romanian letters; a letter's pitch rises with its position.
const alphabet = "AĂÂBCDEFGHIÎJKLMNOPQRSȘTȚUVWXYZ"

// Pitch maps a letter to a tone frequency. Unknown input gets A4.
func Pitch(letter string) float64 {
	letter = strings.ToUpper(letter)
	i := 0
	for _, r := range alphabet {
		if strings.HasPrefix(letter, string(r)) {
			return baseFreq * math.Pow(2, float64(i)/12)
		}
		i++
	}
	return 440
}

// Score returns the notes of c. key is the letter or word the cue is about.
func Score(c Cue, key string) []Note {
	switch c {
	case CueIntro:
		return []Note{{c5, noteLen}, {e5, noteLen}, {g5, noteLen}, {c6, 2 * noteLen}}
	case CueLevel:
		return []Note{{g4, noteLen}, {c5, 2 * noteLen}}
	case CuePick:
		return []Note{{Pitch(key), 90 * time.Millisecond}}
	case CueCorrect:
		p := Pitch(key)
		return []Note{{p, noteLen}, {p * 1.5, 2 * noteLen}}
	case CueWrong:
		return []Note{{g3, 150 * time.Millisecond}, {0, 40 * time.Millisecond}, {d3, 250 * time.Millisecond}}
	case CueComplete:
		return []Note{{c5, noteLen}, {e5, noteLen}, {g5, noteLen}, {c6, 3 * noteLen}}
	case CueIncomplete:
		return []Note{{g4, noteLen}, {e4, 2 * noteLen}}
	case CueWord:
		var notes []Note
		for _, r := range key {
			notes = append(notes, Note{Pitch(string(r)), 2 * noteLen}, Note{0, noteLen / 3})
		}
		return notes
	case CueFanfare:
		return []Note{
			{c5, noteLen}, {e5, noteLen}, {g5, noteLen}, {c6, 2 * noteLen},
			{g5, noteLen}, {c6, 4 * noteLen},
		}
	default:
		return nil
	}
}

// Duration is the total length of notes.
func Duration(notes []Note) time.Duration {
	var d time.Duration
	for _, n := range notes {
		d += n.Dur
	}
	return d
}
