package game

import (
	"fmt"

	"github.com/gwillem/wordcrane/pkg/level"
)

// EventKind names a narrated moment of play.
type EventKind uint8

const (
	Intro          EventKind = iota // welcome screen shown
	LevelStarted                    // a level was laid out
	LetterPicked                    // the player chose a tile
	CorrectLetter                   // tile matched its slot
	WrongLetter                     // tile bounced back
	LevelComplete                   // last slot filled
	WordIncomplete                  // next level asked for too early
	SpeakWord                       // player asked to hear the word
	GameComplete                    // campaign finished
)

func (k EventKind) String() string {
	switch k {
	case Intro:
		return "intro"
	case LevelStarted:
		return "level_started"
	case LetterPicked:
		return "letter_picked"
	case CorrectLetter:
		return "correct_letter"
	case WrongLetter:
		return "wrong_letter"
	case LevelComplete:
		return "level_complete"
	case WordIncomplete:
		return "word_incomplete"
	case SpeakWord:
		return "speak_word"
	case GameComplete:
		return "game_complete"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is delivered to the feedback sink. Char is set for letter events,
// Word for word events. Level is the 1-based level number.
type Event struct {
	Kind  EventKind
	Char  string
	Word  string
	Level int
	// Objective and First are set on LevelStarted. First is true for the
	// opening level of the campaign.
	Objective level.Objective
	First     bool
}

// Feedback receives narrated events. Implementations must not block.
type Feedback interface {
	Notify(Event)
}

// FeedbackFunc adapts a function to Feedback.
type FeedbackFunc func(Event)

// Notify calls f(e).
func (f FeedbackFunc) Notify(e Event) { f(e) }

// Fanout delivers every event to all sinks in order.
type Fanout []Feedback

// Notify forwards e to each sink.
func (f Fanout) Notify(e Event) {
	for _, fb := range f {
		fb.Notify(e)
	}
}

type discard struct{}

func (discard) Notify(Event) {}
