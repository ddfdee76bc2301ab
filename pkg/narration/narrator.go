package narration

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/message"

	"github.com/gwillem/wordcrane/pkg/audio"
	"github.com/gwillem/wordcrane/pkg/game"
	"github.com/gwillem/wordcrane/pkg/level"
)

const noCue audio.Cue = -1

// Mood colors a banner.
type Mood uint8

const (
	Neutral Mood = iota
	Good
	Bad
	Celebrate
)

// Line is what the player currently reads. Speech is the sentence that
// would be spoken aloud.
type Line struct {
	Text   string
	Speech string
	Mood   Mood
}

// Voice plays the sound that goes with a line.
type Voice interface {
	Play(c audio.Cue, key string) bool
}

// Narrator implements game.Feedback. It keeps the latest banner for the UI
// and hands a cue to the voice for every event.
type Narrator struct {
	p     *message.Printer
	voice Voice
	log   zerolog.Logger
	line  Line
}

// New returns a narrator speaking locale. voice may be nil.
func New(c *Catalog, locale string, voice Voice, log *zerolog.Logger) *Narrator {
	logger := zerolog.Nop()
	if log != nil {
		logger = log.With().Str("component", "narrator").Logger()
	}
	return &Narrator{p: c.Printer(locale), voice: voice, log: logger}
}

// T formats the message stored under key.
func (n *Narrator) T(key string, args ...any) string {
	return n.p.Sprintf(key, args...)
}

// Line returns the latest banner.
func (n *Narrator) Line() Line { return n.line }

// Notify implements game.Feedback.
func (n *Narrator) Notify(e game.Event) {
	line, cue, key := n.compose(e)
	n.line = line

	n.log.Info().
		Stringer("event", e.Kind).
		Int("level", e.Level).
		Str("text", line.Text).
		Msg(line.Speech)

	if n.voice != nil && cue != noCue {
		n.voice.Play(cue, key)
	}
}

func (n *Narrator) compose(e game.Event) (Line, audio.Cue, string) {
	switch e.Kind {
	case game.Intro:
		intro := n.T("intro")
		return Line{Text: intro, Speech: intro}, audio.CueIntro, ""
	case game.LevelStarted:
		speech := n.T("instruction.level", e.Level, e.Word)
		if e.First {
			speech = n.T("instruction.first", e.Word)
		}
		return Line{Text: n.T("banner.level", e.Level, n.Objective(e.Objective)), Speech: speech}, audio.CueLevel, ""
	case game.LetterPicked:
		return Line{Text: e.Char, Speech: e.Char}, audio.CuePick, e.Char
	case game.CorrectLetter:
		return Line{Text: n.T("banner.correct", e.Char), Speech: n.T("banner.correct", e.Char), Mood: Good}, audio.CueCorrect, e.Char
	case game.WrongLetter:
		return Line{Text: n.T("banner.wrong"), Speech: n.T("speech.wrong"), Mood: Bad}, audio.CueWrong, e.Char
	case game.LevelComplete:
		return Line{Text: n.T("banner.complete"), Speech: n.T("speech.complete", e.Word), Mood: Celebrate}, audio.CueComplete, ""
	case game.WordIncomplete:
		return Line{Text: n.T("banner.incomplete"), Speech: n.T("speech.incomplete"), Mood: Bad}, audio.CueIncomplete, ""
	case game.SpeakWord:
		return Line{Text: n.T("banner.listen", e.Word), Speech: e.Word}, audio.CueWord, e.Word
	case game.GameComplete:
		outro := n.T("outro")
		return Line{Text: n.T("banner.success"), Speech: outro, Mood: Celebrate}, audio.CueFanfare, ""
	default:
		return n.line, noCue, ""
	}
}

// Objective describes what the player does on a level. An unset
// objective reads as building the word.
func (n *Narrator) Objective(o level.Objective) string {
	if o == "" {
		o = level.ObjectiveBuild
	}
	return n.T("objective." + string(o))
}
