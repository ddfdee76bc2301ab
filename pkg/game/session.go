// Package game runs a word-building session: the level driver, the input
// boundary and the pickup/placement machine that drives the arm.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/gwillem/wordcrane/pkg/arm"
	"github.com/gwillem/wordcrane/pkg/board"
	"github.com/gwillem/wordcrane/pkg/kinematics"
	"github.com/gwillem/wordcrane/pkg/level"
)

// ErrLevelOutOfRange is returned for a start level outside the campaign.
var ErrLevelOutOfRange = errors.New("level out of range")

// Phase is the screen the session is on.
type Phase uint8

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseSuccess:
		return "success"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Layout     board.Layout
	Arm        arm.Config
	Seed       uint64
	StartLevel int // 0-based
	Feedback   Feedback
	Logger     *zerolog.Logger
	// ManualPlace stops the arm in Holding after a pickup; Place sends it on.
	ManualPlace bool
}

// Session owns the arm, the current board and the campaign position.
// It is not safe for concurrent use; drive it from one tick loop.
type Session struct {
	levels *level.Catalog
	index  int
	level  level.Level
	board  *board.Board
	arm    *arm.Arm
	layout board.Layout
	fb     Feedback
	rng    *rand.Rand
	base   zerolog.Logger
	log    zerolog.Logger
	phase  Phase

	pickup      *board.Letter
	target      *board.Slot
	autoPlace   bool
	manualPlace bool
	complete    bool
}

// NewSession prepares the campaign at opts.StartLevel, on the intro screen.
func NewSession(levels *level.Catalog, opts Options) (*Session, error) {
	if levels == nil || levels.Len() == 0 {
		return nil, level.ErrNoLevels
	}
	if opts.StartLevel < 0 || opts.StartLevel >= levels.Len() {
		return nil, fmt.Errorf("start level %d: %w", opts.StartLevel+1, ErrLevelOutOfRange)
	}

	lay := opts.Layout
	if lay == (board.Layout{}) {
		lay = board.DefaultLayout()
	}
	armCfg := opts.Arm
	if armCfg.Base == (kinematics.Point{}) {
		armCfg.Base = kinematics.Point{X: lay.Width / 2, Y: lay.Height - 20}
	}
	fb := opts.Feedback
	if fb == nil {
		fb = discard{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Session{
		levels:      levels,
		arm:         arm.New(armCfg),
		layout:      lay,
		fb:          fb,
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		base:        logger,
		log:         logger,
		manualPlace: opts.ManualPlace,
	}
	s.setupLevel(opts.StartLevel)
	return s, nil
}

// Open announces the intro screen.
func (s *Session) Open() {
	if s.phase == PhaseIntro {
		s.emit(Event{Kind: Intro})
	}
}

// Start leaves the intro and begins the current level.
func (s *Session) Start() {
	if s.phase != PhaseIntro {
		return
	}
	s.phase = PhasePlaying
	s.announceLevel()
}

// Tick advances the simulation by one frame: the placement machine and the
// arm first, then the free letters' entry animation.
func (s *Session) Tick() {
	if s.phase != PhasePlaying {
		return
	}
	s.step()
	s.arm.Update()
	s.board.Advance()
}

// Click handles a press at p in playfield coordinates. It reports whether a
// pickup started; clicks that cannot be served are ignored.
func (s *Session) Click(p board.Point) bool {
	if s.phase != PhasePlaying {
		return false
	}
	return s.ClickLetter(s.board.LetterAt(p))
}

// ClickChar picks a tile showing ch, preferring one that has landed over
// one still falling.
func (s *Session) ClickChar(ch string) bool {
	if s.phase != PhasePlaying {
		return false
	}
	ch = level.Normalize(ch)
	var falling *board.Letter
	for _, l := range s.board.Letters {
		if l.Char != ch || !s.board.Pickable(l) {
			continue
		}
		if l.Arrived {
			return s.ClickLetter(l)
		}
		if falling == nil {
			falling = l
		}
	}
	return s.ClickLetter(falling)
}

// ClickLetter starts a pickup of l when the arm is free.
func (s *Session) ClickLetter(l *board.Letter) bool {
	if s.phase != PhasePlaying || l == nil {
		return false
	}
	if s.arm.State != arm.Idle || s.arm.Held != nil {
		return false
	}
	if s.board.CurrentSlot() == nil || !s.board.Pickable(l) {
		return false
	}
	s.startPickup(l)
	s.emit(Event{Kind: LetterPicked, Char: l.Char})
	return true
}

// Place sends a held tile to the current slot. Only meaningful with
// ManualPlace, where pickups stop in Holding.
func (s *Session) Place() bool {
	if s.phase != PhasePlaying || s.arm.State != arm.Holding {
		return false
	}
	s.moveToCurrentSlot()
	return true
}

// NextLevel moves on once the word is complete. An early request is
// narrated and refused.
func (s *Session) NextLevel() bool {
	if s.phase != PhasePlaying {
		return false
	}
	if !s.complete {
		s.emit(Event{Kind: WordIncomplete, Word: s.level.Word})
		return false
	}

	next := s.index + 1
	if next >= s.levels.Len() {
		s.phase = PhaseSuccess
		s.log.Info().Int("levels", s.levels.Len()).Msg("campaign complete")
		s.emit(Event{Kind: GameComplete})
		return true
	}
	s.setupLevel(next)
	s.announceLevel()
	return true
}

// Speak asks the sink to say the target word.
func (s *Session) Speak() {
	if s.phase == PhasePlaying {
		s.emit(Event{Kind: SpeakWord, Word: s.level.Word})
	}
}

func (s *Session) setupLevel(i int) {
	lvl, _ := s.levels.At(i)
	s.index = i
	s.level = lvl
	s.board = board.New(s.layout, lvl.Setup(), s.rng)
	s.pickup = nil
	s.target = nil
	s.autoPlace = false
	s.complete = false

	s.arm.Release()
	s.arm.MoveToRest()

	s.log = s.base.With().Int("level", lvl.ID).Logger()
	s.log.Info().
		Str("word", lvl.Word).
		Str("spawn", lvl.Mode.String()).
		Ints("prefilled", lvl.Prefilled).
		Int("letters", len(s.board.Letters)).
		Msg("level ready")
}

func (s *Session) announceLevel() {
	s.emit(Event{
		Kind:      LevelStarted,
		Word:      s.level.Word,
		Objective: s.level.Objective(),
		First:     s.index == 0,
	})
}

func (s *Session) emit(e Event) {
	e.Level = s.level.ID
	s.fb.Notify(e)
}

// Board returns the current level's board.
func (s *Session) Board() *board.Board { return s.board }

// Arm returns the crane.
func (s *Session) Arm() *arm.Arm { return s.arm }

// Level returns the level being played.
func (s *Session) Level() level.Level { return s.level }

// LevelIndex returns the 0-based campaign position.
func (s *Session) LevelIndex() int { return s.index }

// LevelCount returns the campaign length.
func (s *Session) LevelCount() int { return s.levels.Len() }

// Phase returns the current screen.
func (s *Session) Phase() Phase { return s.phase }

// Complete reports whether the current word is finished.
func (s *Session) Complete() bool { return s.complete }

// Pickup returns the tile the arm is on its way to collect, if any.
func (s *Session) Pickup() *board.Letter { return s.pickup }

// TargetSlot returns the slot the arm is carrying a tile to, if any.
func (s *Session) TargetSlot() *board.Slot { return s.target }
