package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/gwillem/wordcrane/pkg/audio"
	"github.com/gwillem/wordcrane/pkg/game"
	"github.com/gwillem/wordcrane/pkg/level"
	"github.com/gwillem/wordcrane/pkg/mirror"
	"github.com/gwillem/wordcrane/pkg/narration"
	"github.com/gwillem/wordcrane/pkg/robot"
)

type PlayCommand struct {
	Level       int    `long:"level" short:"l" description:"Start at this level (1-based)"`
	Pick        bool   `long:"pick" description:"Choose the start level from a menu"`
	Levels      string `long:"levels" description:"YAML campaign file (default: built-in levels)"`
	Locale      string `long:"locale" description:"Narration language (ro, en)"`
	ManualPlace bool   `long:"manual-place" description:"Hold picked letters until Enter is pressed"`
	Mirror      bool   `long:"mirror" description:"Drive the calibrated follower arm"`
	Silent      bool   `long:"silent" description:"Disable sound"`
}

func (c *PlayCommand) Execute(args []string) error {
	cfg, log, closer, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closer.Close()

	path := c.Levels
	if path == "" {
		path = cfg.Levels
	}
	campaign, err := level.Load(path)
	if err != nil {
		return err
	}

	start := c.Level - 1
	if c.Pick {
		if start, err = pickLevel(campaign); err != nil {
			return quitOnAbort(err)
		}
	}
	if start < 0 {
		start = 0
	}

	locale := c.Locale
	if locale == "" {
		locale = cfg.Locale
	}
	phrases, err := narration.Embedded()
	if err != nil {
		return err
	}
	if !slices.Contains(phrases.Locales(), locale) {
		log.Warn().
			Str("locale", locale).
			Strs("available", phrases.Locales()).
			Msgf("no %s narration, falling back to %s", locale, narration.BaseLocale)
	}

	player := audio.NewPlayer(audio.Options{
		Enabled: cfg.Audio && !c.Silent,
		Volume:  cfg.Volume,
	}, &log)
	if err := player.Start(); err != nil {
		return err
	}
	defer player.Stop()
	go preloadCues(player, campaign)

	narrator := narration.New(phrases, locale, player, &log)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	card := &scorecard{}
	sess, err := game.NewSession(campaign, game.Options{
		Seed:        seed,
		StartLevel:  start,
		Feedback:    game.Fanout{narrator, game.FeedbackFunc(card.record)},
		Logger:      &log,
		ManualPlace: c.ManualPlace,
	})
	if err != nil {
		return err
	}
	log.Info().
		Uint64("seed", seed).
		Int("start", start+1).
		Int("levels", campaign.Len()).
		Str("locale", locale).
		Bool("silent", player.Silent()).
		Msg("game starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ctrl *mirror.Controller
	if c.Mirror {
		ctrl, err = startMirror(ctx, cfg.RobotConfig, cfg.TickHz, &log)
		if err != nil {
			return err
		}
	}

	sess.Open()
	model := newPlayModel(sess, narrator, ctrl, cfg.TickHz)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info().
		Int("level", sess.LevelIndex()+1).
		Stringer("phase", sess.Phase()).
		Int("words", card.words).
		Int("correct", card.correct).
		Int("wrong", card.wrong).
		Msg("game closed")

	if sess.Phase() == game.PhaseSuccess {
		if err := player.PlayWait(ctx, audio.CueFanfare, ""); err != nil && !errors.Is(err, audio.ErrSilent) {
			log.Debug().Err(err).Msg("send-off cut short")
		}
	}
	return nil
}

// scorecard tallies placements for the closing log line.
type scorecard struct {
	words, correct, wrong int
}

func (s *scorecard) record(e game.Event) {
	switch e.Kind {
	case game.CorrectLetter:
		s.correct++
	case game.LevelComplete:
		s.correct++
		s.words++
	case game.WrongLetter:
		s.wrong++
	}
}

// startMirror connects the follower arm and runs its loop until ctx ends.
func startMirror(ctx context.Context, path string, hz int, log *zerolog.Logger) (*mirror.Controller, error) {
	rc, err := robot.LoadConfigFrom(path)
	if err != nil {
		return nil, err
	}
	arm, err := robot.NewArm(rc.Follower.Port, rc.Follower.Calibration)
	if err != nil {
		return nil, fmt.Errorf("connect follower: %w", err)
	}

	ctrl := mirror.NewController(arm, hz, log)
	go func() {
		defer arm.Close()
		if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("mirror stopped")
		}
	}()
	return ctrl, nil
}

func preloadCues(p *audio.Player, campaign *level.Catalog) {
	for _, c := range []audio.Cue{audio.CueIntro, audio.CueLevel, audio.CueWrong, audio.CueComplete} {
		p.Preload(c)
	}
	for _, l := range campaign.Levels {
		p.Preload(audio.CueWord, l.Word)
		p.Preload(audio.CuePick, l.Letters()...)
	}
}

// quitOnAbort treats a form the user backed out of as a clean exit.
func quitOnAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func pickLevel(campaign *level.Catalog) (int, error) {
	options := make([]huh.Option[int], 0, campaign.Len())
	for i, l := range campaign.Levels {
		options = append(options, huh.NewOption(fmt.Sprintf("%d. %s", i+1, l.Word), i))
	}

	var start int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Start at which level?").
				Options(options...).
				Value(&start),
		),
	)
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("pick level: %w", err)
	}
	return start, nil
}
