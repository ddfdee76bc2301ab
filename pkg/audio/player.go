package audio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// ErrSilent is returned by PlayWait when no sound device is in use.
var ErrSilent = errors.New("audio: silent mode")

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = 44100

const waitSlack = 250 * time.Millisecond

// Options configures a Player.
type Options struct {
	Enabled    bool
	Volume     float64 // 0..1
	SampleRate int
}

// Player renders cues once, caches them and plays them on the speaker.
// A new cue interrupts the one playing. Without a sound device it runs
// silent and every call is a no-op.
type Player struct {
	rate   beep.SampleRate
	format beep.Format
	log    zerolog.Logger

	mu     sync.Mutex
	cache  map[string]*beep.Buffer
	volume float64

	silent  atomic.Bool
	started atomic.Bool
}

// NewPlayer returns a Player that stays silent until Start succeeds.
func NewPlayer(opts Options, log *zerolog.Logger) *Player {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	logger := zerolog.Nop()
	if log != nil {
		logger = log.With().Str("component", "audio").Logger()
	}
	p := &Player{
		rate:   beep.SampleRate(rate),
		format: beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2},
		log:    logger,
		cache:  map[string]*beep.Buffer{},
		volume: clamp01(opts.Volume),
	}
	p.silent.Store(!opts.Enabled)
	return p
}

// Start opens the sound device. Failure is not an error: the player falls
// back to silent mode and the game runs without sound.
func (p *Player) Start() error {
	if p.silent.Load() || !p.started.CompareAndSwap(false, true) {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.log.Warn().Err(err).Msg("no sound device, running silent")
		p.silent.Store(true)
		return nil
	}
	p.log.Info().Int("rate", int(p.rate)).Msg("speaker ready")
	return nil
}

// Stop silences the speaker.
func (p *Player) Stop() {
	if p.started.Load() && !p.silent.Load() {
		speaker.Clear()
	}
}

// Silent reports whether sound is off.
func (p *Player) Silent() bool {
	return p.silent.Load() || !p.started.Load()
}

// Preload renders the given cues ahead of time.
func (p *Player) Preload(c Cue, keys ...string) {
	if len(keys) == 0 {
		keys = []string{""}
	}
	for _, k := range keys {
		p.buffer(c, k)
	}
}

// Play starts c without waiting for it. It reports whether anything plays.
func (p *Player) Play(c Cue, key string) bool {
	return p.play(c, key, nil)
}

// PlayWait plays c and blocks until it ends or ctx is done. The wait is
// also capped at the cue's length plus a little slack, since a cue
// interrupted by a later one never reports its end.
func (p *Player) PlayWait(ctx context.Context, c Cue, key string) error {
	done := make(chan struct{})
	if !p.play(c, key, func() { close(done) }) {
		return ErrSilent
	}
	ctx, cancel := context.WithTimeout(ctx, Duration(Score(c, key))+waitSlack)
	defer cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.Stop()
		return ctx.Err()
	}
}

func (p *Player) play(c Cue, key string, finished func()) bool {
	if p.Silent() {
		return false
	}
	buf := p.buffer(c, key)
	if buf.Len() == 0 {
		return false
	}

	p.mu.Lock()
	vol := p.volume
	p.mu.Unlock()

	s := withVolume(buf.Streamer(0, buf.Len()), vol)
	if finished != nil {
		s = beep.Seq(s, beep.Callback(finished))
	}

	speaker.Clear()
	speaker.Play(s)
	p.log.Debug().Stringer("cue", c).Str("key", key).Msg("play")
	return true
}

func (p *Player) buffer(c Cue, key string) *beep.Buffer {
	id := c.String() + ":" + key

	p.mu.Lock()
	defer p.mu.Unlock()
	if buf, ok := p.cache[id]; ok {
		return buf
	}
	buf := beep.NewBuffer(p.format)
	buf.Append(render(Score(c, key), p.rate))
	p.cache[id] = buf
	return buf
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
