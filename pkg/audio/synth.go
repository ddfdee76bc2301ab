package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	attack  = 8 * time.Millisecond
	release = 40 * time.Millisecond
	gain    = 0.4
)

// envelope fades a note in and out so tones don't click.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total int, rate beep.SampleRate) beep.Streamer {
	att, rel := rate.N(attack), rate.N(release)
	if att+rel > total {
		att, rel = total/4, total/4
	}
	return &envelope{streamer: s, total: total, attack: att, release: rel}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := gain
		if e.pos < e.attack {
			vol *= float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol *= float64(left) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// render turns notes into a single stream at rate.
func render(notes []Note, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := rate.N(n.Dur)
		if samples <= 0 {
			continue
		}
		if n.Freq <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			// Above Nyquist; keep the timing.
			parts = append(parts, beep.Silence(samples))
			continue
		}
		parts = append(parts, newEnvelope(beep.Take(samples, tone), samples, rate))
	}
	return beep.Seq(parts...)
}

// withVolume scales s by vol in [0,1]; zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
