package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestPitch(t *testing.T) {
	if Pitch("A") != baseFreq {
		t.Errorf("Pitch(A) = %f, want %f", Pitch("A"), baseFreq)
	}
	if !(Pitch("A") < Pitch("Ă") && Pitch("Ă") < Pitch("B") && Pitch("S") < Pitch("Ș")) {
		t.Error("pitch does not rise with alphabet order")
	}
	if Pitch("ș") != Pitch("Ș") {
		t.Error("pitch should ignore case")
	}
	if Pitch("7") != 440 || Pitch("") != 440 {
		t.Error("unknown input should map to 440 Hz")
	}
}

func TestScore(t *testing.T) {
	for c := Cue(0); c < cueCount; c++ {
		if len(Score(c, "A")) == 0 {
			t.Errorf("cue %s has no notes", c)
		}
	}
	if Score(cueCount, "") != nil {
		t.Error("unknown cue should have no notes")
	}

	word := Score(CueWord, "CASĂ")
	if len(word) != 8 {
		t.Fatalf("CueWord(CASĂ) has %d notes, want 8", len(word))
	}
	if word[3].Freq != 0 || word[6].Freq != Pitch("Ă") {
		t.Error("word cue should alternate letter tones and rests")
	}
}

func TestRender_Length(t *testing.T) {
	rate := beep.SampleRate(8000)
	notes := []Note{{440, 100 * time.Millisecond}, {0, 50 * time.Millisecond}, {880, 100 * time.Millisecond}}

	s := render(notes, rate)
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample out of range: %f", buf[i][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}

	want := rate.N(100*time.Millisecond)*2 + rate.N(50*time.Millisecond)
	if total != want {
		t.Errorf("rendered %d samples, want %d", total, want)
	}
}

func TestEnvelope_FadesEdges(t *testing.T) {
	rate := beep.SampleRate(8000)
	n := rate.N(200 * time.Millisecond)
	ones := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})

	s := newEnvelope(beep.Take(n, ones), n, rate)
	out := make([][2]float64, n)
	got, _ := s.Stream(out)
	if got != n {
		t.Fatalf("streamed %d, want %d", got, n)
	}
	if out[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", out[0][0])
	}
	if mid := out[n/2][0]; mid != gain {
		t.Errorf("sustain = %f, want %f", mid, gain)
	}
	if last := out[n-1][0]; last >= gain/2 {
		t.Errorf("last sample = %f, should be fading", last)
	}
}

func TestPlayer_Disabled(t *testing.T) {
	p := NewPlayer(Options{Enabled: false, Volume: 0.5}, nil)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if !p.Silent() {
		t.Fatal("disabled player should be silent")
	}
	if p.Play(CuePick, "A") {
		t.Error("silent Play reported playing")
	}
	err := p.PlayWait(context.Background(), CueCorrect, "A")
	if !errors.Is(err, ErrSilent) {
		t.Errorf("PlayWait err = %v, want ErrSilent", err)
	}
	p.Stop()
}

func TestPlayer_CacheAndVolume(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{3, 1}, {-1, 0}, {0.25, 0.25}} {
		if v := NewPlayer(Options{Volume: tt.in}, nil).volume; v != tt.want {
			t.Errorf("Volume %f: got %f, want %f", tt.in, v, tt.want)
		}
	}
	p := NewPlayer(Options{Volume: 0.5, SampleRate: 8000}, nil)

	p.Preload(CueWord, "CASĂ", "ALBINĂ")
	p.Preload(CueIntro)
	if len(p.cache) != 3 {
		t.Fatalf("cache has %d entries, want 3", len(p.cache))
	}
	a := p.buffer(CueWord, "CASĂ")
	if a != p.buffer(CueWord, "CASĂ") {
		t.Error("buffer was rendered twice")
	}
	if a.Len() != p.rate.N(Duration(Score(CueWord, "CASĂ"))) {
		t.Errorf("buffer len %d does not match score duration", a.Len())
	}
}
