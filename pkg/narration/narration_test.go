package narration

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gwillem/wordcrane/pkg/audio"
	"github.com/gwillem/wordcrane/pkg/game"
	"github.com/gwillem/wordcrane/pkg/level"
)

type voice struct {
	cues []audio.Cue
	keys []string
}

func (v *voice) Play(c audio.Cue, key string) bool {
	v.cues = append(v.cues, c)
	v.keys = append(v.keys, key)
	return true
}

func mustEmbedded(t *testing.T) *Catalog {
	t.Helper()
	c, err := Embedded()
	if err != nil {
		t.Fatalf("Embedded() error: %v", err)
	}
	return c
}

func TestEmbedded_Locales(t *testing.T) {
	c := mustEmbedded(t)
	got := strings.Join(c.Locales(), ",")
	if got != "en,ro" {
		t.Errorf("Locales() = %s, want en,ro", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name:  "empty",
			files: fstest.MapFS{},
			want:  "no locale files",
		},
		{
			name: "name mismatch",
			files: fstest.MapFS{
				"locales/ro.yaml": {Data: []byte("locale: en\nmessages:\n  a: b\n")},
			},
			want: "must match file name",
		},
		{
			name: "no base",
			files: fstest.MapFS{
				"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: b\n")},
			},
			want: "base locale",
		},
		{
			name: "missing key",
			files: fstest.MapFS{
				"locales/ro.yaml": {Data: []byte("locale: ro\nmessages:\n  a: x\n  b: y\n")},
				"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: x\n")},
			},
			want: "missing keys b",
		},
		{
			name: "bad yaml",
			files: fstest.MapFS{
				"locales/ro.yaml": {Data: []byte("locale: [")},
			},
			want: "parse locale",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFS() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPrinter_FallsBackToRomanian(t *testing.T) {
	c := mustEmbedded(t)
	for _, loc := range []string{"ro", "ro-RO", "fr", ""} {
		n := New(c, loc, nil, nil)
		if got := n.T("banner.wrong"); got != "Literă greșită! Mai încearcă!" {
			t.Errorf("locale %q: banner.wrong = %q", loc, got)
		}
	}
	n := New(c, "en-GB", nil, nil)
	if got := n.T("banner.wrong"); got != "Wrong letter! Try again!" {
		t.Errorf("en-GB banner.wrong = %q", got)
	}
}

func TestNotify(t *testing.T) {
	c := mustEmbedded(t)
	v := &voice{}
	n := New(c, "ro", v, nil)

	tests := []struct {
		event  game.Event
		text   string
		speech string
		mood   Mood
		cue    audio.Cue
	}{
		{
			event:  game.Event{Kind: game.LevelStarted, Level: 1, Word: "CASĂ", First: true},
			text:   "Nivelul 1: Construiește cuvântul!",
			speech: "Da click pe litere in ordine si construieste cuvantul CASĂ",
			cue:    audio.CueLevel,
		},
		{
			event:  game.Event{Kind: game.LevelStarted, Level: 2, Word: "ALBINĂ", Objective: level.ObjectiveComplete},
			text:   "Nivelul 2: Completează literele lipsă!",
			speech: "Nivelul 2. Construiește cuvântul ALBINĂ",
			cue:    audio.CueLevel,
		},
		{
			event:  game.Event{Kind: game.CorrectLetter, Char: "C"},
			text:   "Bravo! C",
			speech: "Bravo! C",
			mood:   Good,
			cue:    audio.CueCorrect,
		},
		{
			event:  game.Event{Kind: game.WrongLetter, Char: "M"},
			text:   "Literă greșită! Mai încearcă!",
			speech: "Literă greșită, mai încearcă",
			mood:   Bad,
			cue:    audio.CueWrong,
		},
		{
			event:  game.Event{Kind: game.LevelComplete, Word: "CASĂ"},
			text:   "Felicitări! Nivel Complet!",
			speech: "Felicitări! Cuvântul CASĂ este complet!",
			mood:   Celebrate,
			cue:    audio.CueComplete,
		},
		{
			event:  game.Event{Kind: game.WordIncomplete},
			text:   "Cuvântul nu este complet!",
			speech: "Cuvântul nu este complet, mai încearcă",
			mood:   Bad,
			cue:    audio.CueIncomplete,
		},
		{
			event:  game.Event{Kind: game.SpeakWord, Word: "PISICĂ"},
			text:   "Ascultă: PISICĂ",
			speech: "PISICĂ",
			cue:    audio.CueWord,
		},
	}

	for i, tt := range tests {
		n.Notify(tt.event)
		got := n.Line()
		if got.Text != tt.text || got.Speech != tt.speech || got.Mood != tt.mood {
			t.Errorf("%s: line = %+v, want %q / %q / %d", tt.event.Kind, got, tt.text, tt.speech, tt.mood)
		}
		if v.cues[i] != tt.cue {
			t.Errorf("%s: cue = %s, want %s", tt.event.Kind, v.cues[i], tt.cue)
		}
	}
	if len(v.cues) != len(tests) {
		t.Errorf("voice got %d cues, want %d", len(v.cues), len(tests))
	}
	if v.keys[2] != "C" || v.keys[6] != "PISICĂ" {
		t.Errorf("cue keys = %v", v.keys)
	}
}

func TestNotify_UnknownKeepsLine(t *testing.T) {
	v := &voice{}
	n := New(mustEmbedded(t), "ro", v, nil)
	n.Notify(game.Event{Kind: game.WordIncomplete})
	before := n.Line()

	n.Notify(game.Event{Kind: game.EventKind(200)})
	if n.Line() != before {
		t.Error("unknown event replaced the banner")
	}
	if len(v.cues) != 1 {
		t.Errorf("unknown event played a cue: %v", v.cues)
	}
}

func TestObjective(t *testing.T) {
	n := New(mustEmbedded(t), "ro", nil, nil)
	tests := map[level.Objective]string{
		level.ObjectiveBuild:    "Construiește cuvântul!",
		level.ObjectiveComplete: "Completează literele lipsă!",
		level.ObjectiveCatch:    "Prinde literele!",
	}
	for o, want := range tests {
		if got := n.Objective(o); got != want {
			t.Errorf("Objective(%s) = %q, want %q", o, got, want)
		}
	}
}
