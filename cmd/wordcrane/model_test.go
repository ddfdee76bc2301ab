package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gwillem/wordcrane/pkg/arm"
	"github.com/gwillem/wordcrane/pkg/board"
	"github.com/gwillem/wordcrane/pkg/game"
	"github.com/gwillem/wordcrane/pkg/level"
	"github.com/gwillem/wordcrane/pkg/narration"
)

func newTestModel(t *testing.T, manual bool) playModel {
	t.Helper()
	campaign, err := level.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	phrases, err := narration.Embedded()
	if err != nil {
		t.Fatal(err)
	}
	n := narration.New(phrases, "ro", nil, nil)
	sess, err := game.NewSession(campaign, game.Options{Seed: 7, Feedback: n, ManualPlace: manual})
	if err != nil {
		t.Fatal(err)
	}
	sess.Open()
	return newPlayModel(sess, n, nil, 60)
}

func press(m playModel, s string) playModel {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	return update(m, msg)
}

func update(m playModel, msg tea.Msg) playModel {
	next, _ := m.Update(msg)
	return next.(playModel)
}

func ticks(m playModel, n int) playModel {
	for i := 0; i < n; i++ {
		m = update(m, tickMsg{})
	}
	return m
}

func TestField_RoundTrip(t *testing.T) {
	f := field{lay: board.DefaultLayout(), cols: 100, rows: 35}
	for _, p := range []board.Point{{X: 0, Y: 0}, {X: 500, Y: 350}, {X: 999, Y: 699}} {
		c := f.cell(p)
		if !f.inside(c.X, c.Y) {
			t.Errorf("cell(%v) = %v outside the grid", p, c)
		}
		back := f.point(c.X, c.Y)
		if back.Dist(p) > 15 {
			t.Errorf("point(cell(%v)) = %v, too far", p, back)
		}
	}
	if f.inside(-1, 0) || f.inside(0, 35) {
		t.Error("inside() accepted a cell off the grid")
	}
}

func TestDrawField_ArmAndSlots(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter")

	drawField(m.canvas, m.field, m.sess)
	view := m.canvas.View()

	braille := strings.IndexFunc(view, func(r rune) bool { return r > 0x2800 && r <= 0x28FF })
	if braille < 0 {
		t.Error("arm segments not drawn as braille dots")
	}
	for _, want := range []string{"╭", "╯", "▲", "●", "1", "4"} {
		if !strings.Contains(view, want) {
			t.Errorf("field missing %q", want)
		}
	}
}

func TestModel_IntroThenPlay(t *testing.T) {
	m := newTestModel(t, false)
	if !strings.Contains(m.View(), "START") {
		t.Error("intro screen has no start button")
	}
	m = press(m, "x") // ignored on the intro
	if m.sess.Phase() != game.PhaseIntro {
		t.Fatal("letter key left the intro")
	}
	m = press(m, "enter")
	if m.sess.Phase() != game.PhasePlaying {
		t.Fatal("enter did not start the game")
	}
	if got := m.narrator.Line().Text; got != "Nivelul 1: Construiește cuvântul!" {
		t.Errorf("banner = %q", got)
	}
	if !strings.Contains(m.View(), "Nivel 1/3") {
		t.Error("status line missing level counter")
	}
}

func TestModel_KeyboardBuildsWord(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter")
	m = ticks(m, 400) // conveyor arrival

	for _, ch := range []string{"c", "a", "s", "ă"} {
		m = press(m, ch)
		if m.sess.Arm().State == arm.Idle {
			t.Fatalf("key %q did not start a pickup", ch)
		}
		m = ticks(m, 600)
	}
	if !m.sess.Complete() {
		t.Fatalf("word not complete, board = %s", m.sess.Board().Word())
	}

	m = press(m, "enter")
	if m.sess.LevelIndex() != 1 {
		t.Errorf("enter after completion: level = %d, want 1", m.sess.LevelIndex())
	}
}

func TestModel_EnterPlacesWhenHolding(t *testing.T) {
	m := newTestModel(t, true)
	m = press(m, "enter")
	m = ticks(m, 400)

	m = press(m, "c")
	m = ticks(m, 600)
	if m.sess.Arm().State != arm.Holding {
		t.Fatalf("arm state = %s, want holding", m.sess.Arm().State)
	}
	if !strings.Contains(m.help(), "place") {
		t.Error("help does not offer placing")
	}
	m = press(m, "enter")
	if m.sess.Arm().State != arm.MovingToSlot {
		t.Errorf("arm state = %s, want moving_to_slot", m.sess.Arm().State)
	}
}

func TestModel_ClickPicksTile(t *testing.T) {
	m := newTestModel(t, false)
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	m = press(m, "enter")
	m = ticks(m, 400)

	l := m.sess.Board().Letters[0]
	c := m.field.cell(l.Pos)
	m = update(m, tea.MouseMsg{X: c.X + 1, Y: c.Y + headerHeight + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.sess.Pickup() != l {
		t.Errorf("click on %q did not pick it", l.Char)
	}
}

func TestModel_SpeakAndTelemetry(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter")

	m = press(m, "space")
	if got := m.narrator.Line().Text; got != "Ascultă: CASĂ" {
		t.Errorf("banner = %q", got)
	}

	rows := m.field.rows
	m = press(m, "tab")
	if !m.telemetry || m.field.rows >= rows {
		t.Error("telemetry did not make room for the chart")
	}
	m = ticks(m, 3)
	m = press(m, "tab")
	if m.telemetry {
		t.Error("tab did not hide telemetry")
	}
}

func TestModel_EarlyNextLevelRefused(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter")
	m = press(m, "enter")
	if m.sess.LevelIndex() != 0 {
		t.Error("level skipped before completion")
	}
	if got := m.narrator.Line().Text; got != "Cuvântul nu este complet!" {
		t.Errorf("banner = %q", got)
	}
}
