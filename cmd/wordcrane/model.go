package main

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/wordcrane/pkg/arm"
	"github.com/gwillem/wordcrane/pkg/game"
	"github.com/gwillem/wordcrane/pkg/mirror"
	"github.com/gwillem/wordcrane/pkg/narration"
	"github.com/gwillem/wordcrane/pkg/robot"
)

const (
	headerHeight    = 3 // title, status, banner
	footerHeight    = 2 // blank + help
	telemetryHeight = 8
	logHeight       = 5
	maxLogs         = 3
	borderSize      = 2
	minCols         = 40
	minRows         = 12
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fieldStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	logStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("9"))
	storyStyle  = lipgloss.NewStyle().Padding(1, 4).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("220"))
	buttonStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2).Background(lipgloss.Color("28")).Foreground(lipgloss.Color("15"))

	moodStyles = map[narration.Mood]lipgloss.Style{
		narration.Neutral:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		narration.Good:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		narration.Bad:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		narration.Celebrate: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	}

	angleColors = map[string]string{
		"shoulder": "208",
		"elbow":    "226",
	}
)

type tickMsg time.Time
type logMsg string
type stateMsg mirror.State

func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForLog(ctrl *mirror.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

func waitForState(ctrl *mirror.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

type playModel struct {
	sess     *game.Session
	narrator *narration.Narrator
	ctrl     *mirror.Controller
	every    time.Duration

	field     field
	canvas    *canvas.Model
	chart     *streamlinechart.Model
	telemetry bool

	width, height int
	logs          []string
	drift         float64 // radians, from the last read-back
	measured      bool
	quitting      bool
}

func newPlayModel(sess *game.Session, n *narration.Narrator, ctrl *mirror.Controller, hz int) playModel {
	if hz <= 0 {
		hz = 60
	}
	chart := streamlinechart.New(80, telemetryHeight,
		streamlinechart.WithYRange(-180, 180),
	)
	for name, color := range angleColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}

	m := playModel{
		sess:     sess,
		narrator: n,
		ctrl:     ctrl,
		every:    time.Second / time.Duration(hz),
		chart:    &chart,
	}
	m.resize(100, 40)
	return m
}

func (m playModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.every)}
	if m.ctrl != nil {
		cmds = append(cmds, waitForLog(m.ctrl), waitForState(m.ctrl))
	}
	return tea.Batch(cmds...)
}

// resize fits the playfield into the terminal, keeping its aspect ratio
// with cells twice as tall as wide.
func (m *playModel) resize(width, height int) {
	m.width, m.height = width, height

	rows := height - headerHeight - footerHeight - borderSize
	if m.telemetry {
		rows -= telemetryHeight + borderSize
	}
	if m.ctrl != nil {
		rows -= logHeight
	}
	cols := width - borderSize

	lay := m.sess.Board().Layout
	if want := int(float64(rows) * 2 * lay.Width / lay.Height); want < cols {
		cols = want
	} else {
		rows = int(float64(cols) * lay.Height / lay.Width / 2)
	}
	cols, rows = max(cols, minCols), max(rows, minRows)

	m.field = field{lay: lay, cols: cols, rows: rows}
	c := canvas.New(cols, rows)
	m.canvas = &c
	m.chart.Resize(max(width-borderSize, minCols), telemetryHeight)
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.step()
		return m, tick(m.every)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)

	case stateMsg:
		if msg.Measured {
			m.drift, m.measured = msg.Drift, true
		}
		return m, waitForState(m.ctrl)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.click(msg.X, msg.Y)
		}

	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

// step advances the game one frame and forwards the pose.
func (m *playModel) step() {
	m.sess.Tick()
	a := m.sess.Arm()
	if m.ctrl != nil {
		m.ctrl.Push(robot.Pose{Angles: a.Angles(), Grip: a.Held != nil})
	}
	if m.telemetry && m.sess.Phase() == game.PhasePlaying {
		ang := a.Angles()
		m.chart.PushDataSet("shoulder", ang.Shoulder*180/math.Pi)
		m.chart.PushDataSet("elbow", ang.Elbow*180/math.Pi)
		m.chart.DrawAll()
	}
}

func (m *playModel) click(x, y int) tea.Cmd {
	switch m.sess.Phase() {
	case game.PhaseIntro:
		m.sess.Start()
	case game.PhasePlaying:
		// Cell coordinates inside the bordered playfield.
		cx, cy := x-1, y-headerHeight-1
		if m.field.inside(cx, cy) {
			m.sess.Click(m.field.point(cx, cy))
		}
	case game.PhaseSuccess:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *playModel) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	}

	switch m.sess.Phase() {
	case game.PhaseIntro:
		switch msg.String() {
		case "enter", " ":
			m.sess.Start()
		case "q":
			m.quitting = true
			return tea.Quit
		}

	case game.PhasePlaying:
		switch msg.Type {
		case tea.KeyEnter:
			if m.sess.Arm().State == arm.Holding {
				m.sess.Place()
			} else {
				m.sess.NextLevel()
			}
		case tea.KeySpace:
			m.sess.Speak()
		case tea.KeyTab:
			m.telemetry = !m.telemetry
			m.resize(m.width, m.height)
		case tea.KeyRunes:
			if len(msg.Runes) == 1 && unicode.IsLetter(msg.Runes[0]) {
				m.sess.ClickChar(string(msg.Runes[0]))
			}
		}

	case game.PhaseSuccess:
		switch msg.String() {
		case "enter", "q":
			m.quitting = true
			return tea.Quit
		}
	}
	return nil
}

func (m *playModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m playModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.sess.Phase() {
	case game.PhaseIntro:
		return m.story(m.narrator.T("intro"), m.narrator.T("button.start"))
	case game.PhaseSuccess:
		return m.story(m.narrator.T("outro"), m.narrator.T("button.quit"))
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.narrator.T("title")))
	sb.WriteString("  ")
	sb.WriteString(statusStyle.Render(m.status()))
	sb.WriteString("\n")

	lvl := m.sess.Level()
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%s  %s", lvl.Word, m.narrator.Objective(lvl.Objective()))))
	sb.WriteString("\n")

	line := m.narrator.Line()
	sb.WriteString(moodStyles[line.Mood].Render(line.Text))
	sb.WriteString("\n")

	drawField(m.canvas, m.field, m.sess)
	sb.WriteString(fieldStyle.Render(m.canvas.View()))
	sb.WriteString("\n")

	if m.telemetry {
		sb.WriteString(fieldStyle.Render(m.chart.View()))
		sb.WriteString("\n")
	}
	if m.ctrl != nil {
		logs := statusStyle.Render(m.mirrorStatus())
		if len(m.logs) > 0 {
			logs = strings.Join(m.logs, "\n")
		}
		sb.WriteString(logStyle.Width(max(m.width-4, minCols)).Render(logs))
		sb.WriteString("\n")
	}

	sb.WriteString(statusStyle.Render(m.help()))
	return sb.String()
}

func (m playModel) status() string {
	if m.sess.Arm().State != arm.Idle {
		return m.narrator.T("status.placing")
	}
	return m.narrator.T("status.level", m.sess.LevelIndex()+1, m.sess.LevelCount())
}

func (m playModel) mirrorStatus() string {
	out := fmt.Sprintf("Mirror %d Hz", m.ctrl.Hz())
	if m.measured {
		out += fmt.Sprintf("  drift %.1f°", m.drift*180/math.Pi)
	}
	return out
}

func (m playModel) help() string {
	next := m.narrator.T("button.next")
	if m.sess.Arm().State == arm.Holding {
		next = "place"
	}
	return fmt.Sprintf("letters: pick  •  enter: %s  •  space: %s  •  tab: telemetry  •  esc: %s",
		next, m.narrator.T("button.speak"), m.narrator.T("button.quit"))
}

// story renders the intro and success screens.
func (m playModel) story(text, button string) string {
	width := max(min(m.width-8, 72), 30)
	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(m.narrator.T("title")),
		"",
		lipgloss.NewStyle().Width(width).Render(text),
		"",
		buttonStyle.Render(button),
	)
	box := storyStyle.Render(body)
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
