package main

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/wordcrane/pkg/arm"
	"github.com/gwillem/wordcrane/pkg/board"
	"github.com/gwillem/wordcrane/pkg/game"
)

var (
	slotDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	slotCurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	slotFutureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	slotGivenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	tileStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	tileCharStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	beltStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	armStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	jointStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// field maps the playfield onto a grid of terminal cells.
type field struct {
	lay        board.Layout
	cols, rows int
}

func (f field) cell(p board.Point) canvas.Point {
	return canvas.Point{
		X: int(math.Floor(p.X * float64(f.cols) / f.lay.Width)),
		Y: int(math.Floor(p.Y * float64(f.rows) / f.lay.Height)),
	}
}

// point returns the playfield position at the center of cell (x, y).
func (f field) point(x, y int) board.Point {
	return board.Point{
		X: (float64(x) + 0.5) * f.lay.Width / float64(f.cols),
		Y: (float64(y) + 0.5) * f.lay.Height / float64(f.rows),
	}
}

func (f field) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.cols && y < f.rows
}

// drawField renders the whole scene onto c.
func drawField(c *canvas.Model, f field, s *game.Session) {
	c.Clear()
	b := s.Board()

	drawGround(c, f, b.Mode)

	current := b.CurrentSlot()
	for _, slot := range b.Slots {
		style := slotFutureStyle
		switch {
		case slot.Prefilled:
			style = slotGivenStyle
		case slot == current:
			style = slotCurrentStyle
		case slot.Filled():
			style = slotDoneStyle
		}
		drawBox(c, f, slot.Center, f.lay.SlotW, f.lay.SlotH, style)
		if slot.Prefilled {
			if slot.Occupant != nil {
				setRune(c, f.cell(slot.Center), slot.Occupant.Char, slotGivenStyle)
			}
			continue
		}
		badge := f.cell(board.Point{X: slot.Center.X, Y: slot.Center.Y - f.lay.SlotH/2 - 15})
		c.SetStringWithStyle(badge, strconv.Itoa(slot.Index+1), style)
	}

	var held *board.Letter
	for _, l := range b.Letters {
		switch {
		case l.Held:
			held = l
		case l.Slot != nil:
			setRune(c, f.cell(l.Pos), l.Char, slotDoneStyle.Bold(true))
		default:
			drawTile(c, f, l)
		}
	}

	drawArm(c, f, s.Arm())
	if held != nil {
		drawTile(c, f, held)
	}
}

func drawGround(c *canvas.Model, f field, mode board.SpawnMode) {
	r := '═'
	if mode == board.Rain {
		r = '▁'
	}
	y := f.cell(board.Point{Y: f.lay.BeltY + f.lay.TileH/2 + 10}).Y
	c.FillLine(y, canvas.NewCellWithStyle(r, beltStyle))
}

func drawTile(c *canvas.Model, f field, l *board.Letter) {
	drawBox(c, f, l.Pos, f.lay.TileW, f.lay.TileH, tileStyle)
	setRune(c, f.cell(l.Pos), l.Char, tileCharStyle)
}

// drawBox outlines a w x h rectangle centered on center with rounded
// corners. Boxes smaller than two cells are skipped.
func drawBox(c *canvas.Model, f field, center board.Point, w, h float64, style lipgloss.Style) {
	tl := f.cell(board.Point{X: center.X - w/2, Y: center.Y - h/2})
	br := f.cell(board.Point{X: center.X + w/2, Y: center.Y + h/2})
	if br.X-tl.X < 2 || br.Y-tl.Y < 2 {
		return
	}
	tr := canvas.Point{X: br.X, Y: tl.Y}
	bl := canvas.Point{X: tl.X, Y: br.Y}
	for _, edge := range [][2]canvas.Point{{tl, tr}, {bl, br}, {tl, bl}, {tr, br}} {
		graph.DrawLinePoints(c, graph.GetLinePoints(edge[0], edge[1]), runes.ArcLineStyle, style)
	}
}

// drawArm plots both segments on a braille grid spanning the playfield,
// then marks the joints on top.
func drawArm(c *canvas.Model, f field, a *arm.Arm) {
	base, elbow, claw := a.Joints()

	g := graph.NewBrailleGrid(f.cols, f.rows, 0, f.lay.Width, 0, f.lay.Height)
	dot := func(p board.Point) canvas.Point {
		return g.GridPoint(canvas.Float64Point{X: p.X, Y: f.lay.Height - p.Y})
	}
	for _, seg := range [][2]board.Point{{base, elbow}, {elbow, claw}} {
		for _, p := range graph.GetLinePoints(dot(seg[0]), dot(seg[1])) {
			g.Set(p)
		}
	}
	graph.DrawBraillePatterns(c, canvas.Point{}, g.BraillePatterns(), armStyle)

	c.SetCell(f.cell(base), canvas.NewCellWithStyle('▲', jointStyle))
	c.SetCell(f.cell(elbow), canvas.NewCellWithStyle('●', jointStyle))
	clawRune := '▽'
	if a.Held != nil {
		clawRune = '▼'
	}
	c.SetCell(f.cell(claw), canvas.NewCellWithStyle(clawRune, jointStyle))
}

// setRune writes the first rune of s at p.
func setRune(c *canvas.Model, p canvas.Point, s string, style lipgloss.Style) {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return
	}
	c.SetCell(p, canvas.NewCellWithStyle(r, style))
}
