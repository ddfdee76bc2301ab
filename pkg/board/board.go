// Package board tracks the letter tiles and the word slots of one level.
package board

import (
	"fmt"
	"math/rand/v2"

	"github.com/gwillem/wordcrane/pkg/kinematics"
)

// Point is re-exported so callers rarely need the kinematics import.
type Point = kinematics.Point

// SpawnMode selects how letters enter the playfield.
type SpawnMode uint8

const (
	Conveyor SpawnMode = iota // slide in from the left along the belt
	Rain                      // fall from above onto the landing line
)

func (m SpawnMode) String() string {
	switch m {
	case Conveyor:
		return "conveyor"
	case Rain:
		return "rain"
	default:
		return fmt.Sprintf("SpawnMode(%d)", m)
	}
}

// ParseSpawnMode maps a level file value to a SpawnMode.
// "raining" is accepted as an alias for rain.
func ParseSpawnMode(s string) (SpawnMode, error) {
	switch s {
	case "", "conveyor":
		return Conveyor, nil
	case "rain", "raining":
		return Rain, nil
	}
	return 0, fmt.Errorf("unknown spawn mode %q", s)
}

// Letter is a tile the arm can carry.
type Letter struct {
	Char    string
	Pos     Point // center of the tile
	Rest    Point // where the tile settles when nobody holds it
	Arrived bool
	Held    bool
	Slot    *Slot
}

// Contains reports whether p lies on the tile.
func (l *Letter) Contains(p Point, lay Layout) bool {
	return p.X >= l.Pos.X-lay.TileW/2 && p.X <= l.Pos.X+lay.TileW/2 &&
		p.Y >= l.Pos.Y-lay.TileH/2 && p.Y <= l.Pos.Y+lay.TileH/2
}

// Slot is one position of the target word.
type Slot struct {
	Index     int
	Expected  string
	Center    Point
	Occupant  *Letter
	Prefilled bool
}

// Filled reports whether a letter sits in the slot.
func (s *Slot) Filled() bool {
	return s.Occupant != nil
}

// Correct reports whether the slot holds its expected letter.
func (s *Slot) Correct() bool {
	return s.Occupant != nil && s.Occupant.Char == s.Expected
}

// Setup describes a level in board terms.
type Setup struct {
	Phonemes    []string
	Prefilled   []int
	Distractors []string
	Mode        SpawnMode
}

// Board owns the slots and the letter pool of a level.
type Board struct {
	Layout  Layout
	Mode    SpawnMode
	Slots   []*Slot
	Letters []*Letter
	// Pointer is the first slot not yet correctly filled, skipping
	// pre-filled slots. It equals len(Slots) once the word is done.
	Pointer int
}

// New lays out slots and spawns the shuffled letter pool.
func New(lay Layout, setup Setup, rng *rand.Rand) *Board {
	b := &Board{
		Layout: lay,
		Mode:   setup.Mode,
	}

	prefilled := make(map[int]bool, len(setup.Prefilled))
	for _, i := range setup.Prefilled {
		prefilled[i] = true
	}

	n := len(setup.Phonemes)
	row := float64(n)*(lay.SlotW+lay.SlotGap) - lay.SlotGap
	left := (lay.Width - row) / 2

	pool := make([]string, 0, n+len(setup.Distractors))
	for i, ph := range setup.Phonemes {
		slot := &Slot{
			Index:    i,
			Expected: ph,
			Center: Point{
				X: left + float64(i)*(lay.SlotW+lay.SlotGap) + lay.SlotW/2,
				Y: lay.SlotY + lay.SlotH/2,
			},
		}
		if prefilled[i] {
			fixed := &Letter{Char: ph, Pos: slot.Center, Rest: slot.Center, Arrived: true, Slot: slot}
			slot.Occupant = fixed
			slot.Prefilled = true
		} else {
			pool = append(pool, ph)
		}
		b.Slots = append(b.Slots, slot)
	}
	pool = append(pool, setup.Distractors...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for i, ch := range pool {
		b.Letters = append(b.Letters, spawn(lay, setup.Mode, ch, i, len(pool), rng))
	}

	b.skipPrefilled()
	return b
}

func spawn(lay Layout, mode SpawnMode, ch string, i, count int, rng *rand.Rand) *Letter {
	step := lay.TileW + lay.TileGap
	if mode == Rain {
		span := lay.Width - 2*lay.RainMargin
		x := lay.RainMargin + span/float64(count+1)*float64(i+1)
		return &Letter{
			Char: ch,
			Pos:  Point{X: x, Y: -lay.TileH/2 - float64(rng.IntN(lay.RainJitter+1))},
			Rest: Point{X: x, Y: lay.BeltY},
		}
	}
	return &Letter{
		Char: ch,
		Pos:  Point{X: -lay.TileW/2 - float64(i)*step, Y: lay.BeltY},
		Rest: Point{X: lay.BeltLeft + float64(i)*step + lay.TileW/2, Y: lay.BeltY},
	}
}

// Advance moves every free letter one tick along its entry path.
func (b *Board) Advance() {
	speed := b.Layout.EntrySpeed
	for _, l := range b.Letters {
		if l.Arrived || l.Held || l.Slot != nil {
			continue
		}
		switch b.Mode {
		case Rain:
			l.Pos.Y += speed
			if l.Pos.Y >= l.Rest.Y {
				l.Pos = l.Rest
				l.Arrived = true
			}
		default:
			l.Pos.X += speed
			if l.Pos.X >= l.Rest.X {
				l.Pos = l.Rest
				l.Arrived = true
			}
		}
	}
}

// LetterAt returns the topmost letter under p, or nil.
func (b *Board) LetterAt(p Point) *Letter {
	for i := len(b.Letters) - 1; i >= 0; i-- {
		l := b.Letters[i]
		if l.Contains(p, b.Layout) {
			return l
		}
	}
	return nil
}

// Pickable reports whether the player may ask for l right now.
// Mid-flight conveyor tiles wait for arrival; falling rain tiles may be
// caught once they are on the playfield.
func (b *Board) Pickable(l *Letter) bool {
	if l == nil || l.Held || l.Slot != nil {
		return false
	}
	if l.Arrived {
		return true
	}
	return b.Mode == Rain && b.Visible(l)
}

// Visible reports whether any part of l is inside the playfield.
func (b *Board) Visible(l *Letter) bool {
	lay := b.Layout
	return l.Pos.X+lay.TileW/2 > 0 && l.Pos.X-lay.TileW/2 < lay.Width &&
		l.Pos.Y+lay.TileH/2 > 0 && l.Pos.Y-lay.TileH/2 < lay.Height
}

// CurrentSlot returns the slot at the pointer, or nil when the word is done.
func (b *Board) CurrentSlot() *Slot {
	if b.Pointer >= len(b.Slots) {
		return nil
	}
	return b.Slots[b.Pointer]
}

// AdvancePointer moves past the current slot and any pre-filled ones after it.
func (b *Board) AdvancePointer() {
	if b.Pointer < len(b.Slots) {
		b.Pointer++
	}
	b.skipPrefilled()
}

func (b *Board) skipPrefilled() {
	for b.Pointer < len(b.Slots) && b.Slots[b.Pointer].Prefilled {
		b.Pointer++
	}
}

// FilledCount counts occupied slots, pre-filled ones included.
func (b *Board) FilledCount() int {
	n := 0
	for _, s := range b.Slots {
		if s.Filled() {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is occupied.
func (b *Board) Complete() bool {
	return b.FilledCount() == len(b.Slots)
}

// Bind seats l in s. Pre-filled slots never accept a new occupant.
func (b *Board) Bind(l *Letter, s *Slot) bool {
	if s.Prefilled || s.Occupant != nil {
		return false
	}
	s.Occupant = l
	l.Slot = s
	l.Pos = s.Center
	return true
}

// Unbind frees l from its slot, if any.
func (b *Board) Unbind(l *Letter) {
	if l.Slot == nil {
		return
	}
	if l.Slot.Occupant == l {
		l.Slot.Occupant = nil
	}
	l.Slot = nil
}

// ReturnToRest puts l back on its landing spot, settled.
func (b *Board) ReturnToRest(l *Letter) {
	l.Pos = l.Rest
	l.Arrived = true
}

// Word renders the slots, using '_' for empty ones.
func (b *Board) Word() string {
	var out []byte
	for _, s := range b.Slots {
		if s.Occupant != nil {
			out = append(out, s.Occupant.Char...)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
