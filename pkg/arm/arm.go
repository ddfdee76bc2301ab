// Package arm animates the crane arm and carries letters with it.
package arm

import (
	"fmt"
	"math"

	"github.com/gwillem/wordcrane/pkg/board"
	"github.com/gwillem/wordcrane/pkg/kinematics"
)

// State is the arm's phase in the pickup/placement cycle.
type State uint8

const (
	Idle State = iota
	MovingToPickup
	Holding
	MovingToSlot
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingToPickup:
		return "moving_to_pickup"
	case Holding:
		return "holding"
	case MovingToSlot:
		return "moving_to_slot"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

const (
	DefaultSegmentLength = 260.0
	DefaultSpeed         = 5.0 // pixels per tick
)

// DefaultRestOffset is where the claw parks, relative to the base.
var DefaultRestOffset = kinematics.Point{X: 100, Y: -100}

// Config holds the fixed arm geometry.
type Config struct {
	Base          kinematics.Point
	SegmentLength float64
	Speed         float64
	RestOffset    kinematics.Point
}

// Arm is a two-segment crane with a claw.
type Arm struct {
	State   State
	Current kinematics.Point
	Target  kinematics.Point
	Held    *board.Letter

	base   kinematics.Point
	length float64
	speed  float64
	rest   kinematics.Point
	angles kinematics.Angles
}

// New creates an arm parked at its rest position.
func New(cfg Config) *Arm {
	if cfg.SegmentLength <= 0 {
		cfg.SegmentLength = DefaultSegmentLength
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.RestOffset == (kinematics.Point{}) {
		cfg.RestOffset = DefaultRestOffset
	}

	rest := cfg.Base.Add(cfg.RestOffset)
	a := &Arm{
		State:   Idle,
		Current: rest,
		Target:  rest,
		base:    cfg.Base,
		length:  cfg.SegmentLength,
		speed:   cfg.Speed,
		rest:    rest,
	}
	a.angles = kinematics.Solve(rest, a.base, a.length, a.angles).Angles
	return a
}

// Update advances the claw one tick toward the target and drags the held
// letter along with it.
//
// Current tracks the requested point even beyond reach. The claw, and
// anything it holds, sits on the reach circle in that direction, and
// AtTarget still fires once Current arrives.
func (a *Arm) Update() {
	d := a.Target.Sub(a.Current)
	dist := math.Hypot(d.X, d.Y)

	if a.within(dist) {
		a.Current = a.Target
	} else {
		ratio := a.speed / dist
		a.Current = kinematics.Point{
			X: a.Current.X + d.X*ratio,
			Y: a.Current.Y + d.Y*ratio,
		}
	}

	a.angles = kinematics.Solve(a.Current, a.base, a.length, a.angles).Angles

	if a.Held != nil {
		_, a.Held.Pos = kinematics.Forward(a.base, a.length, a.angles)
	}
}

// AtTarget reports whether the next Update lands exactly on the target.
func (a *Arm) AtTarget() bool {
	return a.within(a.Current.Dist(a.Target))
}

// within is the arrival predicate shared by Update and AtTarget.
func (a *Arm) within(dist float64) bool {
	return dist < a.speed
}

// MoveToRest sends the claw home and returns the arm to Idle.
func (a *Arm) MoveToRest() {
	a.Target = a.rest
	a.State = Idle
}

// Pick attaches l to the claw. A letter is never slotted and held at once,
// so any slot binding is dropped.
func (a *Arm) Pick(l *board.Letter) {
	a.Held = l
	if l.Slot != nil {
		if l.Slot.Occupant == l {
			l.Slot.Occupant = nil
		}
		l.Slot = nil
	}
}

// Release detaches the held letter.
func (a *Arm) Release() {
	a.Held = nil
}

// Angles returns the joint angles solved on the last update.
func (a *Arm) Angles() kinematics.Angles {
	return a.angles
}

// Joints returns the base, elbow and claw positions for drawing.
func (a *Arm) Joints() (base, elbow, claw kinematics.Point) {
	elbow, claw = kinematics.Forward(a.base, a.length, a.angles)
	return a.base, elbow, claw
}

// Base returns the fixed shoulder position.
func (a *Arm) Base() kinematics.Point {
	return a.base
}

// Rest returns the parking position of the claw.
func (a *Arm) Rest() kinematics.Point {
	return a.rest
}
