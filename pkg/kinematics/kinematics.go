// Package kinematics solves the two-segment arm used by the crane.
//
// Both segments have the same length. Angles are in radians and follow
// screen coordinates: X grows to the right, Y grows downward.
package kinematics

import "math"

// Point is a position in playfield pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Angles holds the two joint angles of the arm.
type Angles struct {
	Shoulder float64 // absolute angle of the first segment
	Elbow    float64 // angle of the second segment relative to the first
}

// Solution is the result of a Solve call.
type Solution struct {
	Angles Angles
	// Reached is the point the arm actually aims at. It differs from the
	// requested target only when the target is out of reach.
	Reached Point
}

// Solve computes joint angles that put the end effector on target.
//
// Targets further than 2*length from base are pulled onto the reach circle
// along the same direction before any angle is computed. A target that
// coincides with the base has no defined direction; prev is returned as is.
func Solve(target, base Point, length float64, prev Angles) Solution {
	d := target.Sub(base)
	dist := math.Hypot(d.X, d.Y)
	if dist == 0 {
		return Solution{Angles: prev, Reached: target}
	}

	reach := 2 * length
	if dist > reach {
		dir := math.Atan2(d.Y, d.X)
		d = Point{X: reach * math.Cos(dir), Y: reach * math.Sin(dir)}
		target = base.Add(d)
		dist = reach
	}

	// Law of cosines for the elbow; clamp absorbs rounding at full stretch.
	cosElbow := (dist*dist - 2*length*length) / (2 * length * length)
	cosElbow = math.Max(-1, math.Min(1, cosElbow))
	elbow := math.Acos(cosElbow)

	phi := math.Atan2(d.Y, d.X)
	psi := math.Atan2(length*math.Sin(elbow), length+length*math.Cos(elbow))

	return Solution{
		Angles:  Angles{Shoulder: phi - psi, Elbow: elbow},
		Reached: target,
	}
}

// Forward returns the elbow joint and the end effector for the given angles.
func Forward(base Point, length float64, a Angles) (elbow, effector Point) {
	elbow = Point{
		X: base.X + length*math.Cos(a.Shoulder),
		Y: base.Y + length*math.Sin(a.Shoulder),
	}
	effector = Point{
		X: elbow.X + length*math.Cos(a.Shoulder+a.Elbow),
		Y: elbow.Y + length*math.Sin(a.Shoulder+a.Elbow),
	}
	return elbow, effector
}
