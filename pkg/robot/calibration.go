package robot

import (
	"fmt"
	"math"
	"strings"
)

// MotorCalibration holds calibration data for a single motor.
type MotorCalibration struct {
	ID           int `json:"id"`
	DriveMode    int `json:"drive_mode"`
	HomingOffset int `json:"homing_offset"`
	RangeMin     int `json:"range_min"`
	RangeMax     int `json:"range_max"`

	// Crane angles, in degrees, that land on RangeMin and RangeMax.
	AngleMin float64 `json:"angle_min"`
	AngleMax float64 `json:"angle_max"`
}

// Calibration holds calibration data for all motors, keyed by motor name.
type Calibration map[MotorName]MotorCalibration

// DefaultCalibration covers the full servo range with the crane's natural
// angle spans: the upper half plane for the shoulder and a fully open to
// fully folded elbow.
func DefaultCalibration() Calibration {
	return Calibration{
		ShoulderLift: {ID: DefaultIDs[ShoulderLift], RangeMin: 0, RangeMax: 4095, AngleMin: -180, AngleMax: 0},
		ElbowFlex:    {ID: DefaultIDs[ElbowFlex], RangeMin: 0, RangeMax: 4095, AngleMin: 0, AngleMax: 180},
		Gripper:      {ID: DefaultIDs[Gripper], RangeMin: 1400, RangeMax: 2600},
	}
}

// Normalize converts a raw servo position to a normalized value in the range [-100, 100].
func (c MotorCalibration) Normalize(raw int) float64 {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	if rangeSize == 0 {
		return 0
	}
	return (float64(raw-c.RangeMin)/rangeSize)*200 - 100
}

// Denormalize converts a normalized value [-100, 100] to a raw servo position.
func (c MotorCalibration) Denormalize(norm float64) int {
	rangeSize := float64(c.RangeMax - c.RangeMin)
	return int((norm+100)/200*rangeSize) + c.RangeMin
}

// FromAngle maps a crane angle in radians to a normalized position,
// saturating outside the calibrated span.
func (c MotorCalibration) FromAngle(rad float64) float64 {
	span := c.AngleMax - c.AngleMin
	if span == 0 {
		return 0
	}
	deg := rad * 180 / math.Pi
	norm := (deg-c.AngleMin)/span*200 - 100
	return math.Max(-100, math.Min(100, norm))
}

// ToAngle is the inverse of FromAngle.
func (c MotorCalibration) ToAngle(norm float64) float64 {
	deg := (norm+100)/200*(c.AngleMax-c.AngleMin) + c.AngleMin
	return deg * math.Pi / 180
}

// MotorIDs returns the servo IDs for all motors in the calibration.
func (c Calibration) MotorIDs() []int {
	ids := make([]int, 0, len(c))
	for _, name := range Joints() {
		if mc, ok := c[name]; ok {
			ids = append(ids, mc.ID)
		}
	}
	return ids
}

// ByID returns motor name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (MotorName, MotorCalibration, bool) {
	for name, mc := range c {
		if mc.ID == id {
			return name, mc, true
		}
	}
	return "", MotorCalibration{}, false
}

// Validate reports missing joints and duplicate IDs.
func (c Calibration) Validate() error {
	var missing []string
	seen := map[int]MotorName{}
	for _, name := range Joints() {
		mc, ok := c[name]
		if !ok {
			missing = append(missing, string(name))
			continue
		}
		if other, dup := seen[mc.ID]; dup {
			return fmt.Errorf("servo ID %d used by %s and %s", mc.ID, other, name)
		}
		seen[mc.ID] = name
	}
	if len(missing) > 0 {
		return fmt.Errorf("calibration missing %s", strings.Join(missing, ", "))
	}
	return nil
}
