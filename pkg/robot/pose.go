package robot

import "github.com/gwillem/wordcrane/pkg/kinematics"

// Gripper positions, normalized.
const (
	GripOpen   = 100.0
	GripClosed = -100.0
)

// Pose is what the crane looks like at one instant.
type Pose struct {
	Angles kinematics.Angles
	Grip   bool // a tile is held
}

// Targets converts p into normalized motor positions. Joints without
// calibration are left out.
func (c Calibration) Targets(p Pose) map[MotorName]float64 {
	out := make(map[MotorName]float64, 3)
	if mc, ok := c[ShoulderLift]; ok {
		out[ShoulderLift] = mc.FromAngle(p.Angles.Shoulder)
	}
	if mc, ok := c[ElbowFlex]; ok {
		out[ElbowFlex] = mc.FromAngle(p.Angles.Elbow)
	}
	if _, ok := c[Gripper]; ok {
		out[Gripper] = GripOpen
		if p.Grip {
			out[Gripper] = GripClosed
		}
	}
	return out
}

// PoseOf reads a crane pose back from normalized motor positions. The
// gripper counts as closed past its midpoint.
func (c Calibration) PoseOf(positions map[MotorName]float64) Pose {
	var p Pose
	if mc, ok := c[ShoulderLift]; ok {
		p.Angles.Shoulder = mc.ToAngle(positions[ShoulderLift])
	}
	if mc, ok := c[ElbowFlex]; ok {
		p.Angles.Elbow = mc.ToAngle(positions[ElbowFlex])
	}
	if g, ok := positions[Gripper]; ok {
		p.Grip = g < 0
	}
	return p
}
