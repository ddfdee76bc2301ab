// Package robot drives a physical SO-101 arm that mirrors the on-screen crane.
package robot

// MotorName identifies a motor in the arm.
type MotorName string

// The crane is planar, so only the lift, the elbow and the gripper move.
const (
	ShoulderLift MotorName = "shoulder_lift"
	ElbowFlex    MotorName = "elbow_flex"
	Gripper      MotorName = "gripper"
)

// Joints returns the driven motors in servo ID order.
func Joints() []MotorName {
	return []MotorName{
		ShoulderLift,
		ElbowFlex,
		Gripper,
	}
}

// DefaultIDs maps each joint to its servo ID on a stock SO-101.
var DefaultIDs = map[MotorName]int{
	ShoulderLift: 2,
	ElbowFlex:    3,
	Gripper:      6,
}
