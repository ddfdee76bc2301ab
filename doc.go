// Package wordcrane is a word building game for young Romanian readers.
//
// A two-segment crane picks letter tiles off a conveyor belt (or catches
// them as they rain down) and drops them into the slots of a target word.
// Picking the right letter advances the word; a wrong one is returned to
// the belt.
//
// # Installation
//
//	go install github.com/gwillem/wordcrane/cmd/wordcrane@latest
//
// # Usage
//
//	wordcrane play
//	wordcrane levels
//
// An SO-101 arm can mirror the crane. Calibrate it once, then play with
// the arm attached:
//
//	wordcrane setup
//	wordcrane play --mirror
//
// # Packages
//
//   - cmd/wordcrane: CLI with play, levels and setup commands
//   - pkg/kinematics: two-bone inverse kinematics
//   - pkg/arm: claw motion and arm states
//   - pkg/board: letters, slots and their entry animation
//   - pkg/level: campaign files
//   - pkg/game: session, input handling and the pickup/placement machine
//   - pkg/narration: localized feedback
//   - pkg/audio: synthesized sound cues
//   - pkg/config: environment configuration and logging
//   - pkg/robot: servo arm control and calibration
//   - pkg/mirror: follow loop driving the arm from the crane pose
package wordcrane
