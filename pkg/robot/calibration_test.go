package robot

import (
	"math"
	"strings"
	"testing"

	"github.com/gwillem/wordcrane/pkg/kinematics"
)

func TestMotorCalibration_Normalize(t *testing.T) {
	cal := MotorCalibration{
		RangeMin: 1000,
		RangeMax: 3000,
	}

	tests := []struct {
		raw      int
		expected float64
	}{
		{1000, -100.0}, // min -> -100
		{3000, 100.0},  // max -> 100
		{2000, 0.0},    // mid -> 0
		{1500, -50.0},  // quarter -> -50
		{2500, 50.0},   // three-quarter -> 50
	}

	for _, tt := range tests {
		got := cal.Normalize(tt.raw)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("Normalize(%d) = %f, want %f", tt.raw, got, tt.expected)
		}
	}
}

func TestMotorCalibration_Denormalize(t *testing.T) {
	cal := MotorCalibration{
		RangeMin: 1000,
		RangeMax: 3000,
	}

	tests := []struct {
		norm     float64
		expected int
	}{
		{-100.0, 1000}, // -100 -> min
		{100.0, 3000},  // 100 -> max
		{0.0, 2000},    // 0 -> mid
		{-50.0, 1500},  // -50 -> quarter
		{50.0, 2500},   // 50 -> three-quarter
	}

	for _, tt := range tests {
		got := cal.Denormalize(tt.norm)
		if got != tt.expected {
			t.Errorf("Denormalize(%f) = %d, want %d", tt.norm, got, tt.expected)
		}
	}
}

func TestMotorCalibration_RoundTrip(t *testing.T) {
	cal := MotorCalibration{
		RangeMin: 823,
		RangeMax: 3540,
	}

	// Test round-trip: raw -> normalized -> raw
	for raw := cal.RangeMin; raw <= cal.RangeMax; raw += 100 {
		norm := cal.Normalize(raw)
		back := cal.Denormalize(norm)
		if math.Abs(float64(back-raw)) > 1 {
			t.Errorf("Round-trip failed: %d -> %f -> %d", raw, norm, back)
		}
	}
}

func TestMotorCalibration_FromAngle(t *testing.T) {
	cal := MotorCalibration{AngleMin: -180, AngleMax: 0}

	tests := []struct {
		rad      float64
		expected float64
	}{
		{-math.Pi, -100.0},
		{0, 100.0},
		{-math.Pi / 2, 0.0},
		{-math.Pi / 4, 50.0},
		{math.Pi / 2, 100.0},     // saturates high
		{-3 * math.Pi / 2, -100}, // saturates low
	}

	for _, tt := range tests {
		got := cal.FromAngle(tt.rad)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("FromAngle(%f) = %f, want %f", tt.rad, got, tt.expected)
		}
	}

	if got := (MotorCalibration{}).FromAngle(1); got != 0 {
		t.Errorf("FromAngle with empty span = %f, want 0", got)
	}
}

func TestMotorCalibration_AngleRoundTrip(t *testing.T) {
	cal := MotorCalibration{AngleMin: 0, AngleMax: 180}
	for deg := 0.0; deg <= 180; deg += 15 {
		rad := deg * math.Pi / 180
		back := cal.ToAngle(cal.FromAngle(rad))
		if math.Abs(back-rad) > 1e-9 {
			t.Errorf("Round-trip failed: %f -> %f", rad, back)
		}
	}
}

func TestCalibration_MotorIDs(t *testing.T) {
	cal := DefaultCalibration()

	ids := cal.MotorIDs()
	expected := []int{2, 3, 6}

	if len(ids) != len(expected) {
		t.Fatalf("MotorIDs returned %d IDs, want %d", len(ids), len(expected))
	}

	for i, id := range ids {
		if id != expected[i] {
			t.Errorf("MotorIDs()[%d] = %d, want %d", i, id, expected[i])
		}
	}
}

func TestCalibration_ByID(t *testing.T) {
	cal := Calibration{
		ShoulderLift: MotorCalibration{ID: 2, RangeMin: 100, RangeMax: 200},
		Gripper:      MotorCalibration{ID: 6, RangeMin: 300, RangeMax: 400},
	}

	name, mc, ok := cal.ByID(2)
	if !ok {
		t.Fatal("ByID(2) returned false")
	}
	if name != ShoulderLift {
		t.Errorf("ByID(2) returned name %s, want shoulder_lift", name)
	}
	if mc.RangeMin != 100 {
		t.Errorf("ByID(2) returned wrong calibration: %+v", mc)
	}

	_, _, ok = cal.ByID(99)
	if ok {
		t.Error("ByID(99) should return false")
	}
}

func TestCalibration_Validate(t *testing.T) {
	if err := DefaultCalibration().Validate(); err != nil {
		t.Errorf("default calibration invalid: %v", err)
	}

	missing := DefaultCalibration()
	delete(missing, ElbowFlex)
	if err := missing.Validate(); err == nil || !strings.Contains(err.Error(), "elbow_flex") {
		t.Errorf("missing joint: err = %v", err)
	}

	dup := DefaultCalibration()
	g := dup[Gripper]
	g.ID = 2
	dup[Gripper] = g
	if err := dup.Validate(); err == nil || !strings.Contains(err.Error(), "servo ID 2") {
		t.Errorf("duplicate ID: err = %v", err)
	}
}

func TestCalibration_Targets(t *testing.T) {
	cal := DefaultCalibration()

	open := cal.Targets(Pose{Angles: kinematics.Angles{Shoulder: -math.Pi / 2, Elbow: math.Pi / 2}})
	if math.Abs(open[ShoulderLift]) > 0.001 || math.Abs(open[ElbowFlex]) > 0.001 {
		t.Errorf("mid pose = %v, want shoulder and elbow at 0", open)
	}
	if open[Gripper] != GripOpen {
		t.Errorf("gripper = %f, want open", open[Gripper])
	}

	closed := cal.Targets(Pose{Grip: true})
	if closed[Gripper] != GripClosed {
		t.Errorf("gripper = %f, want closed", closed[Gripper])
	}

	partial := Calibration{ElbowFlex: cal[ElbowFlex]}.Targets(Pose{})
	if len(partial) != 1 {
		t.Errorf("uncalibrated joints written: %v", partial)
	}
}

func TestCalibration_PoseOf(t *testing.T) {
	cal := DefaultCalibration()

	tests := []struct {
		name string
		pose Pose
	}{
		{"reaching left", Pose{Angles: kinematics.Angles{Shoulder: -2.5, Elbow: 0.4}}},
		{"folded, holding", Pose{Angles: kinematics.Angles{Shoulder: -0.3, Elbow: 2.9}, Grip: true}},
		{"straight up", Pose{Angles: kinematics.Angles{Shoulder: -math.Pi / 2}}},
	}
	for _, tt := range tests {
		got := cal.PoseOf(cal.Targets(tt.pose))
		if math.Abs(got.Angles.Shoulder-tt.pose.Angles.Shoulder) > 1e-9 ||
			math.Abs(got.Angles.Elbow-tt.pose.Angles.Elbow) > 1e-9 || got.Grip != tt.pose.Grip {
			t.Errorf("%s: PoseOf(Targets(p)) = %+v, want %+v", tt.name, got, tt.pose)
		}
	}

	if cal.PoseOf(map[MotorName]float64{}).Grip {
		t.Error("missing gripper reading reported as closed")
	}
}
