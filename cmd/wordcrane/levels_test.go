package main

import (
	"strings"
	"testing"

	"github.com/gwillem/wordcrane/pkg/level"
	"github.com/gwillem/wordcrane/pkg/robot"
)

func TestLevelTable(t *testing.T) {
	campaign, err := level.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	out := levelTable(campaign)
	for _, want := range []string{"CASĂ", "ALBINĂ", "PISICĂ", "A-L-B-I-N-Ă", "1,3,5", "rain", "catch", "complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("level table missing %q:\n%s", want, out)
		}
	}
}

func TestCalibrationModel_Record(t *testing.T) {
	m := calibrationModel{
		joints:       []robot.MotorName{robot.ElbowFlex, robot.Gripper},
		spans:        robot.DefaultCalibration(),
		curPositions: map[robot.MotorName]int{robot.ElbowFlex: 2000, robot.Gripper: 2000},
		minPositions: map[robot.MotorName]int{robot.ElbowFlex: 2000, robot.Gripper: 2000},
		maxPositions: map[robot.MotorName]int{robot.ElbowFlex: 2000, robot.Gripper: 2000},
	}
	for _, pos := range []int{1800, 2600, 2200} {
		m.record(robot.ElbowFlex, pos)
	}
	for _, pos := range []int{1000, 3000, 1200} {
		m.record(robot.Gripper, pos)
	}

	cal := m.calibration()
	elbow := cal[robot.ElbowFlex]
	if elbow.RangeMin != 1800 || elbow.RangeMax != 2600 {
		t.Errorf("elbow range = %d..%d, want 1800..2600", elbow.RangeMin, elbow.RangeMax)
	}
	if elbow.ID != robot.DefaultIDs[robot.ElbowFlex] || elbow.AngleMax != 180 {
		t.Errorf("elbow lost its crane span: %+v", elbow)
	}

	tests := []struct {
		name      robot.MotorName
		now, span string
	}{
		{robot.ElbowFlex, "90°", "0°..180°"},
		{robot.Gripper, "closed", "open..closed"},
	}
	for _, tt := range tests {
		now, span := m.crane(tt.name, cal[tt.name])
		if now != tt.now || span != tt.span {
			t.Errorf("crane(%s) = %q, %q, want %q, %q", tt.name, now, span, tt.now, tt.span)
		}
	}

	view := m.View()
	for _, want := range []string{"elbow_flex", "1800..2600", "90°", "Maps to"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
