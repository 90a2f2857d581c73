package chomp

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/chomp/motionplan"
	"go.viam.com/chomp/referenceframe"
)

func testScene(t *testing.T) *motionplan.PlanningScene {
	t.Helper()
	m, err := referenceframe.UnmarshalModelJSON([]byte(`{
		"name": "testbot",
		"joints": [
			{"id": "mount", "type": "fixed"},
			{"id": "shoulder", "type": "revolute", "min": -2, "max": 2},
			{"id": "elbow", "type": "revolute", "min": -2.5, "max": 2.5},
			{"id": "wrist", "type": "continuous"}
		],
		"groups": [
			{"name": "arm", "joints": ["shoulder", "elbow", "wrist"]},
			{"name": "shoulder_only", "joints": ["shoulder"]},
			{"name": "base", "joints": ["mount"]}
		]
	}`), "")
	test.That(t, err, test.ShouldBeNil)
	return motionplan.NewPlanningScene(m)
}

func jointGoal(constraints ...motionplan.JointConstraint) *motionplan.Constraints {
	return &motionplan.Constraints{JointConstraints: constraints}
}

func atPosition(name string, pos float64) motionplan.JointConstraint {
	return motionplan.JointConstraint{JointName: name, Position: pos, ToleranceAbove: 1e-3, ToleranceBelow: 1e-3}
}

func fiveStepParams(method InitializationMethod) *PlanningParameters {
	params := NewBasicParameters()
	params.InitializationMethod = method
	params.TrajectoryDuration = 1.0
	params.TrajectoryDiscretization = 0.25
	return params
}

func gridWithEndpoints(t *testing.T, n int, start, goal []float64) *Grid {
	t.Helper()
	g, err := NewGrid(n, len(start))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.SetPoint(g.StartIndex(), start), test.ShouldBeNil)
	test.That(t, g.SetPoint(g.GoalIndex(), goal), test.ShouldBeNil)
	return g
}
