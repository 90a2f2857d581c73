package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/chomp/logging"
	"go.viam.com/chomp/motionplan/chomp"
)

const testModelJSON = `{
	"name": "slider",
	"joints": [
		{"id": "pan", "type": "revolute", "min": -2, "max": 2},
		{"id": "tilt", "type": "continuous"}
	]
}`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestRunPlans(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "slider.json", testModelJSON)
	params := writeFile(t, dir, "params.json5", `{
		trajectory_initialization_method: "linear",
		trajectory_duration: 1,
		trajectory_discretization: 0.25,
	}`)
	req := writeFile(t, dir, "reach.json", `{
		group_name: "slider",
		start_state: {joints: {pan: 0, tilt: 0}},
		goal: {joint_constraints: [
			{joint_name: "pan", position: 1, tolerance_above: 0.01, tolerance_below: 0.01},
		]},
	}`)

	var out bytes.Buffer
	err := newApp(&out).Run([]string{
		"chomp-plan",
		"--model", model,
		"--params", params,
		"--waypoints",
		"--loop", "3",
		"--plot", "--out", dir,
		req,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "Success")
	test.That(t, out.String(), test.ShouldContainSubstring, "0.5000")
	test.That(t, out.String(), test.ShouldContainSubstring, "P95")
	test.That(t, out.String(), test.ShouldContainSubstring, "processing time (ms):")

	_, err = os.Stat(filepath.Join(dir, "reach.png"))
	test.That(t, err, test.ShouldBeNil)
}

func TestRunReportsFailures(t *testing.T) {
	dir := t.TempDir()
	model := writeFile(t, dir, "slider.json", testModelJSON)
	obstacles := writeFile(t, dir, "obstacles.json5", `[
		{name: "wall", min: {pan: 0.4}, max: {pan: 0.6}},
	]`)
	req := writeFile(t, dir, "blocked.json", `{
		group_name: "slider",
		start_state: {joints: {pan: 0}},
		goal: {joint_constraints: [{joint_name: "pan", position: 1}]},
	}`)

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"chomp-plan", "--model", model, "--obstacles", obstacles, req})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "1 of 1")
	test.That(t, out.String(), test.ShouldContainSubstring, chomp.MotionInCollision.String())

	err = newApp(&out).Run([]string{"chomp-plan", "--model", model})
	test.That(t, err, test.ShouldNotBeNil)

	err = newApp(&out).Run([]string{"chomp-plan", req})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--model")
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	test.That(t, newApp(&out).Run([]string{"chomp-plan", "schema"}), test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "start_state")
	test.That(t, out.String(), test.ShouldContainSubstring, "joint_constraints")
}

func TestPlanAllSharesScene(t *testing.T) {
	dir := t.TempDir()
	scene, err := loadScene(writeFile(t, dir, "slider.json", testModelJSON), "", "")
	test.That(t, err, test.ShouldBeNil)

	var files []string
	for i, body := range []string{
		`{group_name: "slider", start_state: {joints: {pan: 0}}, goal: {joint_constraints: [{joint_name: "pan", position: 1, tolerance_above: 0.01, tolerance_below: 0.01}]}}`,
		`{group_name: "slider", start_state: {joints: {pan: 0}}, goal: {joint_constraints: [{joint_name: "pan", position: 3}]}}`,
		`{group_name: "slider", start_state: {joints: {tilt: 0.1}}, goal: {joint_constraints: [{joint_name: "tilt", position: 6, tolerance_above: 0.01, tolerance_below: 0.01}]}}`,
	} {
		files = append(files, writeFile(t, dir, string(rune('a'+i))+".json", body))
	}
	jobs, err := loadRequests(files)
	test.That(t, err, test.ShouldBeNil)

	planner := chomp.NewPlanner(logging.NewTestLogger(t), nil)
	outcomes, err := planAll(context.Background(), planner, scene, chomp.NewBasicParameters(), jobs, 3, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(outcomes), test.ShouldEqual, 3)

	for _, o := range outcomes {
		test.That(t, len(o.responses), test.ShouldEqual, 2)
	}
	test.That(t, outcomes[0].last().ErrorCode, test.ShouldEqual, chomp.Success)
	test.That(t, outcomes[1].last().ErrorCode, test.ShouldEqual, chomp.GoalOutOfBounds)
	test.That(t, outcomes[2].last().ErrorCode, test.ShouldEqual, chomp.Success)
	test.That(t, outcomes[0].name(), test.ShouldEqual, "a")
	test.That(t, len(outcomes[0].last().Trajectory.Points), test.ShouldEqual, 101)
}
