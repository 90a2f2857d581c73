package chomp

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"

	"go.viam.com/chomp/logging"
	"go.viam.com/chomp/motionplan"
)

// fakeOptimizer reports fixed flags and optionally rewrites the grid.
type fakeOptimizer struct {
	initialized   bool
	collisionFree bool
	mutate        func(g *Grid)
	calls         atomic.Int32
}

func (f *fakeOptimizer) Optimize(
	ctx context.Context,
	grid *Grid,
	req *ValidatedRequest,
	scene motionplan.Scene,
	params *PlanningParameters,
) OptimizerResult {
	f.calls.Add(1)
	if f.mutate != nil {
		f.mutate(grid)
	}
	return OptimizerResult{Grid: grid, Initialized: f.initialized, CollisionFree: f.collisionFree}
}

func shoulderRequest(goal float64) *motionplan.MotionRequest {
	return &motionplan.MotionRequest{
		GroupName: "shoulder_only",
		StartState: motionplan.StartState{
			Header: motionplan.Header{Seq: 7, FrameID: "world"},
			Joints: map[string]float64{"shoulder": 0},
		},
		Goal: jointGoal(atPosition("shoulder", goal)),
	}
}

func TestSolveLinear(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	planner := NewPlanner(logger, nil)

	resp, err := planner.Solve(context.Background(), testScene(t), shoulderRequest(1.57), fiveStepParams(Linear))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp.ErrorCode, test.ShouldEqual, Success)
	test.That(t, resp.FailedStage, test.ShouldEqual, StageDone)
	test.That(t, resp.GroupName, test.ShouldEqual, "shoulder_only")
	test.That(t, resp.PlannerID, test.ShouldEqual, PlannerID)
	test.That(t, len(resp.ProcessingTime), test.ShouldEqual, 1)

	traj := resp.Trajectory
	test.That(t, traj.Header, test.ShouldResemble, motionplan.Header{Seq: 7, FrameID: "world"})
	test.That(t, traj.JointNames, test.ShouldResemble, []string{"shoulder"})

	want := []motionplan.JointTrajectoryPoint{
		{Positions: []float64{0}},
		{Positions: []float64{0.3925}},
		{Positions: []float64{0.785}},
		{Positions: []float64{1.1775}},
		{Positions: []float64{1.57}},
	}
	test.That(t, cmp.Diff(want, traj.Points, cmpopts.EquateApprox(0, 1e-12)), test.ShouldBeEmpty)
	for _, pt := range traj.Points {
		test.That(t, pt.TimeFromStart, test.ShouldEqual, time.Duration(0))
	}

	test.That(t, logs.FilterMessage("planning succeeded").Len(), test.ShouldEqual, 1)
	for _, stage := range []Stage{StageValidating, StageSeeding, StageNormalizing, StageInitializing, StageOptimizing, StagePostValidating} {
		test.That(t, resp.Meta.StageTiming(stage).Calls(), test.ShouldEqual, 1)
	}
}

func TestSolveDefaults(t *testing.T) {
	planner := NewPlanner(logging.NewTestLogger(t), nil)
	req := &motionplan.MotionRequest{
		GroupName:  "arm",
		StartState: motionplan.StartState{Joints: map[string]float64{"shoulder": -1, "elbow": 1, "wrist": 0}},
		Goal:       jointGoal(atPosition("shoulder", 1), atPosition("elbow", -1)),
	}

	resp, err := planner.Solve(context.Background(), testScene(t), req, nil)
	test.That(t, err, test.ShouldBeNil)
	points := resp.Trajectory.Points
	test.That(t, len(points), test.ShouldEqual, 101)
	test.That(t, points[0].Positions, test.ShouldResemble, []float64{-1, 1, 0})
	test.That(t, points[100].Positions, test.ShouldResemble, []float64{1, -1, 0})
	// minimum jerk crosses the middle halfway through
	test.That(t, points[50].Positions[0], test.ShouldAlmostEqual, 0)
	for _, pt := range points {
		test.That(t, len(pt.Positions), test.ShouldEqual, 3)
	}
}

func TestSolveContinuousGoal(t *testing.T) {
	planner := NewPlanner(logging.NewTestLogger(t), nil)
	req := &motionplan.MotionRequest{
		GroupName:  "arm",
		StartState: motionplan.StartState{Joints: map[string]float64{"wrist": 0.1}},
		Goal:       jointGoal(atPosition("wrist", 6.0)),
	}

	resp, err := planner.Solve(context.Background(), testScene(t), req, fiveStepParams(Linear))
	test.That(t, err, test.ShouldBeNil)
	points := resp.Trajectory.Points
	last := points[len(points)-1].Positions[2]
	test.That(t, last, test.ShouldAlmostEqual, 6.0-2*math.Pi)
	for _, pt := range points {
		test.That(t, pt.Positions[2], test.ShouldBeBetweenOrEqual, last, 0.1)
	}
}

func TestSolveExternallySeeded(t *testing.T) {
	planner := NewPlanner(logging.NewTestLogger(t), nil)
	req := shoulderRequest(1)
	req.SeedTrajectory = trajectoryOf([]float64{0}, []float64{0.5}, []float64{1})

	resp, err := planner.Solve(context.Background(), testScene(t), req, fiveStepParams(ExternallySeeded))
	test.That(t, err, test.ShouldBeNil)
	got := make([]float64, 0, len(resp.Trajectory.Points))
	for _, pt := range resp.Trajectory.Points {
		got = append(got, pt.Positions[0])
	}
	test.That(t, got, test.ShouldResemble, []float64{0, 0, 0.5, 0.5, 1})
}

func TestSolveFailures(t *testing.T) {
	blocked := testScene(t)
	test.That(t, blocked.AddObstacles(motionplan.JointSpaceObstacle{
		Name: "wall",
		Min:  map[string]float64{"shoulder": 0.7},
		Max:  map[string]float64{"shoulder": 0.8},
	}), test.ShouldBeNil)

	unseeded := fiveStepParams(ExternallySeeded)
	unknown := fiveStepParams("bspline")
	badParams := fiveStepParams(Linear)
	badParams.TrajectoryDiscretization = 0
	hugeGrid := fiveStepParams(Linear)
	hugeGrid.TrajectoryDuration = 1e14
	hugeGrid.TrajectoryDiscretization = 1

	for _, tc := range []struct {
		name      string
		scene     motionplan.Scene
		req       *motionplan.MotionRequest
		params    *PlanningParameters
		optimizer Optimizer
		want      *PlanError
		stage     Stage
	}{
		{
			name: "no scene",
			req:  shoulderRequest(1),
			want: ErrNoScene, stage: StageValidating,
		},
		{
			name: "invalid parameters", scene: testScene(t), req: shoulderRequest(1), params: badParams,
			want: ErrInvalidParameters, stage: StageValidating,
		},
		{
			name: "grid too large", scene: testScene(t), req: shoulderRequest(1), params: hugeGrid,
			want: ErrInvalidParameters, stage: StageValidating,
		},
		{
			name: "goal out of bounds", scene: testScene(t), req: shoulderRequest(2.5),
			want: ErrGoalOutOfBounds, stage: StageNormalizing,
		},
		{
			name: "unknown strategy", scene: testScene(t), req: shoulderRequest(1), params: unknown,
			want: ErrUnknownStrategy, stage: StageInitializing,
		},
		{
			name: "missing seed", scene: testScene(t), req: shoulderRequest(1), params: unseeded,
			want: ErrEmptySourceTrajectory, stage: StageInitializing,
		},
		{
			name: "optimizer not initialized", scene: testScene(t), req: shoulderRequest(1),
			optimizer: &fakeOptimizer{collisionFree: true},
			want:      ErrOptimizerInitFailed, stage: StageOptimizing,
		},
		{
			name: "path through obstacle", scene: blocked, req: shoulderRequest(1.57),
			want: ErrMotionInCollision, stage: StagePostValidating,
		},
		{
			name: "collision reported before a missed goal", scene: testScene(t), req: shoulderRequest(1),
			optimizer: &fakeOptimizer{initialized: true, mutate: func(g *Grid) { g.Goal()[0] = 0.2 }},
			want:      ErrMotionInCollision, stage: StagePostValidating,
		},
		{
			name: "goal missed", scene: testScene(t), req: shoulderRequest(1),
			optimizer: &fakeOptimizer{initialized: true, collisionFree: true, mutate: func(g *Grid) { g.Goal()[0] = 0.2 }},
			want:      ErrGoalConstraintsViolated, stage: StagePostValidating,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params := tc.params
			if params == nil {
				params = fiveStepParams(Linear)
			}
			planner := NewPlanner(logging.NewTestLogger(t), tc.optimizer)

			resp, err := planner.Solve(context.Background(), tc.scene, tc.req, params)
			test.That(t, errors.Is(err, tc.want), test.ShouldBeTrue)
			test.That(t, resp.ErrorCode, test.ShouldEqual, tc.want.Kind)
			test.That(t, resp.FailedStage, test.ShouldEqual, tc.stage)
			test.That(t, resp.Trajectory, test.ShouldBeNil)
			test.That(t, len(resp.ProcessingTime), test.ShouldEqual, 1)
		})
	}
}

func TestSolveSkipsOptimizerOnEarlyFailure(t *testing.T) {
	opt := &fakeOptimizer{initialized: true, collisionFree: true}
	planner := NewPlanner(logging.NewTestLogger(t), opt)

	_, err := planner.Solve(context.Background(), testScene(t), shoulderRequest(3), fiveStepParams(Linear))
	test.That(t, errors.Is(err, ErrGoalOutOfBounds), test.ShouldBeTrue)
	test.That(t, opt.calls.Load(), test.ShouldEqual, 0)
}

func TestSolveConcurrent(t *testing.T) {
	scene := testScene(t)
	planner := NewPlanner(logging.NewTestLogger(t), nil)

	var wg sync.WaitGroup
	results := make([]*MotionResponse, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			goal := float64(i) / 8
			resp, err := planner.Solve(context.Background(), scene, shoulderRequest(goal), fiveStepParams(Cubic))
			if err == nil {
				results[i] = resp
			}
		}(i)
	}
	wg.Wait()

	for i, resp := range results {
		test.That(t, resp, test.ShouldNotBeNil)
		points := resp.Trajectory.Points
		test.That(t, points[len(points)-1].Positions[0], test.ShouldEqual, float64(i)/8)
	}
}

func TestSolveTiming(t *testing.T) {
	mockClock := clock.NewMock()
	opt := &fakeOptimizer{
		initialized:   true,
		collisionFree: true,
		mutate:        func(*Grid) { mockClock.Add(2 * time.Second) },
	}
	planner := NewPlanner(logging.NewTestLogger(t), opt, WithClock(mockClock))

	resp, err := planner.Solve(context.Background(), testScene(t), shoulderRequest(1), fiveStepParams(Linear))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp.ProcessingTime, test.ShouldResemble, []time.Duration{2 * time.Second})
	test.That(t, resp.Meta.Duration, test.ShouldEqual, 2*time.Second)
	test.That(t, resp.Meta.StageTiming(StageOptimizing).TotalTime(), test.ShouldEqual, 2*time.Second)
	test.That(t, resp.Meta.StageTiming(StageSeeding).TotalTime(), test.ShouldEqual, time.Duration(0))

	var out strings.Builder
	resp.Meta.OutputTiming(&out)
	test.That(t, out.String(), test.ShouldContainSubstring, "optimizing")
}
