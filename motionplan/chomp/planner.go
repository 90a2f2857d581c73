// Package chomp seeds and validates joint-space trajectories for a gradient-based trajectory
// optimizer. A Planner turns a motion request into a grid of waypoints, fills it by interpolation or
// from an external seed, hands it to an Optimizer and checks the result against the request's goal.
package chomp

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.opencensus.io/trace"

	"go.viam.com/chomp/logging"
	"go.viam.com/chomp/motionplan"
	"go.viam.com/chomp/utils"
)

// PlannerID is reported in responses produced by this package.
const PlannerID = "CHOMP"

// Planner runs planning requests through the seeding pipeline. It holds no per-request state, so
// one Planner may serve concurrent requests as long as each has its own request value.
type Planner struct {
	logger    logging.Logger
	optimizer Optimizer
	clock     clock.Clock
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithClock sets the clock processing and stage times are measured with.
func WithClock(clk clock.Clock) PlannerOption {
	return func(p *Planner) {
		p.clock = clk
	}
}

// NewPlanner returns a planner using the given optimizer, or CheckingOptimizer when it is nil.
func NewPlanner(logger logging.Logger, optimizer Optimizer, opts ...PlannerOption) *Planner {
	if optimizer == nil {
		optimizer = CheckingOptimizer{}
	}
	p := &Planner{logger: logger, optimizer: optimizer, clock: clock.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Solve plans one request. The response is always returned, carrying the error kind and the
// processing time; the error is a *PlanError when planning failed. Nil parameters mean defaults.
func (p *Planner) Solve(
	ctx context.Context,
	scene motionplan.Scene,
	req *motionplan.MotionRequest,
	params *PlanningParameters,
) (*MotionResponse, error) {
	ctx, span := trace.StartSpan(ctx, "chomp::Planner::Solve")
	defer span.End()

	start := p.clock.Now()
	requestID := uuid.NewString()
	meta := NewPlanMeta(requestID)
	logger := p.logger.Sublogger(requestID[:8])
	if params == nil {
		params = NewBasicParameters()
	}

	var (
		vr     *ValidatedRequest
		grid   *Grid
		result OptimizerResult
	)

	// runStage runs fn as the given stage, with its own span and timing entry.
	runStage := func(stage Stage, fn func(ctx context.Context) error) error {
		ctx, span := trace.StartSpan(ctx, "chomp::"+stage.String())
		defer span.End()
		stageStart := p.clock.Now()
		logger.Debugw("entering stage", "stage", stage)
		err := fn(ctx)
		meta.AddTiming(stage.String(), p.clock.Since(stageStart))
		return err
	}

	stages := []struct {
		stage Stage
		fn    func(ctx context.Context) error
	}{
		{StageValidating, func(ctx context.Context) error {
			var err error
			if vr, err = ValidateRequest(scene, req); err != nil {
				return err
			}
			return params.Validate()
		}},
		{StageSeeding, func(ctx context.Context) error {
			var err error
			if grid, err = NewGrid(params.NumPoints(), len(vr.JointNames)); err != nil {
				return wrapPlanError(InvalidParameters, err, "cannot allocate trajectory")
			}
			if err := grid.SetPoint(grid.StartIndex(), vr.Start); err != nil {
				return wrapPlanError(MismatchedJointCount, err, "cannot set start")
			}
			for _, jc := range req.Goal.JointConstraints {
				logger.Debugf("setting joint %s to position %v", jc.JointName, jc.Position)
			}
			if err := grid.SetPoint(grid.GoalIndex(), vr.Goal); err != nil {
				return wrapPlanError(MismatchedJointCount, err, "cannot set goal")
			}
			return nil
		}},
		{StageNormalizing, func(ctx context.Context) error {
			joints := vr.Group.ActiveJoints()
			before := append([]float64(nil), grid.Goal()...)
			NormalizeGoalAngles(grid, joints)
			for i, j := range joints {
				if j.IsContinuous() {
					logger.Infow("continuous joint goal",
						"joint", j.Name,
						"start", grid.Start()[i],
						"requested", before[i],
						"goal", grid.Goal()[i],
						"distance", utils.ShortestAngularDistance(grid.Start()[i], before[i]))
				}
			}
			return ValidateGoalState(scene, vr.Group, grid.Goal())
		}},
		{StageInitializing, func(ctx context.Context) error {
			return Seed(grid, params.InitializationMethod, req.SeedTrajectory)
		}},
		{StageOptimizing, func(ctx context.Context) error {
			result = p.optimizer.Optimize(ctx, grid, vr, scene, params)
			if !result.Initialized {
				return newPlanError(OptimizerInitFailed, "optimizer could not be initialized")
			}
			if result.Grid == nil {
				result.Grid = grid
			}
			return nil
		}},
		{StagePostValidating, func(ctx context.Context) error {
			return ValidatePlan(result, vr)
		}},
	}

	finish := func(resp *MotionResponse) *MotionResponse {
		meta.Duration = p.clock.Since(start)
		resp.PlannerID = PlannerID
		if req != nil {
			resp.GroupName = req.GroupName
		}
		resp.ProcessingTime = append(resp.ProcessingTime, meta.Duration)
		resp.Meta = meta
		return resp
	}

	for _, s := range stages {
		if err := runStage(s.stage, s.fn); err != nil {
			kind, ok := KindOf(err)
			if !ok {
				err = wrapPlanError(InvalidParameters, err, "planning failed")
				kind = InvalidParameters
			}
			logger.Errorw("planning failed", "stage", s.stage, "error_code", kind, "error", err)
			return finish(&MotionResponse{ErrorCode: kind, FailedStage: s.stage}), err
		}
	}

	resp := Assemble(result.Grid, vr.JointNames, req.StartState.Header)
	resp = finish(resp)
	logger.Infow("planning succeeded", "waypoints", len(resp.Trajectory.Points), "duration", meta.Duration)
	return resp, nil
}
