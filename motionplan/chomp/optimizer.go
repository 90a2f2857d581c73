package chomp

import (
	"context"
	"math"

	"go.opencensus.io/trace"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/chomp/motionplan"
)

// OptimizerResult is what an optimizer reports back about the grid it was handed.
type OptimizerResult struct {
	// Grid is the optimized trajectory. Optimizers may return the grid they were given.
	Grid *Grid
	// Initialized is false when the optimizer could not start, in which case nothing else is read.
	Initialized   bool
	CollisionFree bool
}

// Optimizer refines a seeded grid. The grid belongs to the optimizer for the duration of the call;
// its start and goal rows must not move.
type Optimizer interface {
	Optimize(ctx context.Context, grid *Grid, req *ValidatedRequest, scene motionplan.Scene, params *PlanningParameters) OptimizerResult
}

// CheckingOptimizerConfig holds the settings CheckingOptimizer reads from the optimizer settings.
type CheckingOptimizerConfig struct {
	// CollisionCheckStride checks every n-th waypoint, plus the goal. Zero or one checks them all.
	CollisionCheckStride int `json:"collision_check_stride"`
}

// CheckingOptimizer leaves the seed as it is and only checks it: the grid must be finite to count
// as initialized, and every checked waypoint must be out of collision.
type CheckingOptimizer struct{}

// Optimize implements Optimizer.
func (CheckingOptimizer) Optimize(
	ctx context.Context,
	grid *Grid,
	req *ValidatedRequest,
	scene motionplan.Scene,
	params *PlanningParameters,
) OptimizerResult {
	_, span := trace.StartSpan(ctx, "chomp::CheckingOptimizer::Optimize")
	defer span.End()

	result := OptimizerResult{Grid: grid}
	var cfg CheckingOptimizerConfig
	if params != nil {
		if err := params.DecodeOptimizerSettings(&cfg); err != nil {
			return result
		}
	}
	stride := cfg.CollisionCheckStride
	if stride < 1 {
		stride = 1
	}

	if !isFinite(grid.Matrix().RawMatrix().Data) {
		return result
	}
	result.Initialized = true

	for i := 0; i < grid.NumPoints(); i++ {
		if i%stride != 0 && i != grid.GoalIndex() {
			continue
		}
		state, err := motionplan.GroupState(scene, req.Group, grid.Point(i))
		if err != nil || scene.IsStateColliding(state, req.Group.Name()) {
			return result
		}
	}
	result.CollisionFree = true
	return result
}

func isFinite(values []float64) bool {
	if floats.HasNaN(values) {
		return false
	}
	return !math.IsInf(floats.Max(values), 1) && !math.IsInf(floats.Min(values), -1)
}
