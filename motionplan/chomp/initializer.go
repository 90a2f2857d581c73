package chomp

import (
	"gonum.org/v1/gonum/floats"

	"go.viam.com/chomp/motionplan"
)

// profile maps normalized time s in [0, 1] to normalized progress along the start-goal segment.
type profile func(s float64) float64

var profiles = map[InitializationMethod]profile{
	Linear: func(s float64) float64 { return s },
	Cubic: func(s float64) float64 {
		return s * s * (3 - 2*s)
	},
	// minimum jerk: zero velocity and acceleration at both ends
	QuinticSpline: func(s float64) float64 {
		return s * s * s * (10 - 15*s + 6*s*s)
	},
}

// Seed fills the grid according to the initialization method. Interpolating methods write only the
// interior rows and leave the start and goal rows as they are. ExternallySeeded resamples source
// over every row of the grid.
func Seed(grid *Grid, method InitializationMethod, source *motionplan.JointTrajectory) error {
	if method == ExternallySeeded {
		return resample(grid, source)
	}
	p, ok := profiles[method]
	if !ok {
		return newPlanError(UnknownStrategy, "unknown trajectory initialization method %q", method)
	}
	interpolate(grid, p)
	return nil
}

func interpolate(grid *Grid, p profile) {
	n := grid.NumPoints()
	s := floats.Span(make([]float64, n), 0, 1)
	start := grid.Start()
	goal := grid.Goal()
	delta := make([]float64, grid.NumJoints())
	floats.SubTo(delta, goal, start)

	for i := 1; i < n-1; i++ {
		floats.AddScaledTo(grid.Point(i), start, p(s[i]), delta)
	}
}

// resample stretches an M-point source over N rows. Each source point fills N/M consecutive rows
// and the first N%M source points fill one extra row each. Points past the N-th are dropped.
func resample(grid *Grid, source *motionplan.JointTrajectory) error {
	if source == nil || len(source.Points) == 0 {
		return newPlanError(EmptySourceTrajectory, "no trajectory to seed from")
	}
	for i, pt := range source.Points {
		if len(pt.Positions) != grid.NumJoints() {
			return newPlanError(MismatchedJointCount, "seed waypoint %d has %d positions, group has %d joints",
				i, len(pt.Positions), grid.NumJoints())
		}
	}

	n := grid.NumPoints()
	m := len(source.Points)
	repeat := n / m
	remainder := n % m

	row := 0
	for i := 0; i < m && row < n; i++ {
		count := repeat
		if i < remainder {
			count++
		}
		for k := 0; k < count && row < n; k++ {
			copy(grid.Point(row), source.Points[i].Positions)
			row++
		}
	}
	return nil
}
