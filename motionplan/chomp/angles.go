package chomp

import (
	"math"

	"go.viam.com/chomp/referenceframe"
	"go.viam.com/chomp/utils"
)

// NormalizeGoalAngles rewrites the goal of every continuous joint so that start to goal is the
// shorter way around. The goal stays equal to the requested one modulo 2π. Goals already on the
// shorter arc are left as they are, so normalizing twice changes nothing.
func NormalizeGoalAngles(grid *Grid, joints []referenceframe.Joint) {
	start := grid.Start()
	goal := grid.Goal()
	for i, j := range joints {
		if i >= len(goal) {
			return
		}
		if !j.IsContinuous() {
			continue
		}
		diff := goal[i] - start[i]
		if diff > -math.Pi && diff <= math.Pi {
			continue
		}
		goal[i] = start[i] + utils.ShortestAngularDistance(start[i], goal[i])
	}
}
