package chomp

import (
	"time"

	"go.viam.com/chomp/motionplan"
)

// MotionResponse is the outcome of a planning request. Trajectory is nil unless ErrorCode is
// Success.
type MotionResponse struct {
	GroupName  string                      `json:"group_name"`
	PlannerID  string                      `json:"planner_id,omitempty"`
	Trajectory *motionplan.JointTrajectory `json:"trajectory,omitempty"`
	ErrorCode  ErrorKind                   `json:"error_code"`
	// FailedStage is the stage that produced ErrorCode; it is StageDone on success.
	FailedStage Stage `json:"failed_stage"`
	// ProcessingTime holds one entry per planning attempt.
	ProcessingTime []time.Duration `json:"processing_time"`

	Meta *PlanMeta `json:"-"`
}

// Assemble turns a grid into a successful response. Every row becomes one waypoint, in grid order,
// with positions in jointNames order. Timings are left at zero for a later time-parameterization
// step.
func Assemble(grid *Grid, jointNames []string, header motionplan.Header) *MotionResponse {
	points := make([]motionplan.JointTrajectoryPoint, grid.NumPoints())
	for i, row := range grid.Rows() {
		points[i] = motionplan.JointTrajectoryPoint{Positions: row}
	}
	return &MotionResponse{
		Trajectory: &motionplan.JointTrajectory{
			Header:     header,
			JointNames: append([]string(nil), jointNames...),
			Points:     points,
		},
		ErrorCode:   Success,
		FailedStage: StageDone,
	}
}
