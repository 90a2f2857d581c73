// Package motionplan holds the request vocabulary shared by joint-space planners, goal
// constraint evaluation, and the planning scene planners query for bounds and collisions.
package motionplan

import (
	"time"
)

// Header stamps a message with a sequence number, a time and a reference frame.
type Header struct {
	Seq     uint32    `json:"seq,omitempty"`
	Stamp   time.Time `json:"stamp,omitempty"`
	FrameID string    `json:"frame_id,omitempty"`
}

// StartState is the configuration a motion starts from, as joint name to position.
type StartState struct {
	Header Header             `json:"header"`
	Joints map[string]float64 `json:"joints"`
}

// MotionRequest asks for a trajectory for one joint group from a start state to a goal.
type MotionRequest struct {
	GroupName  string       `json:"group_name"`
	StartState StartState   `json:"start_state"`
	Goal       *Constraints `json:"goal,omitempty"`
	PlannerID  string       `json:"planner_id,omitempty"`

	// SeedTrajectory is an externally produced path used by planners seeded from another planner.
	SeedTrajectory *JointTrajectory `json:"seed_trajectory,omitempty"`
}

// JointTrajectoryPoint is one waypoint of a joint trajectory.
type JointTrajectoryPoint struct {
	Positions     []float64     `json:"positions"`
	TimeFromStart time.Duration `json:"time_from_start"`
}

// JointTrajectory is an ordered list of waypoints over named joints.
type JointTrajectory struct {
	Header     Header                 `json:"header"`
	JointNames []string               `json:"joint_names"`
	Points     []JointTrajectoryPoint `json:"points"`
}
