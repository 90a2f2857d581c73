package chomp

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"go.viam.com/chomp/motionplan"
	"go.viam.com/chomp/referenceframe"
)

// ValidatedRequest is a request that passed validation, resolved against the scene's model.
type ValidatedRequest struct {
	Request *motionplan.MotionRequest
	Group   *referenceframe.JointGroup
	// JointNames are the group's active joints; they order the grid columns.
	JointNames []string
	// StartState is the scene's current state with the request's start joints applied.
	StartState *referenceframe.RobotState
	// Start and Goal are the first and last grid rows. Goal joints without a constraint keep their
	// start value.
	Start []float64
	Goal  []float64
}

// ValidateRequest checks a request against the scene, in order: scene present, start state given,
// start within bounds, goal given, goal expressed as joint constraints, group known. The first
// failure is returned. Start joints the model does not know are ignored.
func ValidateRequest(scene motionplan.Scene, req *motionplan.MotionRequest) (*ValidatedRequest, error) {
	if scene == nil {
		return nil, newPlanError(NoScene, "no planning scene")
	}
	if req == nil || len(req.StartState.Joints) == 0 {
		return nil, newPlanError(EmptyStartState, "start state has no joints")
	}
	model := scene.Model()

	names := lo.Keys(req.StartState.Joints)
	sort.Strings(names)
	positions := lo.Map(names, func(name string, _ int) float64 { return req.StartState.Joints[name] })
	if !model.SatisfiesPositionBounds(names, positions) {
		return nil, newPlanError(StartOutOfBounds, "start state violates joint bounds: %s", describeOutOfBounds(model, names, positions))
	}

	if req.Goal.IsEmpty() {
		return nil, newPlanError(NoGoalConstraints, "no goal constraints")
	}
	if len(req.Goal.JointConstraints) == 0 {
		return nil, newPlanError(UnsupportedGoalType, "only joint-space goals are supported")
	}

	group, err := model.Group(req.GroupName)
	if err != nil {
		return nil, wrapPlanError(InvalidGroupName, err, "cannot plan for group")
	}
	if group.DoF() == 0 {
		return nil, newPlanError(InvalidGroupName, "group %q has no active joints", req.GroupName)
	}

	startState := scene.CurrentState()
	for i, name := range names {
		if j, ok := model.Joint(name); !ok || !j.Active() {
			continue
		}
		if err := startState.SetVariablePosition(name, positions[i]); err != nil {
			return nil, wrapPlanError(StartOutOfBounds, err, "cannot apply start state")
		}
	}

	jointNames := group.ActiveJointNames()
	start := startState.GroupPositions(group)
	goal := append([]float64(nil), start...)
	for _, jc := range req.Goal.JointConstraints {
		if idx := lo.IndexOf(jointNames, jc.JointName); idx >= 0 {
			goal[idx] = jc.Position
		}
	}

	return &ValidatedRequest{
		Request:    req,
		Group:      group,
		JointNames: jointNames,
		StartState: startState,
		Start:      start,
		Goal:       goal,
	}, nil
}

func describeOutOfBounds(model *referenceframe.Model, names []string, positions []float64) string {
	for i, name := range names {
		if j, ok := model.Joint(name); ok && j.Active() && !j.SatisfiesBounds(positions[i]) {
			return fmt.Sprintf("joint %q position %v outside limits [%v, %v]", name, positions[i], j.Limit.Min, j.Limit.Max)
		}
	}
	return "unknown joint"
}

// ValidateGoalState checks that the goal row, applied to the scene's current state, is within the
// model's bounds.
func ValidateGoalState(scene motionplan.Scene, group *referenceframe.JointGroup, goal []float64) error {
	state, err := motionplan.GroupState(scene, group, goal)
	if err != nil {
		return wrapPlanError(GoalOutOfBounds, err, "cannot reconstruct goal state")
	}
	if err := state.CheckBounds(); err != nil {
		return wrapPlanError(GoalOutOfBounds, err, "goal state violates joint bounds")
	}
	return nil
}

// ValidatePlan checks an optimizer result. A result that is not collision free fails immediately;
// otherwise the last waypoint must satisfy every goal joint constraint, checked in order.
func ValidatePlan(result OptimizerResult, vr *ValidatedRequest) error {
	if !result.CollisionFree {
		return newPlanError(MotionInCollision, "optimized trajectory is in collision")
	}
	if result.Grid.NumJoints() != len(vr.JointNames) {
		return newPlanError(MismatchedJointCount, "optimized trajectory has %d joints, group has %d",
			result.Grid.NumJoints(), len(vr.JointNames))
	}

	last := vr.StartState.Copy()
	if err := last.SetVariablePositions(vr.JointNames, result.Grid.Goal()); err != nil {
		return wrapPlanError(GoalConstraintsViolated, err, "cannot reconstruct final state")
	}
	for _, jc := range vr.Request.Goal.JointConstraints {
		eval, err := jc.Decide(last)
		if err != nil {
			return wrapPlanError(GoalConstraintsViolated, err, "cannot check goal constraint")
		}
		if !eval.Satisfied {
			return newPlanError(GoalConstraintsViolated, "joint %q ends %v from its goal %v",
				jc.JointName, eval.Distance, jc.Position)
		}
	}
	return nil
}
