package motionplan

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/chomp/referenceframe"
	"go.viam.com/chomp/utils"
)

// constraintEpsilon absorbs round-off at the edge of a tolerance band.
const constraintEpsilon = 1e-9

// JointConstraint asks a joint to be at Position, allowing ToleranceAbove over and
// ToleranceBelow under it. Negative tolerances are treated as zero.
type JointConstraint struct {
	JointName      string  `json:"joint_name"`
	Position       float64 `json:"position"`
	ToleranceAbove float64 `json:"tolerance_above"`
	ToleranceBelow float64 `json:"tolerance_below"`
	Weight         float64 `json:"weight,omitempty"`
}

// PositionConstraint places a link within Tolerance of Target, in the model's root frame.
type PositionConstraint struct {
	LinkName  string     `json:"link_name"`
	Target    [3]float64 `json:"target"`
	Tolerance float64    `json:"tolerance"`
}

// OrientationConstraint places a link's orientation, given as a quaternion, within per-axis
// tolerances.
type OrientationConstraint struct {
	LinkName    string     `json:"link_name"`
	Orientation [4]float64 `json:"orientation"`
	Tolerance   [3]float64 `json:"tolerance"`
}

// Constraints describes a goal. Joint-space planners only understand JointConstraints.
type Constraints struct {
	Name                   string                  `json:"name,omitempty"`
	JointConstraints       []JointConstraint       `json:"joint_constraints,omitempty"`
	PositionConstraints    []PositionConstraint    `json:"position_constraints,omitempty"`
	OrientationConstraints []OrientationConstraint `json:"orientation_constraints,omitempty"`
}

// IsEmpty reports whether the goal constrains nothing at all.
func (c *Constraints) IsEmpty() bool {
	return c == nil || len(c.JointConstraints)+len(c.PositionConstraints)+len(c.OrientationConstraints) == 0
}

// ConstraintEvaluation is the outcome of checking one constraint against a state.
type ConstraintEvaluation struct {
	Satisfied bool
	// Distance is how far the state is from the constraint's target.
	Distance float64
}

// Decide evaluates the constraint against a full robot state. The difference is taken along the
// shorter arc for continuous joints. An error means the constraint could not be configured for
// the state's model, e.g. because it names an unknown or fixed joint.
func (jc JointConstraint) Decide(state *referenceframe.RobotState) (ConstraintEvaluation, error) {
	j, ok := state.Model().Joint(jc.JointName)
	if !ok || !j.Active() {
		return ConstraintEvaluation{}, errors.Wrap(referenceframe.NewJointNotFoundError(jc.JointName), "cannot configure joint constraint")
	}
	current, err := state.Position(jc.JointName)
	if err != nil {
		return ConstraintEvaluation{}, err
	}

	var dif float64
	if j.IsContinuous() {
		dif = utils.ShortestAngularDistance(jc.Position, current)
	} else {
		dif = current - jc.Position
	}

	above := math.Max(jc.ToleranceAbove, 0)
	below := math.Max(jc.ToleranceBelow, 0)
	return ConstraintEvaluation{
		Satisfied: dif <= above+constraintEpsilon && dif >= -below-constraintEpsilon,
		Distance:  math.Abs(dif),
	}, nil
}
