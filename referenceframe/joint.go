package referenceframe

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Joint types as spelled in URDF and JSON model files.
const (
	RevoluteJoint   = "revolute"
	ContinuousJoint = "continuous"
	PrismaticJoint  = "prismatic"
	FixedJoint      = "fixed"
)

// JointKind classifies a joint for planning purposes. It is resolved once when the joint is built.
type JointKind int

const (
	// RevoluteBounded is a revolute joint with finite position limits.
	RevoluteBounded JointKind = iota
	// RevoluteContinuous is a revolute joint without limits, whose positions wrap around.
	RevoluteContinuous
	// OtherKind covers prismatic and fixed joints.
	OtherKind
)

func (k JointKind) String() string {
	switch k {
	case RevoluteBounded:
		return "revolute-bounded"
	case RevoluteContinuous:
		return "revolute-continuous"
	case OtherKind:
		return "other"
	}
	return fmt.Sprintf("JointKind(%d)", int(k))
}

// Limit represents the limits of motion for a joint. Unbounded sides are infinite.
type Limit struct {
	Min float64
	Max float64
}

// Unbounded returns a limit that admits every position.
func Unbounded() Limit {
	return Limit{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Contains reports whether value lies within the limit, inclusive.
func (l Limit) Contains(value float64) bool {
	return value >= l.Min && value <= l.Max
}

// Joint describes a single joint of a kinematic model.
type Joint struct {
	Name  string
	Type  string
	Kind  JointKind
	Limit Limit
}

// NewJoint builds a joint descriptor and classifies it. A revolute joint with both limits infinite
// is treated as continuous.
func NewJoint(name, jointType string, limit Limit) (Joint, error) {
	j := Joint{Name: name, Type: jointType, Limit: limit}
	switch jointType {
	case RevoluteJoint:
		if math.IsInf(limit.Min, -1) && math.IsInf(limit.Max, 1) {
			j.Kind = RevoluteContinuous
		} else {
			j.Kind = RevoluteBounded
		}
	case ContinuousJoint:
		j.Kind = RevoluteContinuous
		j.Limit = Unbounded()
	case PrismaticJoint:
		j.Kind = OtherKind
	case FixedJoint:
		j.Kind = OtherKind
		j.Limit = Limit{}
	default:
		return Joint{}, NewUnsupportedJointTypeError(jointType)
	}
	if j.Limit.Min > j.Limit.Max {
		return Joint{}, errors.Errorf("joint %q has lower limit %v above upper limit %v", name, j.Limit.Min, j.Limit.Max)
	}
	return j, nil
}

// Active reports whether the joint contributes a variable to the robot state.
func (j Joint) Active() bool {
	return j.Type != FixedJoint
}

// IsContinuous reports whether positions of this joint wrap around.
func (j Joint) IsContinuous() bool {
	return j.Kind == RevoluteContinuous
}

// SatisfiesBounds reports whether value is within the joint limits. Continuous joints have none.
func (j Joint) SatisfiesBounds(value float64) bool {
	if j.IsContinuous() {
		return true
	}
	return j.Limit.Contains(value)
}

// defaultPosition is zero when the limits allow it and the middle of the range otherwise.
func (j Joint) defaultPosition() float64 {
	if j.SatisfiesBounds(0) {
		return 0
	}
	if math.IsInf(j.Limit.Min, -1) {
		return j.Limit.Max
	}
	if math.IsInf(j.Limit.Max, 1) {
		return j.Limit.Min
	}
	return (j.Limit.Min + j.Limit.Max) / 2
}
