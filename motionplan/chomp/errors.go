package chomp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the status of a planning request. Success is the only non-failure kind.
type ErrorKind int

// The flat taxonomy of planning outcomes.
const (
	Success ErrorKind = iota
	NoScene
	EmptyStartState
	StartOutOfBounds
	NoGoalConstraints
	UnsupportedGoalType
	GoalOutOfBounds
	UnknownStrategy
	MismatchedJointCount
	EmptySourceTrajectory
	OptimizerInitFailed
	MotionInCollision
	GoalConstraintsViolated
	InvalidGroupName
	InvalidParameters
)

var errorKindNames = map[ErrorKind]string{
	Success:                 "Success",
	NoScene:                 "NoScene",
	EmptyStartState:         "EmptyStartState",
	StartOutOfBounds:        "StartOutOfBounds",
	NoGoalConstraints:       "NoGoalConstraints",
	UnsupportedGoalType:     "UnsupportedGoalType",
	GoalOutOfBounds:         "GoalOutOfBounds",
	UnknownStrategy:         "UnknownStrategy",
	MismatchedJointCount:    "MismatchedJointCount",
	EmptySourceTrajectory:   "EmptySourceTrajectory",
	OptimizerInitFailed:     "OptimizerInitFailed",
	MotionInCollision:       "MotionInCollision",
	GoalConstraintsViolated: "GoalConstraintsViolated",
	InvalidGroupName:        "InvalidGroupName",
	InvalidParameters:       "InvalidParameters",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MarshalText writes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText reads a kind by name.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	for kind, name := range errorKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return errors.Errorf("unknown error kind %q", string(text))
}

// PlanError is a planning failure of a given kind. Two PlanErrors match under errors.Is when their
// kinds are equal, so the Err* sentinels below can be used as targets.
type PlanError struct {
	Kind ErrorKind
	Err  error
}

func newPlanError(kind ErrorKind, format string, args ...interface{}) *PlanError {
	return &PlanError{Kind: kind, Err: errors.Errorf(format, args...)}
}

func wrapPlanError(kind ErrorKind, err error, msg string) *PlanError {
	return &PlanError{Kind: kind, Err: errors.Wrap(err, msg)}
}

func (e *PlanError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *PlanError) Unwrap() error {
	return e.Err
}

// Is matches any PlanError of the same kind.
func (e *PlanError) Is(target error) bool {
	var other *PlanError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// KindOf returns the kind of a planning error. A nil error is Success; the boolean is false for
// errors that did not come from this package.
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return Success, true
	}
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.Kind, true
	}
	return Success, false
}

// Sentinels for errors.Is checks.
var (
	ErrNoScene                 = &PlanError{Kind: NoScene}
	ErrEmptyStartState         = &PlanError{Kind: EmptyStartState}
	ErrStartOutOfBounds        = &PlanError{Kind: StartOutOfBounds}
	ErrNoGoalConstraints       = &PlanError{Kind: NoGoalConstraints}
	ErrUnsupportedGoalType     = &PlanError{Kind: UnsupportedGoalType}
	ErrGoalOutOfBounds         = &PlanError{Kind: GoalOutOfBounds}
	ErrUnknownStrategy         = &PlanError{Kind: UnknownStrategy}
	ErrMismatchedJointCount    = &PlanError{Kind: MismatchedJointCount}
	ErrEmptySourceTrajectory   = &PlanError{Kind: EmptySourceTrajectory}
	ErrOptimizerInitFailed     = &PlanError{Kind: OptimizerInitFailed}
	ErrMotionInCollision       = &PlanError{Kind: MotionInCollision}
	ErrGoalConstraintsViolated = &PlanError{Kind: GoalConstraintsViolated}
	ErrInvalidGroupName        = &PlanError{Kind: InvalidGroupName}
	ErrInvalidParameters       = &PlanError{Kind: InvalidParameters}
)
