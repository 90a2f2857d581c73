package referenceframe

import (
	"github.com/pkg/errors"
)

// ErrNoModelInformation is used when a model file is empty.
var ErrNoModelInformation = errors.New("no model information")

// NewUnsupportedJointTypeError returns an error indicating that a given joint type is not supported.
func NewUnsupportedJointTypeError(jointType string) error {
	return errors.Errorf("unsupported joint type detected: %q", jointType)
}

// NewJointNotFoundError returns an error indicating that the named joint is not part of the model.
func NewJointNotFoundError(name string) error {
	return errors.Errorf("joint %q not found in model", name)
}

// NewGroupNotFoundError returns an error indicating that the named joint group is not defined.
func NewGroupNotFoundError(name string) error {
	return errors.Errorf("joint group %q not found in model", name)
}

// NewIncorrectDoFError returns an error indicating that the number of positions does not match
// the number of variables they are meant to fill.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Errorf("number of positions given (%d) does not match number of variables (%d)", actual, expected)
}

// NewDuplicateJointError returns an error indicating that a joint name was defined twice.
func NewDuplicateJointError(name string) error {
	return errors.Errorf("joint %q defined more than once", name)
}
