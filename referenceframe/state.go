package referenceframe

import (
	"github.com/pkg/errors"
)

// RobotState is a full assignment of positions to every variable of a model. It is not safe for
// concurrent mutation; copy it before handing it to another goroutine.
type RobotState struct {
	model     *Model
	positions []float64
}

// NewRobotState returns a state with every variable at zero, or at the middle of its range when
// zero is out of bounds.
func NewRobotState(model *Model) *RobotState {
	positions := make([]float64, len(model.variables))
	for i, idx := range model.variables {
		positions[i] = model.joints[idx].defaultPosition()
	}
	return &RobotState{model: model, positions: positions}
}

// NewRobotStateFromArray reconstructs a full state from a flat position array in variable order.
func NewRobotStateFromArray(model *Model, positions []float64) (*RobotState, error) {
	if len(positions) != model.VariableCount() {
		return nil, NewIncorrectDoFError(len(positions), model.VariableCount())
	}
	return &RobotState{model: model, positions: append([]float64(nil), positions...)}, nil
}

// Model returns the model this state belongs to.
func (s *RobotState) Model() *Model {
	return s.model
}

// Copy returns an independent copy of the state.
func (s *RobotState) Copy() *RobotState {
	return &RobotState{model: s.model, positions: append([]float64(nil), s.positions...)}
}

// Positions returns a copy of the flat variable positions in model order.
func (s *RobotState) Positions() []float64 {
	return append([]float64(nil), s.positions...)
}

// Position returns the position of a named variable.
func (s *RobotState) Position(name string) (float64, error) {
	idx, ok := s.model.variableIndex[name]
	if !ok {
		return 0, NewJointNotFoundError(name)
	}
	return s.positions[idx], nil
}

// SetVariablePosition sets a single named variable.
func (s *RobotState) SetVariablePosition(name string, value float64) error {
	idx, ok := s.model.variableIndex[name]
	if !ok {
		return NewJointNotFoundError(name)
	}
	s.positions[idx] = value
	return nil
}

// SetVariablePositions sets the named variables from parallel name and position slices.
func (s *RobotState) SetVariablePositions(names []string, positions []float64) error {
	if len(names) != len(positions) {
		return NewIncorrectDoFError(len(positions), len(names))
	}
	for i, name := range names {
		if err := s.SetVariablePosition(name, positions[i]); err != nil {
			return err
		}
	}
	return nil
}

// GroupPositions returns the positions of a group's joints in group order.
func (s *RobotState) GroupPositions(group *JointGroup) []float64 {
	out := make([]float64, 0, group.DoF())
	for _, j := range group.joints {
		out = append(out, s.positions[s.model.variableIndex[j.Name]])
	}
	return out
}

// SatisfiesBounds reports whether every variable is within its joint's bounds.
func (s *RobotState) SatisfiesBounds() bool {
	return s.CheckBounds() == nil
}

// CheckBounds returns an error naming the first variable outside its joint's bounds.
func (s *RobotState) CheckBounds() error {
	for i, idx := range s.model.variables {
		j := s.model.joints[idx]
		if !j.SatisfiesBounds(s.positions[i]) {
			return errors.Errorf("joint %q position %v outside limits [%v, %v]", j.Name, s.positions[i], j.Limit.Min, j.Limit.Max)
		}
	}
	return nil
}
