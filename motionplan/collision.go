package motionplan

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/chomp/referenceframe"
)

// Scene is the kinematic and collision context a planner works in. Implementations must be safe
// for concurrent reads, since several planning requests may share one scene.
type Scene interface {
	Model() *referenceframe.Model
	// CurrentState returns a copy of the scene's current robot state.
	CurrentState() *referenceframe.RobotState
	// IsStateColliding reports whether the given full state is in collision for the named group.
	IsStateColliding(state *referenceframe.RobotState, group string) bool
}

// GroupState reconstructs a full robot state by overlaying a group's flat positions, in group order,
// onto the scene's current state.
func GroupState(scene Scene, group *referenceframe.JointGroup, positions []float64) (*referenceframe.RobotState, error) {
	state := scene.CurrentState()
	if err := state.SetVariablePositions(group.ActiveJointNames(), positions); err != nil {
		return nil, err
	}
	return state, nil
}

// JointSpaceObstacle is an axis-aligned box in joint space. A state collides with it when every
// joint it names lies within [Min, Max].
type JointSpaceObstacle struct {
	Name string             `json:"name"`
	Min  map[string]float64 `json:"min"`
	Max  map[string]float64 `json:"max"`
}

// Validate checks the obstacle against a model.
func (o JointSpaceObstacle) Validate(model *referenceframe.Model) error {
	if len(o.Min) == 0 {
		return errors.Errorf("obstacle %q bounds no joints", o.Name)
	}
	minNames := lo.Keys(o.Min)
	maxNames := lo.Keys(o.Max)
	sort.Strings(minNames)
	sort.Strings(maxNames)
	if !lo.ElementsMatch(minNames, maxNames) {
		return errors.Errorf("obstacle %q must bound the same joints below and above", o.Name)
	}

	var errs error
	for _, name := range minNames {
		if j, ok := model.Joint(name); !ok || !j.Active() {
			errs = multierr.Append(errs, errors.Wrapf(referenceframe.NewJointNotFoundError(name), "obstacle %q", o.Name))
			continue
		}
		if o.Min[name] > o.Max[name] {
			errs = multierr.Append(errs, errors.Errorf("obstacle %q has min above max for joint %q", o.Name, name))
		}
	}
	return errs
}

// Contains reports whether the state lies inside the obstacle.
func (o JointSpaceObstacle) Contains(state *referenceframe.RobotState) bool {
	for name, lower := range o.Min {
		pos, err := state.Position(name)
		if err != nil || pos < lower || pos > o.Max[name] {
			return false
		}
	}
	return true
}

// PlanningScene is a Scene made of a model, a current state and joint-space obstacles.
type PlanningScene struct {
	model *referenceframe.Model

	mu        sync.RWMutex
	current   *referenceframe.RobotState
	obstacles []JointSpaceObstacle
}

// NewPlanningScene returns a scene with the model's default state and no obstacles.
func NewPlanningScene(model *referenceframe.Model) *PlanningScene {
	return &PlanningScene{model: model, current: referenceframe.NewRobotState(model)}
}

// Model returns the scene's kinematic model.
func (ps *PlanningScene) Model() *referenceframe.Model {
	return ps.model
}

// CurrentState returns a copy of the current state.
func (ps *PlanningScene) CurrentState() *referenceframe.RobotState {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.current.Copy()
}

// SetCurrentJoints overwrites the named joints of the current state.
func (ps *PlanningScene) SetCurrentJoints(joints map[string]float64) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	next := ps.current.Copy()
	for name, pos := range joints {
		if err := next.SetVariablePosition(name, pos); err != nil {
			return err
		}
	}
	ps.current = next
	return nil
}

// AddObstacles validates and adds obstacles to the scene.
func (ps *PlanningScene) AddObstacles(obstacles ...JointSpaceObstacle) error {
	var errs error
	for _, o := range obstacles {
		errs = multierr.Append(errs, o.Validate(ps.model))
	}
	if errs != nil {
		return errs
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.obstacles = append(ps.obstacles, obstacles...)
	return nil
}

// Obstacles returns the scene's obstacles.
func (ps *PlanningScene) Obstacles() []JointSpaceObstacle {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return append([]JointSpaceObstacle(nil), ps.obstacles...)
}

// IsStateColliding reports whether the state lies inside any obstacle. Obstacles bound joints by
// name, so the group does not narrow the check.
func (ps *PlanningScene) IsStateColliding(state *referenceframe.RobotState, group string) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	_, hit := lo.Find(ps.obstacles, func(o JointSpaceObstacle) bool { return o.Contains(state) })
	return hit
}
