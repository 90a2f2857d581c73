package referenceframe

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Model is a kinematic model reduced to what trajectory seeding needs: an ordered list of joints
// and named groups of them. Once its groups are defined a Model is
// not modified again and is safe for concurrent reads.
type Model struct {
	name       string
	joints     []Joint
	jointIndex map[string]int
	// variables lists the indices into joints of every active joint, in model order.
	variables     []int
	variableIndex map[string]int
	groups        map[string]*JointGroup
}

// NewModel builds a model from joint descriptors. Every problem with the joint list is reported.
func NewModel(name string, joints []Joint) (*Model, error) {
	m := &Model{
		name:          name,
		jointIndex:    make(map[string]int, len(joints)),
		variableIndex: map[string]int{},
		groups:        map[string]*JointGroup{},
	}

	var errs error
	for _, j := range joints {
		if j.Name == "" {
			errs = multierr.Append(errs, errors.New("joint with empty name"))
			continue
		}
		if _, dup := m.jointIndex[j.Name]; dup {
			errs = multierr.Append(errs, NewDuplicateJointError(j.Name))
			continue
		}
		m.jointIndex[j.Name] = len(m.joints)
		if j.Active() {
			m.variableIndex[j.Name] = len(m.variables)
			m.variables = append(m.variables, len(m.joints))
		}
		m.joints = append(m.joints, j)
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// Name returns the name of this model.
func (m *Model) Name() string {
	return m.name
}

// Joints returns every joint of the model in definition order.
func (m *Model) Joints() []Joint {
	return append([]Joint(nil), m.joints...)
}

// Joint looks up a joint by name.
func (m *Model) Joint(name string) (Joint, bool) {
	idx, ok := m.jointIndex[name]
	if !ok {
		return Joint{}, false
	}
	return m.joints[idx], true
}

// VariableNames returns the names of the active joints, which make up a full robot state.
func (m *Model) VariableNames() []string {
	return lo.Map(m.variables, func(idx, _ int) string { return m.joints[idx].Name })
}

// VariableCount returns the number of variables in a full robot state.
func (m *Model) VariableCount() int {
	return len(m.variables)
}

// AddGroup defines a named group from joint names. Fixed joints are accepted and dropped from the
// group's active joints.
func (m *Model) AddGroup(name string, jointNames []string) error {
	if name == "" {
		return errors.New("joint group must have a name")
	}
	if _, exists := m.groups[name]; exists {
		return errors.Errorf("joint group %q defined more than once", name)
	}

	active := make([]Joint, 0, len(jointNames))
	for _, jName := range lo.Uniq(jointNames) {
		j, ok := m.Joint(jName)
		if !ok {
			return errors.Wrapf(NewJointNotFoundError(jName), "defining group %q", name)
		}
		if j.Active() {
			active = append(active, j)
		}
	}
	m.groups[name] = newJointGroup(name, active)
	return nil
}

// Group returns the named joint group.
func (m *Model) Group(name string) (*JointGroup, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, NewGroupNotFoundError(name)
	}
	return g, nil
}

// GroupNames returns the sorted names of every defined group.
func (m *Model) GroupNames() []string {
	names := lo.Keys(m.groups)
	sort.Strings(names)
	return names
}

// SatisfiesPositionBounds reports whether every named position is within its joint's bounds.
// Names unknown to the model are ignored.
func (m *Model) SatisfiesPositionBounds(names []string, positions []float64) bool {
	for i, name := range names {
		if i >= len(positions) {
			break
		}
		if j, ok := m.Joint(name); ok && j.Active() && !j.SatisfiesBounds(positions[i]) {
			return false
		}
	}
	return true
}
