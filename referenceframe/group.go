package referenceframe

import (
	"github.com/samber/lo"
)

// JointGroup is an ordered set of active joints planned for together. Kinds and limits are fixed
// when the group is defined.
type JointGroup struct {
	name   string
	joints []Joint
}

func newJointGroup(name string, joints []Joint) *JointGroup {
	return &JointGroup{name: name, joints: joints}
}

// Name returns the group name.
func (g *JointGroup) Name() string {
	return g.name
}

// ActiveJoints returns the group's joints in planning order.
func (g *JointGroup) ActiveJoints() []Joint {
	return append([]Joint(nil), g.joints...)
}

// ActiveJointNames returns the names of the group's joints in planning order.
func (g *JointGroup) ActiveJointNames() []string {
	return lo.Map(g.joints, func(j Joint, _ int) string { return j.Name })
}

// DoF returns the number of active joints.
func (g *JointGroup) DoF() int {
	return len(g.joints)
}
