package referenceframe

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ModelConfigJSON represents all supported fields in a kinematics JSON file.
type ModelConfigJSON struct {
	Name   string        `json:"name"`
	Joints []JointConfig `json:"joints"`
	Groups []GroupConfig `json:"groups,omitempty"`
}

// JointConfig is a joint as written in a JSON model file. Missing limits are unbounded.
type JointConfig struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// GroupConfig is a named ordered list of joints.
type GroupConfig struct {
	Name   string   `json:"name"`
	Joints []string `json:"joints"`
}

// ToJoint converts the config into a joint descriptor.
func (cfg JointConfig) ToJoint() (Joint, error) {
	limit := Unbounded()
	if cfg.Min != nil {
		limit.Min = *cfg.Min
	}
	if cfg.Max != nil {
		limit.Max = *cfg.Max
	}
	if cfg.Type == RevoluteJoint && (cfg.Min == nil) != (cfg.Max == nil) {
		return Joint{}, errors.Errorf("revolute joint %q must set both min and max or neither", cfg.ID)
	}
	return NewJoint(cfg.ID, cfg.Type, limit)
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model. modelName sets the
// name of the model, will use the name from the JSON if string is empty. Without any groups in the
// file, a single group named after the model holds every active joint.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Model, error) {
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}
	cfg := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig(modelName)
}

// ParseConfig converts the ModelConfigJSON struct into a full Model with the name modelName.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*Model, error) {
	if modelName == "" {
		modelName = cfg.Name
	}

	var errs error
	joints := make([]Joint, 0, len(cfg.Joints))
	for _, jc := range cfg.Joints {
		j, err := jc.ToJoint()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		joints = append(joints, j)
	}
	if errs != nil {
		return nil, errs
	}

	m, err := NewModel(modelName, joints)
	if err != nil {
		return nil, err
	}
	if len(cfg.Groups) == 0 {
		if err := m.AddGroup(modelName, m.VariableNames()); err != nil {
			return nil, err
		}
		return m, nil
	}
	for _, g := range cfg.Groups {
		if err := m.AddGroup(g.Name, g.Joints); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ParseModelFile loads a model from a .urdf or .json file.
func ParseModelFile(filename, modelName string) (*Model, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case URDFExtension:
		return ParseURDFFile(filename, modelName)
	case "json":
		//nolint:gosec
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read json file")
		}
		return UnmarshalModelJSON(data, modelName)
	default:
		return nil, errors.Errorf("unsupported model file %q, want .urdf or .json", filename)
	}
}

// MarshalJSON writes the model in the JSON model format, including its groups.
func (m *Model) MarshalJSON() ([]byte, error) {
	cfg := ModelConfigJSON{Name: m.name}
	for _, j := range m.joints {
		jc := JointConfig{ID: j.Name, Type: j.Type}
		if j.Type != ContinuousJoint && j.Type != FixedJoint {
			if !math.IsInf(j.Limit.Min, -1) {
				lower := j.Limit.Min
				jc.Min = &lower
			}
			if !math.IsInf(j.Limit.Max, 1) {
				upper := j.Limit.Max
				jc.Max = &upper
			}
		}
		cfg.Joints = append(cfg.Joints, jc)
	}
	for _, name := range m.GroupNames() {
		cfg.Groups = append(cfg.Groups, GroupConfig{Name: name, Joints: m.groups[name].ActiveJointNames()})
	}
	return json.Marshal(cfg)
}
