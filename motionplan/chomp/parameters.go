package chomp

import (
	"math"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// InitializationMethod names how the grid interior is filled before optimization.
type InitializationMethod string

// Supported initialization methods.
const (
	Linear           InitializationMethod = "linear"
	Cubic            InitializationMethod = "cubic"
	QuinticSpline    InitializationMethod = "quintic-spline"
	ExternallySeeded InitializationMethod = "externally-seeded"
)

// default values for planning parameters.
const (
	defaultInitializationMethod = QuinticSpline

	// seconds
	defaultTrajectoryDuration = 3.0

	// seconds between waypoints
	defaultTrajectoryDiscretization = 0.03

	// absorbs round-off when dividing duration by discretization
	gridSizeEpsilon = 1e-9

	// MaxGridPoints bounds the number of waypoints a single request may ask for.
	MaxGridPoints = 1 << 20
)

// PlanningParameters configure one planning request. Keys the seeding core does not understand are
// kept in OptimizerSettings and passed to the optimizer untouched.
type PlanningParameters struct {
	InitializationMethod     InitializationMethod   `json:"trajectory_initialization_method"`
	TrajectoryDuration       float64                `json:"trajectory_duration"`
	TrajectoryDiscretization float64                `json:"trajectory_discretization"`
	OptimizerSettings        map[string]interface{} `json:"optimizer_settings,omitempty"`
}

// NewBasicParameters returns the default parameters.
func NewBasicParameters() *PlanningParameters {
	return &PlanningParameters{
		InitializationMethod:     defaultInitializationMethod,
		TrajectoryDuration:       defaultTrajectoryDuration,
		TrajectoryDiscretization: defaultTrajectoryDiscretization,
		OptimizerSettings:        map[string]interface{}{},
	}
}

// NewParametersFromExtra overlays a loosely typed map onto the default parameters. Unrecognized
// top-level keys become optimizer settings.
func NewParametersFromExtra(extra map[string]interface{}) (*PlanningParameters, error) {
	params := NewBasicParameters()
	if len(extra) == 0 {
		return params, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: params, Metadata: &md})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, wrapPlanError(InvalidParameters, err, "cannot decode planning parameters")
	}
	for _, key := range md.Unused {
		if strings.Contains(key, ".") {
			continue
		}
		params.OptimizerSettings[key] = extra[key]
	}
	return params, nil
}

// ReadParametersFile reads parameters from a JSON5 file.
func ReadParametersFile(filename string) (*PlanningParameters, error) {
	//nolint:gosec
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	extra := map[string]interface{}{}
	if err := json5.Unmarshal(data, &extra); err != nil {
		return nil, errors.Wrapf(err, "cannot parse parameters file %q", filename)
	}
	return NewParametersFromExtra(extra)
}

// Validate checks that the parameters describe a grid with at least a start and a goal row and no
// more than MaxGridPoints rows. The initialization method is checked when the grid is seeded.
func (p *PlanningParameters) Validate() error {
	if p == nil {
		return newPlanError(InvalidParameters, "no planning parameters")
	}
	if !(p.TrajectoryDuration > 0) || math.IsInf(p.TrajectoryDuration, 0) {
		return newPlanError(InvalidParameters, "trajectory duration must be positive and finite, got %v", p.TrajectoryDuration)
	}
	if !(p.TrajectoryDiscretization > 0) || math.IsInf(p.TrajectoryDiscretization, 0) {
		return newPlanError(InvalidParameters, "trajectory discretization must be positive and finite, got %v", p.TrajectoryDiscretization)
	}
	if p.TrajectoryDiscretization > p.TrajectoryDuration {
		return newPlanError(InvalidParameters, "trajectory discretization %v exceeds duration %v",
			p.TrajectoryDiscretization, p.TrajectoryDuration)
	}
	if steps := math.Floor(p.TrajectoryDuration/p.TrajectoryDiscretization + gridSizeEpsilon); !(steps < MaxGridPoints) {
		return newPlanError(InvalidParameters, "trajectory duration %v at discretization %v needs more than %d waypoints",
			p.TrajectoryDuration, p.TrajectoryDiscretization, MaxGridPoints)
	}
	return nil
}

// NumPoints is the number of waypoints, floor(duration / discretization) + 1.
func (p *PlanningParameters) NumPoints() int {
	return int(math.Floor(p.TrajectoryDuration/p.TrajectoryDiscretization+gridSizeEpsilon)) + 1
}

// DecodeOptimizerSettings decodes the opaque optimizer settings into an optimizer's own config
// struct, matching keys against its json tags.
func (p *PlanningParameters) DecodeOptimizerSettings(into interface{}) error {
	if len(p.OptimizerSettings) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: into})
	if err != nil {
		return err
	}
	return decoder.Decode(p.OptimizerSettings)
}
