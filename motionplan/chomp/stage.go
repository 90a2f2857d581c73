package chomp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Stage is a step of the planning pipeline. Stages run in declaration order; a failure in any of
// them ends the request.
type Stage int

// Pipeline stages.
const (
	StageValidating Stage = iota
	StageSeeding
	StageNormalizing
	StageInitializing
	StageOptimizing
	StagePostValidating
	StageDone
)

var stageNames = []string{
	"validating",
	"seeding",
	"normalizing",
	"initializing",
	"optimizing",
	"post-validating",
	"done",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalText writes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a stage by name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return errors.Errorf("unknown stage %q", string(text))
}
