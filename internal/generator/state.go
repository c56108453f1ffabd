package generator

import (
	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/models"
	"github.com/toyz/implementor/internal/utils"
)

// BuildState is the progress of one packaged-mode run
type BuildState int

const (
	StateCreated BuildState = iota
	StateSourceWritten
	StateCompiled
	StatePackaged
	StateFailed
)

// String returns the state name
func (s BuildState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateSourceWritten:
		return "SourceWritten"
	case StateCompiled:
		return "Compiled"
	case StatePackaged:
		return "Packaged"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// buildRun tracks a single ImplementJar invocation
type buildRun struct {
	typeName    string
	archive     string
	workspace   string
	state       BuildState
	diagnostics *utils.DiagnosticSystem
}

func newBuildRun(desc *models.TypeDescriptor, archive string, diagnostics *utils.DiagnosticSystem) *buildRun {
	return &buildRun{
		typeName:    desc.QualifiedName(),
		archive:     archive,
		state:       StateCreated,
		diagnostics: diagnostics,
	}
}

func (r *buildRun) advance(next BuildState) {
	r.diagnostics.Verbose("%s: %s -> %s", r.typeName, r.state, next)
	r.state = next
}

// fail moves the run to StateFailed and annotates err with the failed stage
func (r *buildRun) fail(err error) error {
	stage := r.state
	r.state = StateFailed
	r.diagnostics.Verbose("%s: %s -> %s", r.typeName, stage, StateFailed)

	if base, ok := err.(*errors.BaseError); ok {
		base.WithContext("stage", stage.String())
		if r.workspace != "" {
			base.WithContext("workspace", r.workspace)
		}
	}
	return err
}
