package pipeline

import (
	"context"
	"fmt"

	"github.com/nxtscape/nxbuild/internal/buildctx"
)

// A single unit of the build pipeline.
//
// A stage reads the execution context, mutates the filesystem and invokes
// external tools, and reports every failure as an error return. It must not
// feed anything back into the context or alter orchestration decisions: the
// pipeline order and the selection of later stages are fixed before the
// first stage runs.
type Stage interface {

	// Returns the stage's short identifier (e.g. "clean").
	Name() string

	// Returns the human description used in logs and step notifications
	// (e.g. "cleaning build artifacts").
	Description() string

	// Performs the stage's work. The context carries the run's interrupt
	// signal; blocking tool invocations should pass it through.
	Run(ctx context.Context, bctx *buildctx.Context) error
}

// A stage paired with its selection gate.
//
// Gating never reorders the pipeline: disabled stages are skipped in place
// and the remaining stages execute in their declared order.
type GatedStage struct {
	Stage   Stage
	Enabled bool
}

// Pairs a stage with its gate.
func Gated(s Stage, enabled bool) GatedStage {
	return GatedStage{Stage: s, Enabled: enabled}
}

// A classified failure attributable to one stage.
type Fault struct {
	Stage string // Name of the faulting stage.
	Err   error  // Underlying cause.
}

func (f *Fault) Error() string {
	return fmt.Sprintf("stage %s: %v", f.Stage, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
