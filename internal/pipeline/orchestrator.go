package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/notify"
)

var ErrInterrupted = errors.New("build interrupted")

// Terminal state of a run.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeFailed
	OutcomeInterrupted
)

// Returns the outcome's name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// Returned after a run reaches a terminal state.
type Result struct {
	Outcome Outcome
	Fault   *Fault        // Set when Outcome is OutcomeFailed.
	Elapsed time.Duration // Wall-clock time since context construction.
}

// Executes the selected stages of the build pipeline in fixed order.
type Orchestrator struct {
	bctx     *buildctx.Context
	notifier notify.Notifier
	stages   []GatedStage
}

// Creates an orchestrator over the given gated stages.
//
// The stage slice defines the pipeline order; nothing reorders it later.
// The notifier observes orchestration events and may be [notify.Nop].
func New(bctx *buildctx.Context, notifier notify.Notifier, stages ...GatedStage) *Orchestrator {
	return &Orchestrator{
		bctx:     bctx,
		notifier: notifier,
		stages:   stages,
	}
}

// Runs the pipeline until every selected stage completes, a stage faults,
// or the context is cancelled.
//
// Stages run strictly sequentially on the calling goroutine. A disabled
// stage executes nothing and emits no events. The first fault skips all
// remaining stages unconditionally. Cancellation is observed at stage
// boundaries and classified as an interrupt, including when it surfaces as
// an error from the running stage. Every terminal state logs exactly one
// summary and fires exactly one terminal notification.
func (o *Orchestrator) Run(ctx context.Context) Result {
	o.deliver(func() error {
		return o.notifier.RunStarted(o.bctx.BuildType(), o.bctx.Architecture())
	})

	for _, gs := range o.stages {
		if !gs.Enabled {
			slog.Debug("stage skipped", "stage", gs.Stage.Name())
			continue
		}

		if ctx.Err() != nil {
			return o.interrupted()
		}

		slog.Info("stage started", "stage", gs.Stage.Name())

		if err := gs.Stage.Run(ctx, o.bctx); err != nil {
			if ctx.Err() != nil {
				return o.interrupted()
			}
			return o.failed(&Fault{Stage: gs.Stage.Name(), Err: err})
		}

		slog.Info("stage completed", "stage", gs.Stage.Name())
		o.deliver(func() error {
			return o.notifier.StepCompleted(gs.Stage.Description())
		})
	}

	return o.succeeded()
}

// Concludes a fully successful run.
func (o *Orchestrator) succeeded() Result {
	elapsed := o.elapsed()
	mins, secs := minSec(elapsed)

	slog.Info("build completed", "elapsed", elapsed.Round(time.Second))
	o.deliver(func() error {
		return o.notifier.RunSucceeded(mins, secs)
	})

	return Result{Outcome: OutcomeSucceeded, Elapsed: elapsed}
}

// Concludes a run ended by a stage fault.
func (o *Orchestrator) failed(fault *Fault) Result {
	elapsed := o.elapsed()

	slog.Error("build failed", "stage", fault.Stage, "cause", fault.Err, "elapsed", elapsed.Round(time.Second))
	o.deliver(func() error {
		return o.notifier.RunFailed(fault.Error())
	})

	return Result{Outcome: OutcomeFailed, Fault: fault, Elapsed: elapsed}
}

// Concludes a run ended by an external interrupt.
func (o *Orchestrator) interrupted() Result {
	elapsed := o.elapsed()

	slog.Warn("build interrupted", "elapsed", elapsed.Round(time.Second))
	o.deliver(o.notifier.RunInterrupted)

	return Result{Outcome: OutcomeInterrupted, Elapsed: elapsed}
}

// Returns wall-clock time since context construction.
func (o *Orchestrator) elapsed() time.Duration {
	return time.Since(o.bctx.StartTime())
}

// Invokes a notification call, logging and discarding any delivery error.
//
// Delivery is side-channel only: a failed notification never changes a
// state transition or the run's outcome.
func (o *Orchestrator) deliver(send func() error) {
	if err := send(); err != nil {
		slog.Warn("notification delivery failed", "cause", err)
	}
}

// Splits a duration into whole minutes and leftover seconds.
func minSec(d time.Duration) (int, int) {
	secs := int(d.Seconds())
	return secs / 60, secs % 60
}
