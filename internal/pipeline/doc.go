// Package pipeline executes the build's stages in fixed order.
//
// The pipeline is an ordered sequence of gated stages: clean, git setup,
// patch application, build, sign, package. Gates decide whether a stage
// runs; they never change the order, and a skipped stage has no side
// effects. The orchestrator advances through the sequence on a single
// goroutine, stopping at the first fault and skipping everything after it.
//
// Interrupts are observed at the orchestration loop, not injected into a
// running tool: cancelling the run context ends the pipeline at the next
// stage boundary with a distinct interrupted outcome, which callers map to
// a distinct exit status. Notification events fire synchronously with the
// matching state transitions and are best-effort only.
//
// Example usage:
//
//	orch := pipeline.New(bctx, notifier,
//	    pipeline.Gated(stages.NewClean(), params.Clean),
//	    pipeline.Gated(stages.NewBuild(params.GNFlagsFile), params.Build),
//	)
//	result := orch.Run(ctx)
//	if result.Outcome != pipeline.OutcomeSucceeded {
//	    // map to exit status
//	}
package pipeline
