// Package stages implements the concrete build pipeline stages.
//
// Each stage satisfies the pipeline.Stage contract: it reads the immutable
// execution context, works against the filesystem and external tools, and
// reports failures as classified errors. Stage order and selection are the
// orchestrator's business; nothing in this package skips or reorders other
// stages.
//
// External tools are invoked through the toolchain package so that missing
// binaries, non-zero exits, and timeouts surface as distinct fault causes.
// The git setup stage additionally drives the Chromium checkout with go-git
// for tag fetching and checkout, shelling out only for gclient.
package stages
