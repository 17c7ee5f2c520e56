// Provides the immutable execution context shared by all build stages.
//
// A context is constructed exactly once per run, from parameters already
// resolved by the config package plus injected version metadata. Everything
// a stage can know about the run flows through it: source and output paths,
// target architecture and build type, the pinned upstream and product
// versions, and the post-resolution behavior flags. Derived locations (the
// GN output directory, the vendored Sparkle framework directory and its
// download URL, the app bundle names) are computed from the stored fields
// and never stored as separately settable state.
//
// Platform differences are a construction-time parameter: passing
// PlatformWindows selects the Windows app bundle names up front, so the
// finished context is never mutated afterwards.
package buildctx
