// Loads build configuration files and resolves run parameters.
//
// A run's parameters come from three layers: CLI flags, an optional YAML
// configuration document, and built-in defaults. Load reads and
// schema-validates the document; Resolve merges the layers field by field
// into one Parameters value, the only input to execution context
// construction.
//
// The merge rule is explicit CLI flag > config value > default. Step and
// notification booleans from the config only fill in flags the user left
// untouched, and source directory overrides must exist on disk to take
// effect; an absent path is downgraded to a warning on the resolved
// parameters rather than an error.
package config
