package buildctx

// Pinned upstream and product version identifiers for a build.
//
// Metadata is injected into context construction rather than read from
// package-level state, so tests and alternate release channels can supply
// their own pins without touching globals.
type Metadata struct {
	ChromiumVersion string // Upstream Chromium tag to check out (e.g., "137.0.7151.69").
	ProductVersion  string // Nxtscape product version (e.g., "0.6.1").
	SparkleVersion  string // Sparkle framework release to vendor (e.g., "2.6.4").
}

// Returns the version pins for the current release.
func DefaultMetadata() Metadata {
	return Metadata{
		ChromiumVersion: "137.0.7151.69",
		ProductVersion:  "0.6.1",
		SparkleVersion:  "2.6.4",
	}
}
