// Package buildinfo carries release metadata stamped by the build.
//
// Values are overridden at link time:
//
//	go build -ldflags "-X .../internal/buildinfo.Version=1.2.0"
package buildinfo

var (
	// Version is the semantic release version.
	Version = "0.1.0-dev"

	// Codename is the release nickname shown next to the version.
	Codename = "Reticle"

	// CommitHash identifies the source revision.
	CommitHash = "unknown"

	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
