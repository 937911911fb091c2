// Package version holds build metadata injected via ldflags.
package version

// Name is the service name reported in logs and by the CLI.
const Name = "docshelf"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return Name + " " + Version + " (" + Commit + ", " + Date + ")"
}
