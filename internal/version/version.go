// Package version holds build metadata injected via ldflags.
package version

import "fmt"

// Name is the application name reported to collaborators (e.g. the MongoDB appName).
const Name = "postdex"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for startup logs.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, Date)
}

// AppName identifies this build to the database server.
func AppName() string {
	return Name + "/" + Version
}
