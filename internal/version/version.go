// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/mandalnilabja/promptrelay/internal/version.Version=v1.2.3".
package version

// Version is the current build version.
var Version = "dev"
