// Package version holds the build version, overridable at link time.
package version

var Version = "dev"
