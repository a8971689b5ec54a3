// Package status renders an environment status report for the terminal.
package status

import "time"

// MarkerStatus reports one activation artifact.
type MarkerStatus struct {
	Path     string
	Required bool
	Present  bool
}

// ManifestInfo carries the loaded-marker details when one exists.
type ManifestInfo struct {
	CreatedAt   time.Time
	Interpreter string
	Cleared     bool
}

// Report is everything the status view shows about one environment.
type Report struct {
	Path     string
	Exists   bool
	Markers  []MarkerStatus
	Manifest *ManifestInfo
	Packages map[string]string
	// Consistent is nil when no consistency check ran.
	Consistent *bool
}

// RenderOptions adjust rendering.
type RenderOptions struct {
	Now time.Time
}
