package domain

import "runtime"

// CheckConfig declares what a consistent environment must contain.
//
// Files maps environment-relative paths to a required flag; entries with a
// false flag are recorded but not checked. Packages maps package names to a
// version constraint (for example ">=2.31.0"); an empty constraint accepts
// any installed version. A nil map means "nothing declared", which merge
// treats differently from an empty map.
type CheckConfig struct {
	Files    map[string]bool
	Packages map[string]string
}

// DefaultCheckConfig returns the platform baseline: activation markers
// required for the current platform, pip installed at any version.
func DefaultCheckConfig() CheckConfig {
	return defaultCheckConfig(runtime.GOOS)
}

func defaultCheckConfig(goos string) CheckConfig {
	windows := goos == "windows"

	return CheckConfig{
		Files: map[string]bool{
			"Scripts/activate.bat": windows,
			"Scripts/activate":     false,
			"Scripts/python.exe":   windows,
			"bin/activate":         !windows,
			"bin/python":           !windows,
		},
		Packages: map[string]string{
			"pip": "",
		},
	}
}

// MergeCheckConfig lays override over base by top-level key. The merge is
// shallow: an override that supplies Files replaces the whole base Files map
// rather than merging individual entries, and likewise for Packages. Callers
// who override a map and still want a default entry must repeat it.
func MergeCheckConfig(base, override CheckConfig) CheckConfig {
	merged := base
	if override.Files != nil {
		merged.Files = override.Files
	}
	if override.Packages != nil {
		merged.Packages = override.Packages
	}

	return merged
}
