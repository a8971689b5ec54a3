package application

import (
	"fmt"
	"os"

	"github.com/bnema/venvctl/internal/domain"
	"go.uber.org/zap"
)

// Capability reports whether an optional introspection facility could be
// acquired for an environment. Probing is best effort: an unavailable
// capability carries the acquisition error instead of aborting anything.
type Capability struct {
	Name string
	Err  error
}

func (c Capability) Available() bool {
	return c.Err == nil
}

// Capabilities holds the probe results for one environment. The metadata
// capability backs installed-package enumeration; checks that it cannot back
// are skipped, not failed.
type Capabilities struct {
	Metadata Capability
}

func probeCapabilities(root string, layout domain.Layout, log *zap.Logger) Capabilities {
	caps := Capabilities{
		Metadata: probeExecutable("package metadata", layout.BinPath(root), "pip"),
	}

	if !caps.Metadata.Available() {
		log.Warn("capability unavailable",
			zap.String("capability", caps.Metadata.Name),
			zap.Error(caps.Metadata.Err))
	}

	return caps
}

func probeExecutable(name, binDir, executable string) Capability {
	for _, candidate := range executableCandidates(binDir, executable) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return Capability{Name: name}
		}
	}

	return Capability{
		Name: name,
		Err:  fmt.Errorf("%s not found under %s", executable, binDir),
	}
}
