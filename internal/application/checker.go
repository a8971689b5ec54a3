package application

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/bnema/venvctl/internal/domain"
	"github.com/bnema/venvctl/internal/ports"
	"go.uber.org/zap"
)

// defaultMinInterpreter is the oldest interpreter the environment may carry.
const defaultMinInterpreter = "3.8"

// CheckOptions adjust a single consistency check.
type CheckOptions struct {
	// SkipSelfCheck disables the package manager's aggregate dependency
	// integrity pass.
	SkipSelfCheck bool
	// MinInterpreterVersion overrides the default interpreter floor. Empty
	// uses the default.
	MinInterpreterVersion string
}

// Checker validates an environment against a declarative configuration. It
// is a pure audit predicate: every failure, expected or not, degrades to a
// false result with a logged cause, and nothing propagates to the caller.
type Checker struct {
	store     *Store
	runner    ports.CommandRunner
	inspector ports.PackageInspector
	loader    ports.ConfigLoader
	log       *zap.Logger
}

// NewChecker returns a checker auditing the store's environment. A nil
// logger disables logging.
func NewChecker(store *Store, runner ports.CommandRunner, inspector ports.PackageInspector, loader ports.ConfigLoader, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}

	return &Checker{
		store:     store,
		runner:    runner,
		inspector: inspector,
		loader:    loader,
		log:       log,
	}
}

// CheckFile loads a declarative configuration document and checks the
// environment against it. A missing or malformed document fails closed.
func (c *Checker) CheckFile(ctx context.Context, path string, opts CheckOptions) bool {
	cfg, err := c.loader.Load(path)
	if err != nil {
		c.log.Error("load check configuration",
			zap.String("path", path),
			zap.Error(err))
		return false
	}

	return c.Check(ctx, &cfg, opts)
}

// Check audits the environment against cfg merged over the platform
// defaults. A nil cfg checks the defaults alone.
//
// The merge is shallow by top-level key: a supplied files map entirely
// replaces the default files map, and likewise for packages. Required files
// short-circuit on the first miss. Package checks are skipped entirely when
// the metadata capability is unavailable; otherwise a missing package, an
// unparsable constraint or version, or an unsatisfied constraint each fail
// the check. Unless disabled, the package manager's own integrity check runs
// last; both a nonzero verdict and a failure to execute it fail the check.
func (c *Checker) Check(ctx context.Context, cfg *domain.CheckConfig, opts CheckOptions) bool {
	merged := domain.DefaultCheckConfig()
	if cfg != nil {
		merged = domain.MergeCheckConfig(merged, *cfg)
	}

	if !c.interpreterSatisfied(ctx, opts.MinInterpreterVersion) {
		return false
	}

	if !c.requiredFilesPresent(merged.Files) {
		return false
	}

	if !c.packagesSatisfied(ctx, merged.Packages) {
		return false
	}

	if !opts.SkipSelfCheck && !c.selfCheckPassed(ctx) {
		return false
	}

	c.log.Info("environment consistent with configuration",
		zap.String("path", c.store.Path()))

	return true
}

func (c *Checker) requiredFilesPresent(files map[string]bool) bool {
	for name, required := range files {
		if !required {
			continue
		}

		full := filepath.Join(c.store.Path(), filepath.FromSlash(name))
		if _, err := os.Stat(full); err != nil {
			c.log.Error("missing required file", zap.String("path", full))
			return false
		}
	}

	return true
}

func (c *Checker) packagesSatisfied(ctx context.Context, packages map[string]string) bool {
	if len(packages) == 0 {
		return true
	}

	caps := c.store.Capabilities()
	if !caps.Metadata.Available() {
		c.log.Warn("package metadata capability unavailable, skipping package checks",
			zap.Error(caps.Metadata.Err))
		return true
	}

	installed, err := c.inspector.ListInstalled(ctx)
	if err != nil {
		c.log.Error("enumerate installed packages", zap.Error(err))
		return false
	}

	for name, constraint := range packages {
		version, ok := installed[name]
		if !ok {
			c.log.Error("missing package", zap.String("package", name))
			return false
		}
		if constraint == "" {
			continue
		}

		spec, err := semver.NewConstraint(constraint)
		if err != nil {
			c.log.Error("parse version constraint",
				zap.String("package", name),
				zap.String("constraint", constraint),
				zap.Error(err))
			return false
		}

		have, err := semver.NewVersion(version)
		if err != nil {
			c.log.Error("parse installed version",
				zap.String("package", name),
				zap.String("version", version),
				zap.Error(err))
			return false
		}

		if !spec.Check(have) {
			c.log.Error("version constraint not satisfied",
				zap.String("package", name),
				zap.String("constraint", constraint),
				zap.String("installed", version))
			return false
		}
	}

	return true
}

// selfCheckPassed runs the package manager's aggregate integrity check.
// Unlike package enumeration it is not gated on a capability: an environment
// that cannot execute the check at all is as inconsistent as one that fails
// it.
func (c *Checker) selfCheckPassed(ctx context.Context) bool {
	if err := c.inspector.SelfCheck(ctx); err != nil {
		c.log.Error("package manager self-check failed", zap.Error(err))
		return false
	}

	return true
}

// interpreterSatisfied gates on the environment interpreter's version. An
// interpreter that cannot be queried or parsed counts as an unavailable
// capability and is skipped; only a version confirmed below the floor fails.
func (c *Checker) interpreterSatisfied(ctx context.Context, min string) bool {
	if min == "" {
		min = defaultMinInterpreter
	}

	floor, err := semver.NewVersion(min)
	if err != nil {
		c.log.Warn("parse interpreter floor",
			zap.String("min", min),
			zap.Error(err))
		return true
	}

	result, err := c.runner.Run(ctx, "python", "--version")
	if err != nil {
		c.log.Warn("query interpreter version, skipping interpreter gate", zap.Error(err))
		return true
	}

	raw := strings.TrimSpace(result.Stdout)
	if raw == "" {
		raw = strings.TrimSpace(result.Stderr)
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		c.log.Warn("empty interpreter version output")
		return true
	}

	have, err := semver.NewVersion(fields[len(fields)-1])
	if err != nil {
		c.log.Warn("parse interpreter version",
			zap.String("output", raw),
			zap.Error(err))
		return true
	}

	if have.LessThan(floor) {
		c.log.Error("interpreter below required version",
			zap.String("installed", have.String()),
			zap.String("minimum", floor.String()))
		return false
	}

	return true
}
