package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/venvctl/internal/domain"
	"github.com/bnema/venvctl/internal/filelock"
	"github.com/bnema/venvctl/internal/ports"
	"go.uber.org/zap"
)

// Store owns the on-disk existence, creation, and removal of one environment
// instance. The environment root is presumed exclusively owned by this store
// for the duration of a workflow; an advisory file lock guards mutating
// operations against other venvctl processes, nothing more.
type Store struct {
	path    string
	layout  domain.Layout
	builder ports.Builder
	marker  ports.Marker
	clock   ports.Clock
	lock    *filelock.Lock
	log     *zap.Logger

	mu   sync.Mutex
	caps *Capabilities
}

// NewStore returns a store for the environment at path, resolved to an
// absolute location. A nil marker disables the loaded-marker write; a nil
// logger disables logging.
func NewStore(path string, builder ports.Builder, marker ports.Marker, log *zap.Logger) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve environment path: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		path:    abs,
		layout:  domain.PlatformLayout(),
		builder: builder,
		marker:  marker,
		clock:   ports.SystemClock{},
		lock:    filelock.ForEnvironment(abs),
		log:     log,
	}, nil
}

// Path returns the absolute environment root.
func (s *Store) Path() string {
	return s.path
}

// Layout returns the platform layout the store was built with.
func (s *Store) Layout() domain.Layout {
	return s.layout
}

// Create provisions the environment. When clear is true any existing
// contents are deleted first; when false creation is additive and calling it
// on an existing environment succeeds without altering working state. After
// a successful creation the capability probe runs once so later consistency
// checks do not pay detection cost repeatedly.
func (s *Store) Create(ctx context.Context, clear bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.lock.Lock(); err != nil {
		return &domain.EnvironmentError{Path: s.path, Op: "create", Err: err}
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("release environment lock", zap.Error(err))
		}
	}()

	if err := s.builder.Create(ctx, s.path, clear); err != nil {
		return &domain.EnvironmentError{Path: s.path, Op: "create", Err: err}
	}

	if s.marker != nil {
		if err := s.marker.Mark(s.path, s.clock.Now(), clear); err != nil {
			s.log.Warn("write loaded marker", zap.Error(err))
		}
	}

	s.refreshCapabilities()
	s.log.Info("environment created",
		zap.String("path", s.path),
		zap.Bool("clear", clear))

	return nil
}

// Exists reports whether the environment root is present on disk. It has no
// side effects.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Remove deletes the environment's entire subtree. Removing an absent
// environment is a no-op, not an error.
func (s *Store) Remove(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.lock.Lock(); err != nil {
		return &domain.EnvironmentError{Path: s.path, Op: "remove", Err: err}
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("release environment lock", zap.Error(err))
		}
	}()

	if !s.Exists() {
		return nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return &domain.EnvironmentError{Path: s.path, Op: "remove", Err: err}
	}

	s.invalidateCapabilities()
	s.log.Info("environment removed", zap.String("path", s.path))

	return nil
}

// Flush recreates the environment, recovering from partial or corrupt state.
// The first attempt honors clear; if it fails the failure is logged and a
// second attempt runs with clear forced, since a clean rebuild is the
// cheapest recovery from interrupted prior runs. A second failure wraps both
// causes in a single EnvironmentError.
func (s *Store) Flush(ctx context.Context, clear bool) error {
	if err := s.Create(ctx, clear); err != nil {
		s.log.Error("environment create failed, retrying with clear",
			zap.String("path", s.path),
			zap.Error(err))

		if retryErr := s.Create(ctx, true); retryErr != nil {
			return &domain.EnvironmentError{
				Path: s.path,
				Op:   "flush",
				Err:  errors.Join(err, retryErr),
			}
		}
	}

	return nil
}

// Capabilities returns the probe results for this environment, probing on
// first use if creation has not run yet.
func (s *Store) Capabilities() Capabilities {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caps == nil {
		caps := probeCapabilities(s.path, s.layout, s.log)
		s.caps = &caps
	}

	return *s.caps
}

func (s *Store) refreshCapabilities() {
	s.mu.Lock()
	defer s.mu.Unlock()

	caps := probeCapabilities(s.path, s.layout, s.log)
	s.caps = &caps
}

func (s *Store) invalidateCapabilities() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.caps = nil
}
