// Package manifest persists the loaded marker written into an environment
// after successful creation.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/venvctl/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	FileName = "venvctl.toml"

	currentVersion  = 1
	fileMode        = 0o644
	tempFilePattern = ".venvctl-*.toml.tmp"
)

// ErrNoManifest reports an environment without a manifest, typically one
// provisioned by something other than venvctl.
var ErrNoManifest = errors.New("environment manifest not found")

// Manifest records that an environment finished provisioning and how.
type Manifest struct {
	Version     int    `toml:"version"`
	CreatedAt   string `toml:"created_at"`
	Interpreter string `toml:"interpreter"`
	Cleared     bool   `toml:"cleared"`
}

// Created parses the recorded creation time. A missing or malformed value
// yields the zero time.
func (m Manifest) Created() time.Time {
	parsed, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// Recorder writes manifests for environments seeded from one interpreter.
type Recorder struct {
	interpreter string
}

var _ ports.Marker = (*Recorder)(nil)

func NewRecorder(interpreter string) *Recorder {
	return &Recorder{interpreter: interpreter}
}

// Mark writes the manifest into the environment root, atomically via a temp
// file and rename so readers never see a partial write.
func (r *Recorder) Mark(root string, created time.Time, cleared bool) error {
	m := Manifest{
		Version:     currentVersion,
		CreatedAt:   created.UTC().Format(time.RFC3339),
		Interpreter: r.interpreter,
		Cleared:     cleared,
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tempFile, err := os.CreateTemp(root, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp manifest: %w", err)
	}

	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp manifest: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp manifest: %w", err)
	}

	if err := os.Rename(tempName, filepath.Join(root, FileName)); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}

	cleanup = false

	return nil
}

// Read loads the manifest from an environment root.
func Read(root string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, ErrNoManifest
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Version == 0 {
		m.Version = currentVersion
	}

	return m, nil
}
