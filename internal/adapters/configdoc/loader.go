// Package configdoc loads declarative check-configuration documents. A
// document carries two top-level keys: files (relative path to required
// flag) and packages (name to version constraint, null or empty for "any
// version"). The format follows the file extension.
package configdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/venvctl/internal/domain"
	"github.com/bnema/venvctl/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Loader struct{}

var _ ports.ConfigLoader = Loader{}

type document struct {
	Files    map[string]bool    `json:"files" toml:"files" yaml:"files"`
	Packages map[string]*string `json:"packages" toml:"packages" yaml:"packages"`
}

// Load reads the document at path. Supported extensions are .json, .toml,
// .yaml, and .yml; anything else, a missing file, or a malformed document is
// an error for the checker to fail closed on.
func (Loader) Load(path string) (domain.CheckConfig, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var doc document
	switch ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.CheckConfig{}, fmt.Errorf("read check configuration: %w", err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return domain.CheckConfig{}, fmt.Errorf("decode check configuration: %w", err)
		}
	case ".toml":
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.CheckConfig{}, fmt.Errorf("read check configuration: %w", err)
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return domain.CheckConfig{}, fmt.Errorf("decode check configuration: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.CheckConfig{}, fmt.Errorf("read check configuration: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return domain.CheckConfig{}, fmt.Errorf("decode check configuration: %w", err)
		}
	default:
		return domain.CheckConfig{}, fmt.Errorf("unsupported check configuration format %q", ext)
	}

	return fromDocument(doc), nil
}

func fromDocument(doc document) domain.CheckConfig {
	cfg := domain.CheckConfig{Files: doc.Files}

	if doc.Packages != nil {
		cfg.Packages = make(map[string]string, len(doc.Packages))
		for name, constraint := range doc.Packages {
			if constraint == nil {
				cfg.Packages[name] = ""
				continue
			}
			cfg.Packages[name] = *constraint
		}
	}

	return cfg
}
