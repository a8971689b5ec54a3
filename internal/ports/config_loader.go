package ports

import "github.com/bnema/venvctl/internal/domain"

// ConfigLoader reads a declarative check-configuration document from disk.
type ConfigLoader interface {
	Load(path string) (domain.CheckConfig, error)
}
