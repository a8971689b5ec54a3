package ports

import "context"

// Builder is the external environment-builder collaborator. Implementations
// are expected to be idempotent when clear is false and the target already
// exists; failures surface as opaque errors for the caller to wrap.
type Builder interface {
	Create(ctx context.Context, path string, clear bool) error
}
