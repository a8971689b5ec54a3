package ports

import "time"

// Marker persists the loaded marker written into an environment after
// successful creation.
type Marker interface {
	Mark(root string, created time.Time, cleared bool) error
}
