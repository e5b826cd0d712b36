package liststore

import "github.com/chefassist/marketrun/internal/models"

// Store defines persistence for per-user grocery list state. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type Store interface {
	// Get returns the stored state for a user; a user with no stored list
	// gets a zero state, not an error.
	Get(userID string) (models.ListState, error)
	// Save upserts the full state for a user.
	Save(userID string, state models.ListState) error
	// Delete drops the stored state for a user.
	Delete(userID string) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
