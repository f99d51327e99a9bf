// Package history provides an audit trail of evaluated expressions, grounded
// on the repository/Store split of tunaq's server/dao: a Store interface
// with a single repository-shaped set of operations, backed by either an
// in-memory or a SQLite implementation (see history/inmem, history/sqlite).
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates that a requested Entry does not exist.
var ErrNotFound = errors.New("the requested history entry was not found")

// Entry is one logged evaluation.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time

	// Mode is the angle mode the evaluation ran under ("radians" or
	// "degrees").
	Mode string

	// Input is the raw expression text that was evaluated.
	Input string

	// Result is the String() form of the resulting Expression. History is
	// an audit trail of what was computed, not a cache of the engine's AST,
	// so a reparsable string is sufficient; it also sidesteps having to
	// binary-encode an arbitrary Expression sum-type value (see
	// history/sqlite for where that tradeoff is made explicit).
	Result string

	// Err, if non-empty, is the error message produced instead of a Result.
	Err string
}

// Store logs evaluations and retrieves them back out. Implementations must
// be safe for concurrent use.
type Store interface {
	// Log records a new Entry. ID and Timestamp are assigned by the store
	// and returned on the result; any values set by the caller are ignored.
	Log(ctx context.Context, e Entry) (Entry, error)

	// Recent returns up to limit entries, most recent first. A limit of 0
	// or less returns all entries.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Get retrieves a single Entry by ID, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Entry, error)

	Close() error
}
