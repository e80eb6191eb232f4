package record

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/types"
)

// Repository is the storage-adapter boundary for one record kind. It provides
// durable keyed get/put/scan semantics; no transactional guarantees beyond
// single-record atomicity are assumed. All operations are scoped to the
// tenant carried on the context.
type Repository[P any] interface {
	// Create persists a new record. Fails with ErrAlreadyExists when the id
	// is already taken.
	Create(ctx context.Context, r *Record[P]) error

	// Get retrieves a record by ID. Fails with ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Record[P], error)

	// Update overwrites an existing record, guarded by a compare-and-swap
	// against the stored UpdatedAt: prior is the value the caller read
	// before merging, and the write only lands if the stored record still
	// carries it. Fails with ErrNotFound when absent and
	// ErrVersionConflict when another write slipped in between the
	// caller's read and this call.
	Update(ctx context.Context, r *Record[P], prior time.Time) error

	// Delete removes a record unconditionally. Deleting an absent id is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error

	// List scans the kind's records, applies the predicate, sorts and
	// paginates per the filter. Returns an empty slice when nothing
	// matches.
	List(ctx context.Context, filter *types.RecordFilter, pred Predicate[P]) ([]*Record[P], error)

	// Count returns the number of records matching the predicate, ignoring
	// pagination.
	Count(ctx context.Context, filter *types.RecordFilter, pred Predicate[P]) (int, error)
}
