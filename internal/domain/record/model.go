package record

import (
	"time"

	"github.com/carehub/carehub/internal/types"
	"github.com/carehub/carehub/internal/visibility"
)

// Record is the generic persisted unit managed by the engine: a note, a
// report, a notice, a contact and so on. P is the kind-specific payload
// schema; the engine never inspects it beyond copying it around.
//
// Payload types must have value semantics (no maps, no slices) so that the
// in-memory repository can hand out safe copies by assignment.
type Record[P any] struct {
	// ID is assigned on creation and immutable afterward.
	ID string `db:"id" json:"id"`

	// Kind selects the payload schema and capability set.
	Kind types.RecordKind `db:"kind" json:"kind"`

	// Payload carries the kind-specific fields, opaque to the engine.
	Payload P `db:"payload" json:"payload"`

	// OwnerRefs are the foreign references to the owning entities.
	OwnerRefs types.OwnerRefs `db:"owner_refs" json:"owner_refs,omitempty"`

	types.ValidityWindow
	types.BaseModel
}

// IsVisibleAt reports whether the record is currently active at asOf for
// the given group context.
func (r *Record[P]) IsVisibleAt(asOf time.Time, group types.OwnerRefs) bool {
	return visibility.IsActive(r.Status, r.OwnerRefs, r.ValidityWindow, asOf, group)
}

// Clone returns an independent copy of the record. The payload is copied by
// assignment, the owner reference set and window bounds are duplicated.
func (r *Record[P]) Clone() *Record[P] {
	if r == nil {
		return nil
	}
	out := *r
	if r.OwnerRefs != nil {
		out.OwnerRefs = make(types.OwnerRefs, len(r.OwnerRefs))
		copy(out.OwnerRefs, r.OwnerRefs)
	}
	if r.ValidFrom != nil {
		t := *r.ValidFrom
		out.ValidFrom = &t
	}
	if r.ValidUntil != nil {
		t := *r.ValidUntil
		out.ValidUntil = &t
	}
	return &out
}

// Predicate is a pure filter over records, assembled by the query package
// and applied by list operations.
type Predicate[P any] func(*Record[P]) bool
