package types

import (
	"time"
)

// ValidityWindow bounds the interval during which a record is considered
// current. Either bound may be nil, meaning unbounded on that side. The
// interval is half-open: [ValidFrom, ValidUntil).
type ValidityWindow struct {
	ValidFrom  *time.Time `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil *time.Time `db:"valid_until" json:"valid_until,omitempty"`
}

// IsZero reports whether neither bound is set.
func (w ValidityWindow) IsZero() bool {
	return w.ValidFrom == nil && w.ValidUntil == nil
}

// IsInverted reports whether both bounds are set with ValidUntil before
// ValidFrom. The store accepts such a window; the visibility evaluator
// treats it as never containing any instant.
func (w ValidityWindow) IsInverted() bool {
	return w.ValidFrom != nil && w.ValidUntil != nil && w.ValidUntil.Before(*w.ValidFrom)
}

// Contains reports whether asOf falls inside the half-open window.
// An unset bound is unbounded on that side; an inverted window never
// contains any instant.
func (w ValidityWindow) Contains(asOf time.Time) bool {
	if w.IsInverted() {
		return false
	}
	if w.ValidFrom != nil && asOf.Before(*w.ValidFrom) {
		return false
	}
	if w.ValidUntil != nil && !asOf.Before(*w.ValidUntil) {
		return false
	}
	return true
}
