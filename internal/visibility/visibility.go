// Package visibility decides whether a record is currently applicable.
// Everything here is a pure function over value types: no storage access,
// no errors. A record with an internally inconsistent validity window
// evaluates to inactive rather than failing.
package visibility

import (
	"time"

	"github.com/carehub/carehub/internal/types"
)

// IsActive reports whether a record is currently active at asOf.
//
// Rules, in order, short-circuiting on the first failure:
//  1. the record status is active
//  2. when group is non-empty, at least one owner reference intersects it
//  3. the validity window contains asOf ([ValidFrom, ValidUntil), either
//     bound optional, inverted window never contains)
func IsActive(status types.Status, owners types.OwnerRefs, window types.ValidityWindow, asOf time.Time, group types.OwnerRefs) bool {
	if status != types.StatusActive {
		return false
	}
	if !owners.IntersectsAny(group) {
		return false
	}
	return WindowContains(window, asOf)
}

// WindowContains reports whether asOf falls inside the half-open window.
func WindowContains(w types.ValidityWindow, asOf time.Time) bool {
	return w.Contains(asOf)
}
