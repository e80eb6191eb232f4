package types

import (
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
)

// Status is a type for the lifecycle status of a record in the database.
// It is used to drive soft deletion and to decide whether a record should
// be included in queries. Record kinds that historically used a boolean
// deleted flag map onto the active/inactive subset.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	// StatusClosed is only meaningful for workflow-bearing kinds
	// (incident reports); all other kinds never take this value.
	StatusClosed Status = "closed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	allowed := []Status{
		StatusActive,
		StatusInactive,
		StatusClosed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid status").
			WithHintf("Status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}
