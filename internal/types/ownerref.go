package types

import (
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
)

// OwnerType identifies the kind of entity a record belongs to or concerns.
type OwnerType string

const (
	OwnerTypeClient OwnerType = "client"
	OwnerTypeHouse  OwnerType = "house"
	OwnerTypeUser   OwnerType = "user"
)

func (t OwnerType) Validate() error {
	allowed := []OwnerType{
		OwnerTypeClient,
		OwnerTypeHouse,
		OwnerTypeUser,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid owner type").
			WithHintf("Owner type must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OwnerRef is a foreign reference from a record to the entity it belongs to.
// A record may carry several, e.g. a notice raised against multiple houses.
type OwnerRef struct {
	Type OwnerType `db:"type" json:"type"`
	ID   string    `db:"id" json:"id"`
}

func NewOwnerRef(t OwnerType, id string) OwnerRef {
	return OwnerRef{Type: t, ID: id}
}

func (r OwnerRef) String() string {
	return string(r.Type) + "/" + r.ID
}

func (r OwnerRef) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		return ierr.NewError("owner reference id is required").
			WithHint("Owner reference must carry a non-empty id").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OwnerRefs is a set of owner references attached to one record.
type OwnerRefs []OwnerRef

// Contains reports whether the set holds the exact reference.
func (refs OwnerRefs) Contains(ref OwnerRef) bool {
	return lo.Contains(refs, ref)
}

// IntersectsAny reports whether at least one reference in the set also
// appears in group. An empty group imposes no constraint and matches.
func (refs OwnerRefs) IntersectsAny(group OwnerRefs) bool {
	if len(group) == 0 {
		return true
	}
	return lo.SomeBy(refs, func(r OwnerRef) bool {
		return group.Contains(r)
	})
}

// IDsOfType extracts the ids of references of one owner type.
func (refs OwnerRefs) IDsOfType(t OwnerType) []string {
	return lo.FilterMap(refs, func(r OwnerRef, _ int) (string, bool) {
		return r.ID, r.Type == t
	})
}

func (refs OwnerRefs) Validate() error {
	for _, r := range refs {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
