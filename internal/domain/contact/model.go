package contact

import (
	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Kind identifies contact records in the engine.
const Kind = types.RecordKindContact

// Payload is the contact schema: a person to reach about a client, current
// only while the contact's validity window holds (guardianship and support
// arrangements change over time).
type Payload struct {
	// Name is the contact person's name
	Name string `json:"name"`

	// Phone is the contact phone number
	Phone string `json:"phone"`

	// Email is the contact email address
	Email string `json:"email"`

	// Relationship describes the link to the client, e.g. guardian, GP
	Relationship string `json:"relationship"`
}

// Contact is a stored contact record.
type Contact = record.Record[Payload]

func (p Payload) Validate() error {
	if p.Name == "" {
		return ierr.NewError("contact name is required").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	if p.Phone == "" && p.Email == "" {
		return ierr.NewError("contact needs a phone or an email").
			WithHint("Provide at least one of phone or email").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema maps generic criteria onto contact fields: free text searches name
// and relationship, the category filter matches the relationship exactly.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *Contact) []string {
			return []string{r.Payload.Name, r.Payload.Relationship}
		},
		Category: func(r *Contact) string {
			return r.Payload.Relationship
		},
	}
}
