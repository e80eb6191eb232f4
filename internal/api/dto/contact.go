package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/contact"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateContactRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Relationship string `json:"relationship"`

	// ValidFrom/ValidUntil bound the period the contact arrangement holds
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

func (r *CreateContactRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid contact payload").
			Mark(ierr.ErrValidation)
	}
	return r.toPayload().Validate()
}

func (r *CreateContactRequest) toPayload() contact.Payload {
	return contact.Payload{
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Relationship: r.Relationship,
	}
}

func (r *CreateContactRequest) ToCreateInput(ctx context.Context) store.CreateInput[contact.Payload] {
	return store.CreateInput[contact.Payload]{
		Payload: r.toPayload(),
		OwnerRefs: types.OwnerRefs{
			types.NewOwnerRef(types.OwnerTypeClient, r.ClientID),
		},
		Window: types.ValidityWindow{
			ValidFrom:  r.ValidFrom,
			ValidUntil: r.ValidUntil,
		},
	}
}

type UpdateContactRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Relationship *string `json:"relationship,omitempty"`

	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("contact name cannot be cleared").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateContactRequest) Apply(c *contact.Contact) {
	if r.Name != nil {
		c.Payload.Name = *r.Name
	}
	if r.Phone != nil {
		c.Payload.Phone = *r.Phone
	}
	if r.Email != nil {
		c.Payload.Email = *r.Email
	}
	if r.Relationship != nil {
		c.Payload.Relationship = *r.Relationship
	}
	if r.ValidFrom != nil {
		c.ValidFrom = r.ValidFrom
	}
	if r.ValidUntil != nil {
		c.ValidUntil = r.ValidUntil
	}
}

type ContactResponse struct {
	ID           string       `json:"id"`
	ClientID     string       `json:"client_id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Relationship string       `json:"relationship"`
	Status       types.Status `json:"status"`
	ValidFrom    *time.Time   `json:"valid_from,omitempty"`
	ValidUntil   *time.Time   `json:"valid_until,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CreatedBy    string       `json:"created_by"`
	UpdatedBy    string       `json:"updated_by"`
}

type ListContactsResponse = types.ListResponse[*ContactResponse]

func NewContactResponse(c *contact.Contact) *ContactResponse {
	clientID := ""
	if ids := c.OwnerRefs.IDsOfType(types.OwnerTypeClient); len(ids) > 0 {
		clientID = ids[0]
	}
	return &ContactResponse{
		ID:           c.ID,
		ClientID:     clientID,
		Name:         c.Payload.Name,
		Phone:        c.Payload.Phone,
		Email:        c.Payload.Email,
		Relationship: c.Payload.Relationship,
		Status:       c.Status,
		ValidFrom:    c.ValidFrom,
		ValidUntil:   c.ValidUntil,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		CreatedBy:    c.CreatedBy,
		UpdatedBy:    c.UpdatedBy,
	}
}
