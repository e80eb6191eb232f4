package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/incident"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateIncidentRequest struct {
	Description string                 `json:"description" validate:"required"`
	Severity    incident.Severity      `json:"severity" validate:"required"`
	RaisedFor   incident.RaisedForType `json:"raised_for" validate:"required"`
	OccurredAt  time.Time              `json:"occurred_at" validate:"required"`

	// RaisedForID is the entity the report concerns; its type must match
	// RaisedFor.
	RaisedForID string `json:"raised_for_id" validate:"required"`

	// HouseID is the house the incident is attributed to
	HouseID string `json:"house_id" validate:"required"`
}

func (r *CreateIncidentRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid incident payload").
			Mark(ierr.ErrValidation)
	}
	return r.toPayload().Validate()
}

func (r *CreateIncidentRequest) toPayload() incident.Payload {
	return incident.Payload{
		Description: r.Description,
		Severity:    r.Severity,
		RaisedFor:   r.RaisedFor,
		OccurredAt:  r.OccurredAt,
	}
}

func (r *CreateIncidentRequest) ToCreateInput(ctx context.Context) store.CreateInput[incident.Payload] {
	refs := types.OwnerRefs{
		types.NewOwnerRef(types.OwnerTypeHouse, r.HouseID),
	}
	switch r.RaisedFor {
	case incident.RaisedForClient:
		refs = append(refs, types.NewOwnerRef(types.OwnerTypeClient, r.RaisedForID))
	case incident.RaisedForStaff:
		refs = append(refs, types.NewOwnerRef(types.OwnerTypeUser, r.RaisedForID))
	}
	return store.CreateInput[incident.Payload]{
		Payload:   r.toPayload(),
		OwnerRefs: refs,
	}
}

type UpdateIncidentRequest struct {
	Description *string            `json:"description,omitempty"`
	Severity    *incident.Severity `json:"severity,omitempty"`

	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateIncidentRequest) Validate() error {
	if r.Description != nil && *r.Description == "" {
		return ierr.NewError("incident description cannot be cleared").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}
	if r.Severity != nil {
		if err := r.Severity.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateIncidentRequest) Apply(i *incident.Incident) {
	if r.Description != nil {
		i.Payload.Description = *r.Description
	}
	if r.Severity != nil {
		i.Payload.Severity = *r.Severity
	}
}

type IncidentResponse struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Severity    incident.Severity      `json:"severity"`
	RaisedFor   incident.RaisedForType `json:"raised_for"`
	OccurredAt  time.Time              `json:"occurred_at"`
	HouseIDs    []string               `json:"house_ids"`
	Status      types.Status           `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	CreatedBy   string                 `json:"created_by"`
	UpdatedBy   string                 `json:"updated_by"`
}

type ListIncidentsResponse = types.ListResponse[*IncidentResponse]

func NewIncidentResponse(i *incident.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          i.ID,
		Description: i.Payload.Description,
		Severity:    i.Payload.Severity,
		RaisedFor:   i.Payload.RaisedFor,
		OccurredAt:  i.Payload.OccurredAt,
		HouseIDs:    i.OwnerRefs.IDsOfType(types.OwnerTypeHouse),
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		CreatedBy:   i.CreatedBy,
		UpdatedBy:   i.UpdatedBy,
	}
}
