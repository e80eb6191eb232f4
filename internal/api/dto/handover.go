package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/handover"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateHandoverRequest struct {
	HouseID    string    `json:"house_id" validate:"required"`
	Summary    string    `json:"summary" validate:"required"`
	ShiftStart time.Time `json:"shift_start" validate:"required"`
	ShiftEnd   time.Time `json:"shift_end" validate:"required"`
}

func (r *CreateHandoverRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid handover payload").
			Mark(ierr.ErrValidation)
	}
	return r.toPayload().Validate()
}

func (r *CreateHandoverRequest) toPayload() handover.Payload {
	return handover.Payload{
		Summary:    r.Summary,
		ShiftStart: r.ShiftStart,
		ShiftEnd:   r.ShiftEnd,
	}
}

func (r *CreateHandoverRequest) ToCreateInput(ctx context.Context) store.CreateInput[handover.Payload] {
	return store.CreateInput[handover.Payload]{
		Payload: r.toPayload(),
		OwnerRefs: types.OwnerRefs{
			types.NewOwnerRef(types.OwnerTypeHouse, r.HouseID),
		},
	}
}

type UpdateHandoverRequest struct {
	Summary *string `json:"summary,omitempty"`

	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateHandoverRequest) Validate() error {
	if r.Summary != nil && *r.Summary == "" {
		return ierr.NewError("handover summary cannot be cleared").
			WithHint("Summary is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateHandoverRequest) Apply(h *handover.Handover) {
	if r.Summary != nil {
		h.Payload.Summary = *r.Summary
	}
}

type HandoverResponse struct {
	ID         string       `json:"id"`
	HouseID    string       `json:"house_id"`
	Summary    string       `json:"summary"`
	ShiftStart time.Time    `json:"shift_start"`
	ShiftEnd   time.Time    `json:"shift_end"`
	Status     types.Status `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	CreatedBy  string       `json:"created_by"`
	UpdatedBy  string       `json:"updated_by"`
}

type ListHandoversResponse = types.ListResponse[*HandoverResponse]

func NewHandoverResponse(h *handover.Handover) *HandoverResponse {
	houseID := ""
	if ids := h.OwnerRefs.IDsOfType(types.OwnerTypeHouse); len(ids) > 0 {
		houseID = ids[0]
	}
	return &HandoverResponse{
		ID:         h.ID,
		HouseID:    houseID,
		Summary:    h.Payload.Summary,
		ShiftStart: h.Payload.ShiftStart,
		ShiftEnd:   h.Payload.ShiftEnd,
		Status:     h.Status,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
		CreatedBy:  h.CreatedBy,
		UpdatedBy:  h.UpdatedBy,
	}
}
