package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/staff"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateStaffRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role"`
	HouseID string `json:"house_id"`
}

func (r *CreateStaffRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid staff payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateStaffRequest) ToMember(ctx context.Context, now time.Time) *staff.Member {
	return &staff.Member{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_STAFF),
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		HouseID:   r.HouseID,
		BaseModel: types.GetDefaultBaseModel(ctx, now),
	}
}

type StaffResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	HouseID   string       `json:"house_id"`
	Status    types.Status `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ListStaffResponse = types.ListResponse[*StaffResponse]

func NewStaffResponse(m *staff.Member) *StaffResponse {
	return &StaffResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      m.Role,
		HouseID:   m.HouseID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
