package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/house"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateHouseRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`

	// Code is optional; a short code is generated when omitted
	Code string `json:"code"`
}

func (r *CreateHouseRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid house payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateHouseRequest) ToHouse(ctx context.Context, now time.Time) *house.House {
	code := r.Code
	if code == "" {
		code = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_HOUSE)
	}
	return &house.House{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_HOUSE),
		Code:      code,
		Name:      r.Name,
		Address:   r.Address,
		BaseModel: types.GetDefaultBaseModel(ctx, now),
	}
}

type UpdateHouseRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (r *UpdateHouseRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("house name cannot be cleared").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type HouseResponse struct {
	ID        string       `json:"id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	Status    types.Status `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ListHousesResponse = types.ListResponse[*HouseResponse]

func NewHouseResponse(h *house.House) *HouseResponse {
	return &HouseResponse{
		ID:        h.ID,
		Code:      h.Code,
		Name:      h.Name,
		Address:   h.Address,
		Status:    h.Status,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}
