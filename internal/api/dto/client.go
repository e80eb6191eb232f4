package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/client"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateClientRequest struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	HouseID     string     `json:"house_id"`
}

func (r *CreateClientRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid client payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateClientRequest) ToClient(ctx context.Context, now time.Time) *client.Client {
	return &client.Client{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		HouseID:     r.HouseID,
		BaseModel:   types.GetDefaultBaseModel(ctx, now),
	}
}

type UpdateClientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	HouseID   *string `json:"house_id,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	if r.FirstName != nil && *r.FirstName == "" {
		return ierr.NewError("first name cannot be cleared").
			WithHint("First name is required").
			Mark(ierr.ErrValidation)
	}
	if r.LastName != nil && *r.LastName == "" {
		return ierr.NewError("last name cannot be cleared").
			WithHint("Last name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type ClientResponse struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	DateOfBirth *time.Time   `json:"date_of_birth,omitempty"`
	HouseID     string       `json:"house_id"`
	Status      types.Status `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type ListClientsResponse = types.ListResponse[*ClientResponse]

func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		HouseID:     c.HouseID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
