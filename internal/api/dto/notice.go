package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/notice"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type CreateNoticeRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body"`
	Category string `json:"category"`

	// HouseIDs are the houses the notice is raised against
	HouseIDs []string `json:"house_ids" validate:"required,min=1"`

	// ValidFrom/ValidUntil bound when the notice shows on dashboards.
	// Either may be omitted for an open-ended notice.
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

func (r *CreateNoticeRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid notice payload").
			Mark(ierr.ErrValidation)
	}
	payload := notice.Payload{Title: r.Title, Body: r.Body, Category: r.Category}
	return payload.Validate()
}

func (r *CreateNoticeRequest) ToCreateInput(ctx context.Context) store.CreateInput[notice.Payload] {
	return store.CreateInput[notice.Payload]{
		Payload: notice.Payload{
			Title:    r.Title,
			Body:     r.Body,
			Category: r.Category,
		},
		OwnerRefs: lo.Map(r.HouseIDs, func(id string, _ int) types.OwnerRef {
			return types.NewOwnerRef(types.OwnerTypeHouse, id)
		}),
		Window: types.ValidityWindow{
			ValidFrom:  r.ValidFrom,
			ValidUntil: r.ValidUntil,
		},
	}
}

// UpdateNoticeRequest is a sparse update: only the fields a form exposes are
// sent, and an omitted field keeps its existing value.
type UpdateNoticeRequest struct {
	Title    *string `json:"title,omitempty"`
	Body     *string `json:"body,omitempty"`
	Category *string `json:"category,omitempty"`

	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// ExpectedVersion is the updated_at value the caller last observed;
	// omitted skips the conflict check.
	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateNoticeRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ierr.NewError("notice title cannot be cleared").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateNoticeRequest) Apply(n *notice.Notice) {
	if r.Title != nil {
		n.Payload.Title = *r.Title
	}
	if r.Body != nil {
		n.Payload.Body = *r.Body
	}
	if r.Category != nil {
		n.Payload.Category = *r.Category
	}
	if r.ValidFrom != nil {
		n.ValidFrom = r.ValidFrom
	}
	if r.ValidUntil != nil {
		n.ValidUntil = r.ValidUntil
	}
}

// ListActiveNoticesRequest asks for the notices currently visible for a set
// of houses at an instant.
type ListActiveNoticesRequest struct {
	HouseIDs []string   `json:"house_ids,omitempty"`
	AsOf     *time.Time `json:"as_of,omitempty"`
}

type NoticeResponse struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Body       string       `json:"body"`
	Category   string       `json:"category"`
	HouseIDs   []string     `json:"house_ids"`
	Status     types.Status `json:"status"`
	ValidFrom  *time.Time   `json:"valid_from,omitempty"`
	ValidUntil *time.Time   `json:"valid_until,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	CreatedBy  string       `json:"created_by"`
	UpdatedBy  string       `json:"updated_by"`
}

type ListNoticesResponse = types.ListResponse[*NoticeResponse]

func NewNoticeResponse(n *notice.Notice) *NoticeResponse {
	return &NoticeResponse{
		ID:         n.ID,
		Title:      n.Payload.Title,
		Body:       n.Payload.Body,
		Category:   n.Payload.Category,
		HouseIDs:   n.OwnerRefs.IDsOfType(types.OwnerTypeHouse),
		Status:     n.Status,
		ValidFrom:  n.ValidFrom,
		ValidUntil: n.ValidUntil,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
		CreatedBy:  n.CreatedBy,
		UpdatedBy:  n.UpdatedBy,
	}
}
