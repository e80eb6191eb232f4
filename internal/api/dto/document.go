package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/document"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type CreateDocumentRequest struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category"`
	BlobRef     string `json:"blob_ref" validate:"required"`
	ContentType string `json:"content_type"`

	// ClientIDs and HouseIDs are the entities the document concerns; at
	// least one reference is required.
	ClientIDs []string `json:"client_ids,omitempty"`
	HouseIDs  []string `json:"house_ids,omitempty"`

	// ExpiresAt is the document's expiry, mapped onto the validity window
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r *CreateDocumentRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid document payload").
			Mark(ierr.ErrValidation)
	}
	if len(r.ClientIDs) == 0 && len(r.HouseIDs) == 0 {
		return ierr.NewError("document needs at least one owner").
			WithHint("Attach the document to at least one client or house").
			Mark(ierr.ErrValidation)
	}
	return r.toPayload().Validate()
}

func (r *CreateDocumentRequest) toPayload() document.Payload {
	return document.Payload{
		Title:       r.Title,
		Category:    r.Category,
		BlobRef:     r.BlobRef,
		ContentType: r.ContentType,
	}
}

func (r *CreateDocumentRequest) ToCreateInput(ctx context.Context) store.CreateInput[document.Payload] {
	refs := lo.Map(r.ClientIDs, func(id string, _ int) types.OwnerRef {
		return types.NewOwnerRef(types.OwnerTypeClient, id)
	})
	refs = append(refs, lo.Map(r.HouseIDs, func(id string, _ int) types.OwnerRef {
		return types.NewOwnerRef(types.OwnerTypeHouse, id)
	})...)
	return store.CreateInput[document.Payload]{
		Payload:   r.toPayload(),
		OwnerRefs: refs,
		Window: types.ValidityWindow{
			ValidUntil: r.ExpiresAt,
		},
	}
}

type UpdateDocumentRequest struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateDocumentRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return ierr.NewError("document title cannot be cleared").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateDocumentRequest) Apply(d *document.Document) {
	if r.Title != nil {
		d.Payload.Title = *r.Title
	}
	if r.Category != nil {
		d.Payload.Category = *r.Category
	}
	if r.ExpiresAt != nil {
		d.ValidUntil = r.ExpiresAt
	}
}

type DocumentResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	BlobRef     string       `json:"blob_ref"`
	ContentType string       `json:"content_type"`
	ClientIDs   []string     `json:"client_ids,omitempty"`
	HouseIDs    []string     `json:"house_ids,omitempty"`
	Status      types.Status `json:"status"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CreatedBy   string       `json:"created_by"`
	UpdatedBy   string       `json:"updated_by"`
}

type ListDocumentsResponse = types.ListResponse[*DocumentResponse]

func NewDocumentResponse(d *document.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:          d.ID,
		Title:       d.Payload.Title,
		Category:    d.Payload.Category,
		BlobRef:     d.Payload.BlobRef,
		ContentType: d.Payload.ContentType,
		ClientIDs:   d.OwnerRefs.IDsOfType(types.OwnerTypeClient),
		HouseIDs:    d.OwnerRefs.IDsOfType(types.OwnerTypeHouse),
		Status:      d.Status,
		ExpiresAt:   d.ValidUntil,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		CreatedBy:   d.CreatedBy,
		UpdatedBy:   d.UpdatedBy,
	}
}
