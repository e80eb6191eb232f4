package document

import (
	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Kind identifies document records in the engine.
const Kind = types.RecordKindDocument

// Payload is the document schema. The blob itself lives in external file
// storage; the record only carries an opaque reference to it. The validity
// window doubles as the document's expiry (care plans, consents).
type Payload struct {
	// Title is the document's display title
	Title string `json:"title"`

	// Category groups documents, e.g. care_plan, consent, medical
	Category string `json:"category"`

	// BlobRef is the opaque reference into external file storage
	BlobRef string `json:"blob_ref"`

	// ContentType is the MIME type recorded at upload time
	ContentType string `json:"content_type"`
}

// Document is a stored document record.
type Document = record.Record[Payload]

func (p Payload) Validate() error {
	if p.Title == "" {
		return ierr.NewError("document title is required").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	if p.BlobRef == "" {
		return ierr.NewError("document blob reference is required").
			WithHint("A stored file reference is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema maps generic criteria onto document fields.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *Document) []string {
			return []string{r.Payload.Title}
		},
		Category: func(r *Document) string {
			return r.Payload.Category
		},
	}
}
