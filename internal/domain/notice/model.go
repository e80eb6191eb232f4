package notice

import (
	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Kind identifies notice records in the engine.
const Kind = types.RecordKindNotice

// Payload is the notice-specific schema. Notices are raised against one or
// more houses and carry a validity window deciding when they appear on the
// house dashboards.
type Payload struct {
	// Title is the headline shown on the dashboard
	Title string `json:"title"`

	// Body is the notice text
	Body string `json:"body"`

	// Category groups notices, e.g. maintenance, policy, roster
	Category string `json:"category"`
}

// Notice is a stored notice record.
type Notice = record.Record[Payload]

// Validate checks payload fields before any write.
func (p Payload) Validate() error {
	if p.Title == "" {
		return ierr.NewError("notice title is required").
			WithHint("Title is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema tells the query assembler how generic criteria map onto notice
// fields: free text searches title and body, the category filter applies.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *Notice) []string {
			return []string{r.Payload.Title, r.Payload.Body}
		},
		Category: func(r *Notice) string {
			return r.Payload.Category
		},
	}
}
