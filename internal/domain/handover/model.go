package handover

import (
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Kind identifies shift handover records in the engine.
const Kind = types.RecordKindHandover

// Payload is the shift handover schema: the summary an outgoing shift
// leaves for the incoming one, tied to a house and a shift window.
type Payload struct {
	// Summary is the handover text
	Summary string `json:"summary"`

	// ShiftStart is when the outgoing shift began
	ShiftStart time.Time `json:"shift_start"`

	// ShiftEnd is when the outgoing shift ended
	ShiftEnd time.Time `json:"shift_end"`
}

// Handover is a stored shift handover record.
type Handover = record.Record[Payload]

func (p Payload) Validate() error {
	if p.Summary == "" {
		return ierr.NewError("handover summary is required").
			WithHint("Summary is required").
			Mark(ierr.ErrValidation)
	}
	if p.ShiftStart.IsZero() || p.ShiftEnd.IsZero() {
		return ierr.NewError("shift window is required").
			WithHint("Both shift start and shift end are required").
			Mark(ierr.ErrValidation)
	}
	if p.ShiftEnd.Before(p.ShiftStart) {
		return ierr.NewError("shift end precedes shift start").
			WithHint("Shift end must not precede shift start").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema maps generic criteria onto handover fields. Range criteria test the
// shift start so "handovers for last night" works regardless of when the
// summary was typed up.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *Handover) []string {
			return []string{r.Payload.Summary}
		},
		OccurredAt: func(r *Handover) time.Time {
			return r.Payload.ShiftStart
		},
	}
}
