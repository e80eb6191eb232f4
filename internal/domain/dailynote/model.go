package dailynote

import (
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Kind identifies daily note records in the engine.
const Kind = types.RecordKindDailyNote

// Payload is the daily note schema: free-form shift notes about a client
// plus the end-of-shift checklist. Daily notes are one of the few kinds
// staff may hard-delete, so retries of a delete must stay safe.
type Payload struct {
	// Note is the free-form shift note text
	Note string `json:"note"`

	// NoteDate is the care day the note describes
	NoteDate time.Time `json:"note_date"`

	// Checklist flags recorded at end of shift
	MealsTaken      bool `json:"meals_taken"`
	MedicationGiven bool `json:"medication_given"`
	ActivitiesDone  bool `json:"activities_done"`
}

// DailyNote is a stored daily note record.
type DailyNote = record.Record[Payload]

func (p Payload) Validate() error {
	if p.Note == "" {
		return ierr.NewError("note text is required").
			WithHint("Note text is required").
			Mark(ierr.ErrValidation)
	}
	if p.NoteDate.IsZero() {
		return ierr.NewError("note date is required").
			WithHint("Note date is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema maps generic criteria onto daily note fields. Range criteria test
// the care day the note describes, not the audit timestamp.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *DailyNote) []string {
			return []string{r.Payload.Note}
		},
		OccurredAt: func(r *DailyNote) time.Time {
			return r.Payload.NoteDate
		},
	}
}
