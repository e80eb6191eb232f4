package dto

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/domain/dailynote"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/go-playground/validator/v10"
)

type CreateDailyNoteRequest struct {
	ClientID string    `json:"client_id" validate:"required"`
	Note     string    `json:"note" validate:"required"`
	NoteDate time.Time `json:"note_date" validate:"required"`

	MealsTaken      bool `json:"meals_taken"`
	MedicationGiven bool `json:"medication_given"`
	ActivitiesDone  bool `json:"activities_done"`
}

func (r *CreateDailyNoteRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid daily note payload").
			Mark(ierr.ErrValidation)
	}
	return r.toPayload().Validate()
}

func (r *CreateDailyNoteRequest) toPayload() dailynote.Payload {
	return dailynote.Payload{
		Note:            r.Note,
		NoteDate:        r.NoteDate,
		MealsTaken:      r.MealsTaken,
		MedicationGiven: r.MedicationGiven,
		ActivitiesDone:  r.ActivitiesDone,
	}
}

func (r *CreateDailyNoteRequest) ToCreateInput(ctx context.Context) store.CreateInput[dailynote.Payload] {
	return store.CreateInput[dailynote.Payload]{
		Payload: r.toPayload(),
		OwnerRefs: types.OwnerRefs{
			types.NewOwnerRef(types.OwnerTypeClient, r.ClientID),
		},
	}
}

type UpdateDailyNoteRequest struct {
	Note            *string `json:"note,omitempty"`
	MealsTaken      *bool   `json:"meals_taken,omitempty"`
	MedicationGiven *bool   `json:"medication_given,omitempty"`
	ActivitiesDone  *bool   `json:"activities_done,omitempty"`

	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}

func (r *UpdateDailyNoteRequest) Validate() error {
	if r.Note != nil && *r.Note == "" {
		return ierr.NewError("note text cannot be cleared").
			WithHint("Note text is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Apply merges the supplied fields over the existing record.
func (r *UpdateDailyNoteRequest) Apply(n *dailynote.DailyNote) {
	if r.Note != nil {
		n.Payload.Note = *r.Note
	}
	if r.MealsTaken != nil {
		n.Payload.MealsTaken = *r.MealsTaken
	}
	if r.MedicationGiven != nil {
		n.Payload.MedicationGiven = *r.MedicationGiven
	}
	if r.ActivitiesDone != nil {
		n.Payload.ActivitiesDone = *r.ActivitiesDone
	}
}

type DailyNoteResponse struct {
	ID              string       `json:"id"`
	ClientID        string       `json:"client_id"`
	Note            string       `json:"note"`
	NoteDate        time.Time    `json:"note_date"`
	MealsTaken      bool         `json:"meals_taken"`
	MedicationGiven bool         `json:"medication_given"`
	ActivitiesDone  bool         `json:"activities_done"`
	Status          types.Status `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	CreatedBy       string       `json:"created_by"`
	UpdatedBy       string       `json:"updated_by"`
}

type ListDailyNotesResponse = types.ListResponse[*DailyNoteResponse]

func NewDailyNoteResponse(n *dailynote.DailyNote) *DailyNoteResponse {
	clientID := ""
	if ids := n.OwnerRefs.IDsOfType(types.OwnerTypeClient); len(ids) > 0 {
		clientID = ids[0]
	}
	return &DailyNoteResponse{
		ID:              n.ID,
		ClientID:        clientID,
		Note:            n.Payload.Note,
		NoteDate:        n.Payload.NoteDate,
		MealsTaken:      n.Payload.MealsTaken,
		MedicationGiven: n.Payload.MedicationGiven,
		ActivitiesDone:  n.Payload.ActivitiesDone,
		Status:          n.Status,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
		CreatedBy:       n.CreatedBy,
		UpdatedBy:       n.UpdatedBy,
	}
}
