package incident

import (
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

// Kind identifies incident report records in the engine.
const Kind = types.RecordKindIncident

// Severity grades an incident report.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Validate() error {
	allowed := []Severity{
		SeverityLow,
		SeverityMedium,
		SeverityHigh,
		SeverityCritical,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid severity").
			WithHintf("Severity must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RaisedForType identifies what kind of entity the report was raised for.
type RaisedForType string

const (
	RaisedForClient RaisedForType = "client"
	RaisedForHouse  RaisedForType = "house"
	RaisedForStaff  RaisedForType = "staff"
)

func (t RaisedForType) Validate() error {
	allowed := []RaisedForType{
		RaisedForClient,
		RaisedForHouse,
		RaisedForStaff,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid raised-for type").
			WithHintf("Raised-for type must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Payload is the incident report schema. Incidents are the workflow-bearing
// kind: they move from active to closed once reviewed, and a closed report
// keeps its record but drops out of the default listings.
type Payload struct {
	// Description is the narrative of what happened
	Description string `json:"description"`

	// Severity grades the incident
	Severity Severity `json:"severity"`

	// RaisedFor identifies the entity type the report concerns
	RaisedFor RaisedForType `json:"raised_for"`

	// OccurredAt is when the incident happened
	OccurredAt time.Time `json:"occurred_at"`
}

// Incident is a stored incident report.
type Incident = record.Record[Payload]

func (p Payload) Validate() error {
	if p.Description == "" {
		return ierr.NewError("incident description is required").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}
	if err := p.Severity.Validate(); err != nil {
		return err
	}
	if err := p.RaisedFor.Validate(); err != nil {
		return err
	}
	if p.OccurredAt.IsZero() {
		return ierr.NewError("incident occurrence time is required").
			WithHint("Occurrence time is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Schema maps generic criteria onto incident fields. Range criteria test the
// occurrence time; the raised-for filter applies to this kind.
func Schema() query.FieldSchema[Payload] {
	return query.FieldSchema[Payload]{
		SearchFields: func(r *Incident) []string {
			return []string{r.Payload.Description}
		},
		Category: func(r *Incident) string {
			return string(r.Payload.Severity)
		},
		RaisedForType: func(r *Incident) string {
			return string(r.Payload.RaisedFor)
		},
		OccurredAt: func(r *Incident) time.Time {
			return r.Payload.OccurredAt
		},
	}
}
