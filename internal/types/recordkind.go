package types

import (
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
)

// RecordKind identifies which family of clinical/operational records a
// stored record belongs to. Every kind is managed by the same generic
// engine; the kind selects the payload schema and the capability set.
type RecordKind string

const (
	RecordKindNotice    RecordKind = "notice"
	RecordKindDailyNote RecordKind = "daily_note"
	RecordKindIncident  RecordKind = "incident"
	RecordKindContact   RecordKind = "contact"
	RecordKindDocument  RecordKind = "document"
	RecordKindHandover  RecordKind = "handover"
)

func (k RecordKind) String() string {
	return string(k)
}

func (k RecordKind) Validate() error {
	allowed := []RecordKind{
		RecordKindNotice,
		RecordKindDailyNote,
		RecordKindIncident,
		RecordKindContact,
		RecordKindDocument,
		RecordKindHandover,
	}
	if !lo.Contains(allowed, k) {
		return ierr.NewError("invalid record kind").
			WithHintf("Record kind must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IDPrefix returns the id prefix assigned to the kind.
func (k RecordKind) IDPrefix() string {
	switch k {
	case RecordKindNotice:
		return UUID_PREFIX_NOTICE
	case RecordKindDailyNote:
		return UUID_PREFIX_DAILY_NOTE
	case RecordKindIncident:
		return UUID_PREFIX_INCIDENT
	case RecordKindContact:
		return UUID_PREFIX_CONTACT
	case RecordKindDocument:
		return UUID_PREFIX_DOCUMENT
	case RecordKindHandover:
		return UUID_PREFIX_HANDOVER
	}
	return "record"
}
