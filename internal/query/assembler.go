// Package query assembles composite list criteria into a single filter
// predicate. Absent criteria are omitted from the conjunction entirely, so
// an empty filter matches every record the implicit scoping lets through.
package query

import (
	"strings"
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

// FieldSchema tells the assembler how to read the kind-specific fields the
// generic criteria apply to. Any accessor may be nil, in which case the
// corresponding criterion is not applicable to the kind and is skipped.
type FieldSchema[P any] struct {
	// SearchFields returns the text fields the free-text search term is
	// matched against, OR-combined.
	SearchFields func(*record.Record[P]) []string

	// Category returns the categorical field exact-match filters apply to.
	Category func(*record.Record[P]) string

	// RaisedForType returns the raised-for entity type of workflow-bearing
	// kinds.
	RaisedForType func(*record.Record[P]) string

	// OccurredAt returns the record's own timestamp tested by range
	// criteria. Defaults to CreatedAt when nil.
	OccurredAt func(*record.Record[P]) time.Time
}

// Build composes the supplied criteria of the filter into one AND predicate.
// A nil filter matches everything.
func Build[P any](f *types.RecordFilter, schema FieldSchema[P]) record.Predicate[P] {
	if f == nil {
		return MatchAll[P]()
	}

	var preds []record.Predicate[P]

	if f.QueryFilter != nil && f.QueryFilter.Status != nil {
		preds = append(preds, StatusIs[P](*f.QueryFilter.Status))
	}
	if f.Search != "" && schema.SearchFields != nil {
		preds = append(preds, MatchesSearch(f.Search, schema.SearchFields))
	}
	if len(f.Categories) > 0 && schema.Category != nil {
		preds = append(preds, CategoryIn(f.Categories, schema.Category))
	}
	if f.RaisedForType != "" && schema.RaisedForType != nil {
		preds = append(preds, raisedForTypeIs(f.RaisedForType, schema.RaisedForType))
	}
	if len(f.OwnerRefs) > 0 {
		preds = append(preds, OwnedByAny[P](f.OwnerRefs))
	}
	if f.TimeRangeFilter != nil && (f.StartTime != nil || f.EndTime != nil) {
		at := schema.OccurredAt
		if at == nil {
			at = func(r *record.Record[P]) time.Time { return r.CreatedAt }
		}
		preds = append(preds, OccurredWithin(at, f.StartTime, f.EndTime))
	}

	return And(preds...)
}

// MatchAll matches every record.
func MatchAll[P any]() record.Predicate[P] {
	return func(*record.Record[P]) bool { return true }
}

// And combines predicates into a conjunction. No predicates means match all.
func And[P any](preds ...record.Predicate[P]) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// StatusIs matches records carrying exactly the given status.
func StatusIs[P any](status types.Status) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		return r.Status == status
	}
}

// MatchesSearch matches when the term appears as a case-insensitive
// substring in at least one of the given text fields.
func MatchesSearch[P any](term string, fields func(*record.Record[P]) []string) record.Predicate[P] {
	needle := strings.ToLower(term)
	return func(r *record.Record[P]) bool {
		return lo.SomeBy(fields(r), func(field string) bool {
			return strings.Contains(strings.ToLower(field), needle)
		})
	}
}

// CategoryIn matches when the record's category equals one of the given
// values exactly.
func CategoryIn[P any](categories []string, category func(*record.Record[P]) string) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		return lo.Contains(categories, category(r))
	}
}

func raisedForTypeIs[P any](want string, raisedForType func(*record.Record[P]) string) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		return raisedForType(r) == want
	}
}

// OwnedByAny matches when the record's owner reference set intersects the
// given set.
func OwnedByAny[P any](refs types.OwnerRefs) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		return len(r.OwnerRefs) > 0 && r.OwnerRefs.IntersectsAny(refs)
	}
}

// OccurredWithin matches when the record's own timestamp falls inside the
// half-open [start, end) window. A nil bound is unbounded on that side.
func OccurredWithin[P any](at func(*record.Record[P]) time.Time, start, end *time.Time) record.Predicate[P] {
	return func(r *record.Record[P]) bool {
		t := at(r)
		if start != nil && t.Before(*start) {
			return false
		}
		if end != nil && !t.Before(*end) {
			return false
		}
		return true
	}
}
