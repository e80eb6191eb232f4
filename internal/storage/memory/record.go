// Package memory provides map-backed storage adapters guarded by a RW mutex.
// They satisfy the same repository contracts as the postgres adapters and
// back both the test suites and embedded deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
)

// RecordRepository is an in-memory implementation of record.Repository for
// one record kind. Records are cloned on the way in and out so callers can
// never mutate stored state through an alias.
type RecordRepository[P any] struct {
	mu    sync.RWMutex
	items map[string]*record.Record[P]
}

// NewRecordRepository creates an empty in-memory record repository.
func NewRecordRepository[P any]() *RecordRepository[P] {
	return &RecordRepository[P]{
		items: make(map[string]*record.Record[P]),
	}
}

func (s *RecordRepository[P]) Create(ctx context.Context, r *record.Record[P]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[r.ID]; exists {
		return ierr.NewError("record already exists").
			WithHintf("A record with id %s already exists", r.ID).
			WithReportableDetails(map[string]any{"id": r.ID}).
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[r.ID] = r.Clone()
	return nil
}

func (s *RecordRepository[P]) Get(ctx context.Context, id string) (*record.Record[P], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.items[id]
	if !exists || !visibleToTenant(ctx, r) {
		return nil, ierr.NewError("record not found").
			WithHintf("Record with id %s was not found", id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return r.Clone(), nil
}

// Update is a compare-and-swap on the stored UpdatedAt: the lock spans the
// check and the write, so an interleaved writer surfaces as a conflict
// instead of a silently lost commit.
func (s *RecordRepository[P]) Update(ctx context.Context, r *record.Record[P], prior time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.items[r.ID]
	if !exists || !visibleToTenant(ctx, existing) {
		return ierr.NewError("record not found").
			WithHintf("Record with id %s was not found", r.ID).
			WithReportableDetails(map[string]any{"id": r.ID}).
			Mark(ierr.ErrNotFound)
	}

	if !existing.UpdatedAt.Equal(prior) {
		return ierr.NewError("record was modified by another caller").
			WithHint("The record changed since it was last read. Re-fetch and retry.").
			WithReportableDetails(map[string]any{
				"id":             r.ID,
				"prior_version":  prior,
				"stored_version": existing.UpdatedAt,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	s.items[r.ID] = r.Clone()
	return nil
}

// Delete is idempotent: deleting an absent id is a no-op.
func (s *RecordRepository[P]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.items[id]
	if exists && visibleToTenant(ctx, existing) {
		delete(s.items, id)
	}
	return nil
}

func (s *RecordRepository[P]) List(ctx context.Context, filter *types.RecordFilter, pred record.Predicate[P]) ([]*record.Record[P], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.scan(ctx, pred)
	sortRecords(result, filter)

	if filter != nil && !filter.IsUnlimited() {
		start := filter.GetOffset()
		if start >= len(result) {
			return []*record.Record[P]{}, nil
		}
		end := start + filter.GetLimit()
		if end > len(result) {
			end = len(result)
		}
		result = result[start:end]
	}

	out := make([]*record.Record[P], len(result))
	for i, r := range result {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *RecordRepository[P]) Count(ctx context.Context, filter *types.RecordFilter, pred record.Predicate[P]) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scan(ctx, pred)), nil
}

// Clear removes all records. Test helper.
func (s *RecordRepository[P]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*record.Record[P])
}

func (s *RecordRepository[P]) scan(ctx context.Context, pred record.Predicate[P]) []*record.Record[P] {
	var result []*record.Record[P]
	for _, r := range s.items {
		if !visibleToTenant(ctx, r) {
			continue
		}
		if pred == nil || pred(r) {
			result = append(result, r)
		}
	}
	return result
}

func visibleToTenant[P any](ctx context.Context, r *record.Record[P]) bool {
	tenantID := types.GetTenantID(ctx)
	return tenantID == "" || r.TenantID == tenantID
}

func sortRecords[P any](records []*record.Record[P], filter *types.RecordFilter) {
	sortKey := types.FILTER_DEFAULT_SORT
	order := types.FILTER_DEFAULT_ORDER
	if filter != nil {
		sortKey = filter.GetSort()
		order = filter.GetOrder()
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		var less bool
		switch sortKey {
		case "updated_at":
			less = a.UpdatedAt.Before(b.UpdatedAt)
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if order == types.OrderDesc {
			return !less && !equalSortKey(a, b, sortKey)
		}
		return less
	})
}

func equalSortKey[P any](a, b *record.Record[P], sortKey string) bool {
	switch sortKey {
	case "updated_at":
		return a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}
