package testutil

import (
	"context"
	"strings"

	"github.com/carehub/carehub/internal/domain/staff"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

// InMemoryStaffStore implements staff.Repository
type InMemoryStaffStore struct {
	*InMemoryStore[*staff.Member]
}

// NewInMemoryStaffStore creates a new in-memory staff store
func NewInMemoryStaffStore() *InMemoryStaffStore {
	return &InMemoryStaffStore{
		InMemoryStore: NewInMemoryStore[*staff.Member](),
	}
}

// Helper to copy staff member
func copyStaffMember(m *staff.Member) *staff.Member {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

func (s *InMemoryStaffStore) Create(ctx context.Context, m *staff.Member) error {
	return s.InMemoryStore.Create(ctx, m.ID, copyStaffMember(m))
}

func (s *InMemoryStaffStore) Get(ctx context.Context, id string) (*staff.Member, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyStaffMember(m), nil
}

func (s *InMemoryStaffStore) List(ctx context.Context, filter *types.EntityFilter) ([]*staff.Member, error) {
	items, err := s.InMemoryStore.List(ctx, filter, staffFilterFn, staffSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(m *staff.Member, _ int) *staff.Member {
		return copyStaffMember(m)
	}), nil
}

func (s *InMemoryStaffStore) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, staffFilterFn)
}

func (s *InMemoryStaffStore) Update(ctx context.Context, m *staff.Member) error {
	return s.InMemoryStore.Update(ctx, m.ID, copyStaffMember(m))
}

func (s *InMemoryStaffStore) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	m.Status = types.StatusInactive
	return s.Update(ctx, m)
}

// staffFilterFn implements filtering logic for staff members
func staffFilterFn(ctx context.Context, m *staff.Member, filter interface{}) bool {
	f, ok := filter.(*types.EntityFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && m.TenantID != tenantID {
		return false
	}

	if f.QueryFilter != nil && f.QueryFilter.Status != nil && m.Status != *f.QueryFilter.Status {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Name), needle) &&
			!strings.Contains(strings.ToLower(m.Email), needle) {
			return false
		}
	}

	if len(f.HouseIDs) > 0 && !lo.Contains(f.HouseIDs, m.HouseID) {
		return false
	}

	return true
}

// staffSortFn implements sorting logic for staff members
func staffSortFn(i, j *staff.Member) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
