package testutil

import (
	"context"
	"strings"

	"github.com/carehub/carehub/internal/domain/house"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

// InMemoryHouseStore implements house.Repository
type InMemoryHouseStore struct {
	*InMemoryStore[*house.House]
}

// NewInMemoryHouseStore creates a new in-memory house store
func NewInMemoryHouseStore() *InMemoryHouseStore {
	return &InMemoryHouseStore{
		InMemoryStore: NewInMemoryStore[*house.House](),
	}
}

// Helper to copy house
func copyHouse(h *house.House) *house.House {
	if h == nil {
		return nil
	}
	out := *h
	return &out
}

func (s *InMemoryHouseStore) Create(ctx context.Context, h *house.House) error {
	return s.InMemoryStore.Create(ctx, h.ID, copyHouse(h))
}

func (s *InMemoryHouseStore) Get(ctx context.Context, id string) (*house.House, error) {
	h, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyHouse(h), nil
}

func (s *InMemoryHouseStore) GetByCode(ctx context.Context, code string) (*house.House, error) {
	filterFn := func(ctx context.Context, h *house.House, _ interface{}) bool {
		return strings.EqualFold(h.Code, code) && h.TenantID == types.GetTenantID(ctx)
	}

	houses, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	if len(houses) == 0 {
		return nil, ierr.NewError("house not found").
			WithHintf("House with code %s was not found", code).
			Mark(ierr.ErrNotFound)
	}

	return copyHouse(houses[0]), nil
}

func (s *InMemoryHouseStore) List(ctx context.Context, filter *types.EntityFilter) ([]*house.House, error) {
	items, err := s.InMemoryStore.List(ctx, filter, houseFilterFn, houseSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(h *house.House, _ int) *house.House {
		return copyHouse(h)
	}), nil
}

func (s *InMemoryHouseStore) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, houseFilterFn)
}

func (s *InMemoryHouseStore) Update(ctx context.Context, h *house.House) error {
	return s.InMemoryStore.Update(ctx, h.ID, copyHouse(h))
}

func (s *InMemoryHouseStore) Delete(ctx context.Context, id string) error {
	h, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	h.Status = types.StatusInactive
	return s.Update(ctx, h)
}

// houseFilterFn implements filtering logic for houses. The free-text search
// matches name or house code.
func houseFilterFn(ctx context.Context, h *house.House, filter interface{}) bool {
	f, ok := filter.(*types.EntityFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && h.TenantID != tenantID {
		return false
	}

	if f.QueryFilter != nil && f.QueryFilter.Status != nil && h.Status != *f.QueryFilter.Status {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(h.Name), needle) &&
			!strings.Contains(strings.ToLower(h.Code), needle) {
			return false
		}
	}

	if len(f.HouseIDs) > 0 && !lo.Contains(f.HouseIDs, h.ID) {
		return false
	}

	return true
}

// houseSortFn implements sorting logic for houses
func houseSortFn(i, j *house.House) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
