package testutil

import (
	"context"
	"strings"

	"github.com/carehub/carehub/internal/domain/client"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

// Helper to copy client
func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}

	out := *c
	if c.DateOfBirth != nil {
		dob := *c.DateOfBirth
		out.DateOfBirth = &dob
	}
	return &out
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.EntityFilter) ([]*client.Client, error) {
	items, err := s.InMemoryStore.List(ctx, filter, clientFilterFn, clientSortFn)
	if err != nil {
		return nil, err
	}

	return lo.Map(items, func(c *client.Client, _ int) *client.Client {
		return copyClient(c)
	}), nil
}

func (s *InMemoryClientStore) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, clientFilterFn)
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Update(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusInactive
	return s.Update(ctx, c)
}

// clientFilterFn implements filtering logic for clients
func clientFilterFn(ctx context.Context, c *client.Client, filter interface{}) bool {
	f, ok := filter.(*types.EntityFilter)
	if !ok {
		return false
	}

	// Apply tenant filter
	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && c.TenantID != tenantID {
		return false
	}

	if f.QueryFilter != nil && f.QueryFilter.Status != nil && c.Status != *f.QueryFilter.Status {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.FullName()), needle) {
			return false
		}
	}

	if len(f.HouseIDs) > 0 && !lo.Contains(f.HouseIDs, c.HouseID) {
		return false
	}

	return true
}

// clientSortFn implements sorting logic for clients
func clientSortFn(i, j *client.Client) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
