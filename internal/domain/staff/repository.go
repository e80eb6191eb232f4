package staff

import (
	"context"

	"github.com/carehub/carehub/internal/types"
)

// Repository defines the interface for staff data access
type Repository interface {
	// Create creates a new staff member
	Create(ctx context.Context, m *Member) error

	// Get retrieves a staff member by ID
	Get(ctx context.Context, id string) (*Member, error)

	// List retrieves staff members based on filter criteria
	List(ctx context.Context, filter *types.EntityFilter) ([]*Member, error)

	// Count counts staff members based on filter criteria
	Count(ctx context.Context, filter *types.EntityFilter) (int, error)

	// Update updates an existing staff member
	Update(ctx context.Context, m *Member) error

	// Delete archives a staff member by ID
	Delete(ctx context.Context, id string) error
}
