package house

import (
	"context"

	"github.com/carehub/carehub/internal/types"
)

// Repository defines the interface for house data access
type Repository interface {
	// Create creates a new house
	Create(ctx context.Context, h *House) error

	// Get retrieves a house by ID
	Get(ctx context.Context, id string) (*House, error)

	// GetByCode retrieves a house by its short code
	GetByCode(ctx context.Context, code string) (*House, error)

	// List retrieves houses based on filter criteria
	List(ctx context.Context, filter *types.EntityFilter) ([]*House, error)

	// Count counts houses based on filter criteria
	Count(ctx context.Context, filter *types.EntityFilter) (int, error)

	// Update updates an existing house
	Update(ctx context.Context, h *House) error

	// Delete archives a house by ID
	Delete(ctx context.Context, id string) error
}
