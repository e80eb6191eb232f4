package client

import (
	"context"

	"github.com/carehub/carehub/internal/types"
)

// Repository defines the interface for client data access
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, c *Client) error

	// Get retrieves a client by ID
	Get(ctx context.Context, id string) (*Client, error)

	// List retrieves clients based on filter criteria
	List(ctx context.Context, filter *types.EntityFilter) ([]*Client, error)

	// Count counts clients based on filter criteria
	Count(ctx context.Context, filter *types.EntityFilter) (int, error)

	// Update updates an existing client
	Update(ctx context.Context, c *Client) error

	// Delete archives a client by ID
	Delete(ctx context.Context, id string) error
}
