package testutil

import (
	"context"

	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient is a mock implementation of postgres client for testing
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// If we're already in a transaction, reuse it
	if _, ok := postgres.GetTx(ctx); ok {
		return fn(ctx)
	}

	// For testing, we just execute the function without a real transaction
	return fn(ctx)
}
