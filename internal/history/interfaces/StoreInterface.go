package interfaces

import (
	"context"
	"probpick/internal/models"
)

// StoreInterface persists the selection history. Every mutation is durable
// before the call returns; callers serialize access.
type StoreInterface interface {
	Load(ctx context.Context) (*models.SelectionHistory, error)
	Append(ctx context.Context, record models.SelectionRecord) error
	Clear(ctx context.Context) (int, error)
	Close() error
}
