package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Chain model related methods.
	CreateChain(ctx context.Context, create *Chain) (*Chain, error)
	ListChains(ctx context.Context, find *FindChain) ([]*Chain, error)
	UpdateChain(ctx context.Context, update *UpdateChain) (*Chain, error)
	DeleteChain(ctx context.Context, delete *DeleteChain) error
}
