package store

import (
	"context"

	"github.com/chainviz/chainviz/internal/profile"
)

const (
	// defaultListLimit is used when a list request carries no limit.
	defaultListLimit = 100
	// maxListLimit caps the limit a caller may request in one page.
	maxListLimit = 1000
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) CreateChain(ctx context.Context, create *Chain) (*Chain, error) {
	return s.driver.CreateChain(ctx, create)
}

// ListChains returns chains in insertion order. A missing limit defaults
// to 100 and requested limits are clamped to 1000.
func (s *Store) ListChains(ctx context.Context, find *FindChain) ([]*Chain, error) {
	if find.Limit == nil {
		limit := defaultListLimit
		find.Limit = &limit
	} else if *find.Limit > maxListLimit {
		limit := maxListLimit
		find.Limit = &limit
	}
	return s.driver.ListChains(ctx, find)
}

// GetChain returns the matching chain, or nil when no chain matches.
// Absence is a normal outcome, not an error.
func (s *Store) GetChain(ctx context.Context, find *FindChain) (*Chain, error) {
	list, err := s.driver.ListChains(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateChain applies a partial update and returns the updated chain,
// or nil when the chain does not exist.
func (s *Store) UpdateChain(ctx context.Context, update *UpdateChain) (*Chain, error) {
	return s.driver.UpdateChain(ctx, update)
}

func (s *Store) DeleteChain(ctx context.Context, delete *DeleteChain) error {
	return s.driver.DeleteChain(ctx, delete)
}
