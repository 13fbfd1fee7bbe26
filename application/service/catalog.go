package service

import (
	"context"

	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/internal/log"
)

// CatalogService exposes read access to the pivoted product view.
type CatalogService struct {
	store  catalog.Store
	logger *log.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(store catalog.Store, logger *log.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// List returns pivoted products ordered by id. A non-positive limit
// returns everything.
func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	var options []catalog.Option
	if limit > 0 {
		options = append(options, catalog.WithLimit(limit))
	}
	if offset > 0 {
		options = append(options, catalog.WithOffset(offset))
	}
	return s.store.Pivot(ctx, options...)
}

// Get returns the pivoted record for one product id.
func (s *CatalogService) Get(ctx context.Context, id int64) (catalog.Product, error) {
	return s.store.Get(ctx, id)
}

// Attributes returns one product's raw metadata rows, ordered by key.
func (s *CatalogService) Attributes(ctx context.Context, id int64) ([]catalog.Attribute, error) {
	return s.store.Rows(ctx, id)
}

// Count returns the number of distinct products in the store.
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	return s.store.CountProducts(ctx)
}
