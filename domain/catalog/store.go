package catalog

import "context"

// Store persists product metadata rows and serves the pivoted view of them.
type Store interface {
	// Save replaces one product's metadata rows.
	Save(ctx context.Context, product Product) error

	// SaveAll replaces metadata rows for many products in one transaction.
	SaveAll(ctx context.Context, products []Product) error

	// Get returns the pivoted record for one id.
	Get(ctx context.Context, id int64) (Product, error)

	// GetAll returns pivoted records for the given ids; missing ids are
	// absent from the result.
	GetAll(ctx context.Context, ids []int64) ([]Product, error)

	// Rows returns one product's raw metadata rows ordered by key,
	// including rows written by other tools.
	Rows(ctx context.Context, id int64) ([]Attribute, error)

	// Pivot returns pivoted records, one per distinct id, ordered by id.
	Pivot(ctx context.Context, options ...Option) ([]Product, error)

	// CountProducts returns the number of distinct product ids.
	CountProducts(ctx context.Context) (int64, error)

	// DeleteProduct removes a product's metadata rows. Deleting an id
	// with no rows is an error.
	DeleteProduct(ctx context.Context, id int64) error
}
