package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/internal/database"
)

// newTestStore creates a MetadataStore backed by in-memory SQLite. Cannot
// use the testdb package here due to import cycle (testdb imports
// persistence).
func newTestStore(t *testing.T) *MetadataStore {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db))
	return NewMetadataStore(db, nil)
}

func insertRow(t *testing.T, s *MetadataStore, id int64, key string, strVal *string, intVal *int64) {
	t.Helper()
	err := s.DB(context.Background()).Create(&MetadataModel{
		ID:          id,
		Key:         key,
		StringValue: strVal,
		IntValue:    intVal,
	}).Error
	require.NoError(t, err)
}

func str(s string) *string { return &s }
func i64(v int64) *int64   { return &v }

func TestMetadataStore_Pivot_OneRowPerID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertRow(t, s, 1, "name", str("Widget"), nil)
	insertRow(t, s, 1, "price", nil, i64(1000))
	insertRow(t, s, 1, "maker", str("Acme"), nil)
	insertRow(t, s, 2, "name", str("Gadget"), nil)

	products, err := s.Pivot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	// Ordered by id.
	assert.Equal(t, int64(1), products[0].ID())
	assert.Equal(t, int64(2), products[1].ID())

	name, ok := products[0].Name()
	require.True(t, ok)
	assert.Equal(t, "Widget", name)

	price, ok := products[0].Price()
	require.True(t, ok)
	assert.Equal(t, int64(1000), price)

	maker, ok := products[0].Maker()
	require.True(t, ok)
	assert.Equal(t, "Acme", maker)

	// Product 2 has no price or maker rows: those fields stay unset.
	name, ok = products[1].Name()
	require.True(t, ok)
	assert.Equal(t, "Gadget", name)
	_, ok = products[1].Price()
	assert.False(t, ok)
	_, ok = products[1].Maker()
	assert.False(t, ok)
}

func TestMetadataStore_Pivot_IgnoresForeignKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertRow(t, s, 1, "name", str("Widget"), nil)
	insertRow(t, s, 1, "chroma:document", str("{}"), nil)

	products, err := s.Pivot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	attrs := products[0].Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, catalog.FieldName, attrs[0].Field())
}

func TestMetadataStore_Pivot_ForeignOnlyIDStillAppears(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// An id whose only rows carry unknown keys still produces a record:
	// the pivot groups every distinct id.
	insertRow(t, s, 9, "chroma:document", str("{}"), nil)

	products, err := s.Pivot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(9), products[0].ID())
	assert.Empty(t, products[0].Attributes())
}

func TestMetadataStore_Pivot_DuplicateKeyResolvesByMax(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Schema without the composite primary key, as written by tools that
	// do not enforce (id, key) uniqueness.
	require.NoError(t, db.Session(ctx).Exec(
		`CREATE TABLE embedding_metadata (id INTEGER, "key" TEXT, string_value TEXT, int_value INTEGER)`,
	).Error)
	s := NewMetadataStore(db, nil)

	insertRow(t, s, 1, "name", str("Alpha"), nil)
	insertRow(t, s, 1, "name", str("Beta"), nil)
	insertRow(t, s, 1, "price", nil, i64(100))
	insertRow(t, s, 1, "price", nil, i64(300))

	products, err := s.Pivot(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	name, _ := products[0].Name()
	assert.Equal(t, "Beta", name)
	price, _ := products[0].Price()
	assert.Equal(t, int64(300), price)
}

func TestMetadataStore_Pivot_EmptyTable(t *testing.T) {
	s := newTestStore(t)

	products, err := s.Pivot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMetadataStore_Pivot_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		insertRow(t, s, id, "name", str("p"), nil)
	}

	products, err := s.Pivot(ctx, catalog.WithLimit(2), catalog.WithOffset(2))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(3), products[0].ID())
	assert.Equal(t, int64(4), products[1].ID())
}

func TestMetadataStore_Pivot_OffsetWithoutLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		insertRow(t, s, id, "name", str("p"), nil)
	}

	products, err := s.Pivot(ctx, catalog.WithOffset(2))
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, int64(3), products[0].ID())
	assert.Equal(t, int64(5), products[2].ID())
}

func TestMetadataStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := catalog.NewProduct(10).
		WithText(catalog.FieldName, "カップヌードル").
		WithText(catalog.FieldMaker, "日清食品").
		WithText(catalog.FieldCreatedAt, "2026-08-01T00:00:00Z").
		WithPrice(214)

	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestMetadataStore_Get_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestMetadataStore_Save_ReplacesClearedFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := catalog.NewProduct(1).
		WithText(catalog.FieldName, "Widget").
		WithText(catalog.FieldCategory, "tools")
	require.NoError(t, s.Save(ctx, first))

	// Second save drops the category: the old row must not survive.
	second := catalog.NewProduct(1).WithText(catalog.FieldName, "Widget v2")
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)

	name, _ := got.Name()
	assert.Equal(t, "Widget v2", name)
	_, ok := got.Category()
	assert.False(t, ok)
}

func TestMetadataStore_Save_PreservesForeignRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertRow(t, s, 1, "chroma:document", str("embedding blob"), nil)

	p := catalog.NewProduct(1).WithText(catalog.FieldName, "Widget")
	require.NoError(t, s.Save(ctx, p))

	var count int64
	err := s.DB(ctx).
		Model(&MetadataModel{}).
		Where("key = ?", "chroma:document").
		Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMetadataStore_SaveAll_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	products := []catalog.Product{
		catalog.NewProduct(1).WithText(catalog.FieldName, "A").WithPrice(100),
		catalog.NewProduct(2).WithText(catalog.FieldName, "B").WithPrice(200),
	}

	require.NoError(t, s.SaveAll(ctx, products))
	require.NoError(t, s.SaveAll(ctx, products))

	got, err := s.Pivot(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	count, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestMetadataStore_GetAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, s.Save(ctx, catalog.NewProduct(id).WithText(catalog.FieldName, "p")))
	}

	products, err := s.GetAll(ctx, []int64{1, 3, 99})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID())
	assert.Equal(t, int64(3), products[1].ID())

	empty, err := s.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMetadataStore_DeleteProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, catalog.NewProduct(1).WithText(catalog.FieldName, "gone")))
	insertRow(t, s, 1, "chroma:document", str("kept"), nil)

	require.NoError(t, s.DeleteProduct(ctx, 1))

	// The foreign row keeps the id in the pivot, but the known fields are gone.
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got.Attributes())
}

func TestMetadataStore_DeleteProduct_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteProduct(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestMetadataStore_Rows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, catalog.NewProduct(1).
		WithText(catalog.FieldName, "Widget").
		WithPrice(1000)))
	insertRow(t, s, 1, "chroma:document", str("doc"), nil)
	insertRow(t, s, 2, "name", str("other"), nil)

	rows, err := s.Rows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by key, foreign rows included.
	assert.Equal(t, catalog.Field("chroma:document"), rows[0].Field())
	assert.Equal(t, catalog.FieldName, rows[1].Field())
	assert.Equal(t, catalog.FieldPrice, rows[2].Field())

	name, ok := rows[1].StringValue()
	require.True(t, ok)
	assert.Equal(t, "Widget", name)
	price, ok := rows[2].IntValue()
	require.True(t, ok)
	assert.Equal(t, int64(1000), price)
}

func TestMetadataStore_Rows_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Rows(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestMetadataStore_FindOneAttribute(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertRow(t, s, 1, "name", str("Widget"), nil)

	attr, err := s.FindOne(ctx, catalog.WithID(1), catalog.WithField(catalog.FieldName))
	require.NoError(t, err)
	name, ok := attr.StringValue()
	require.True(t, ok)
	assert.Equal(t, "Widget", name)

	_, err = s.FindOne(ctx, catalog.WithID(1), catalog.WithField(catalog.FieldMaker))
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestMetadataStore_CountProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	insertRow(t, s, 1, "name", str("a"), nil)
	insertRow(t, s, 1, "price", nil, i64(1))
	insertRow(t, s, 2, "name", str("b"), nil)

	count, err = s.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
