package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saveBatchSize caps the number of rows per INSERT when writing metadata.
const saveBatchSize = 500

// MetadataStore persists product metadata as key-value rows and reads it
// back as pivoted product records.
type MetadataStore struct {
	database.Repository[catalog.Attribute, MetadataModel]
	db     database.Database
	logger *slog.Logger
}

// NewMetadataStore creates a new MetadataStore.
func NewMetadataStore(db database.Database, logger *slog.Logger) *MetadataStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataStore{
		Repository: database.NewRepository[catalog.Attribute, MetadataModel](
			db, MetadataMapper{}, "metadata",
		),
		db:     db,
		logger: logger,
	}
}

// Save replaces a product's metadata rows with the given record. Rows for
// keys outside the known field set are left untouched; the table may hold
// rows written by other tools.
func (s *MetadataStore) Save(ctx context.Context, product catalog.Product) error {
	return s.SaveAll(ctx, []catalog.Product{product})
}

// SaveAll persists product records in a single transaction using batched
// upserts keyed on (id, key).
func (s *MetadataStore) SaveAll(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}

	mapper := s.Mapper()
	ids := make([]int64, 0, len(products))
	var models []MetadataModel
	for _, p := range products {
		ids = append(ids, p.ID())
		for _, a := range p.Attributes() {
			models = append(models, mapper.ToModel(a))
		}
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		// Drop known-key rows no longer present on the incoming records
		// (an attribute cleared upstream must not survive a re-save).
		if err := tx.
			Where("id IN ?", ids).
			Where("key IN ?", knownKeys()).
			Delete(&MetadataModel{}).Error; err != nil {
			return fmt.Errorf("clear metadata rows: %w", err)
		}

		if len(models) == 0 {
			return nil
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"string_value", "int_value"}),
		}).CreateInBatches(models, saveBatchSize).Error
		if err != nil {
			return fmt.Errorf("save metadata rows: %w", err)
		}
		return nil
	})
}

// Get returns the pivoted record for a single product id.
// Returns database.ErrNotFound when the id has no metadata rows.
func (s *MetadataStore) Get(ctx context.Context, id int64) (catalog.Product, error) {
	products, err := s.Pivot(ctx, catalog.WithID(id))
	if err != nil {
		return catalog.Product{}, err
	}
	if len(products) == 0 {
		return catalog.Product{}, fmt.Errorf("%w: product %d", database.ErrNotFound, id)
	}
	return products[0], nil
}

// Rows returns a product's raw metadata rows as attributes, ordered by
// key. Rows written by other tools are included. Returns
// database.ErrNotFound when the id has no rows at all.
func (s *MetadataStore) Rows(ctx context.Context, id int64) ([]catalog.Attribute, error) {
	rows, err := s.Find(ctx, catalog.WithID(id), catalog.WithOrderAsc(`"key"`))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: product %d", database.ErrNotFound, id)
	}
	return rows, nil
}

// GetAll returns pivoted records for the given ids. Missing ids are simply
// absent from the result.
func (s *MetadataStore) GetAll(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return s.Pivot(ctx, catalog.WithIDIn(ids))
}

// CountProducts returns the number of distinct product ids in the store.
func (s *MetadataStore) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB(ctx).
		Model(&MetadataModel{}).
		Distinct("id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// DeleteProduct removes all known-key metadata rows for a product id.
// Returns database.ErrNotFound when the id has no rows. Rows written by
// other tools survive.
func (s *MetadataStore) DeleteProduct(ctx context.Context, id int64) error {
	exists, err := s.Exists(ctx, catalog.WithID(id))
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("%w: product %d", database.ErrNotFound, id)
	}

	err = s.DeleteBy(ctx, catalog.WithID(id), catalog.WithConditionIn(`"key"`, knownKeys()))
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// pivotRow receives one row of the pivot query. Column names carry the
// Korean labels the exported view is known by.
type pivotRow struct {
	ID         int64   `gorm:"column:id"`
	Name       *string `gorm:"column:상품명"`
	Price      *int64  `gorm:"column:가격"`
	Maker      *string `gorm:"column:제조사"`
	Category   *string `gorm:"column:카테고리"`
	ImagePath  *string `gorm:"column:이미지경로"`
	ProductURL *string `gorm:"column:상품URL"`
	ImageHash  *string `gorm:"column:이미지해시"`
	CreatedAt  *string `gorm:"column:생성일"`
	UpdatedAt  *string `gorm:"column:수정일"`
	OCRLines   *string `gorm:"column:OCR내용"`
}

// pivotSelect is the conditional-aggregation pivot: one MAX(CASE WHEN ...)
// per known key, grouped by id. A product missing a key yields NULL for
// that column; duplicate rows for a key resolve by MAX, not insert order.
const pivotSelect = `
SELECT
    id,
    MAX(CASE WHEN "key" = 'name' THEN string_value END) AS "상품명",
    MAX(CASE WHEN "key" = 'price' THEN int_value END) AS "가격",
    MAX(CASE WHEN "key" = 'maker' THEN string_value END) AS "제조사",
    MAX(CASE WHEN "key" = 'category' THEN string_value END) AS "카테고리",
    MAX(CASE WHEN "key" = 'image_path' THEN string_value END) AS "이미지경로",
    MAX(CASE WHEN "key" = 'product_url' THEN string_value END) AS "상품URL",
    MAX(CASE WHEN "key" = 'image_hash' THEN string_value END) AS "이미지해시",
    MAX(CASE WHEN "key" = 'created_at' THEN string_value END) AS "생성일",
    MAX(CASE WHEN "key" = 'updated_at' THEN string_value END) AS "수정일",
    MAX(CASE WHEN "key" = 'ocr_lines' THEN string_value END) AS "OCR내용"
FROM embedding_metadata`

// Pivot computes the wide view: one record per distinct product id present
// in the store. Options may filter by id (WithID, WithIDIn) and paginate
// (WithLimit, WithOffset). Records are ordered by id, since GROUP BY alone
// guarantees no order.
func (s *MetadataStore) Pivot(ctx context.Context, options ...catalog.Option) ([]catalog.Product, error) {
	q := catalog.Build(options...)

	var sql strings.Builder
	sql.WriteString(pivotSelect)
	var args []any

	conds := q.Conditions()
	for i, cond := range conds {
		if i == 0 {
			sql.WriteString("\nWHERE ")
		} else {
			sql.WriteString(" AND ")
		}
		if cond.In() {
			sql.WriteString(cond.Field() + " IN ?")
		} else {
			sql.WriteString(cond.Field() + " = ?")
		}
		args = append(args, cond.Value())
	}

	sql.WriteString("\nGROUP BY id\nORDER BY id")

	// OFFSET needs a LIMIT clause in sqlite; LIMIT -1 means unbounded.
	if q.OffsetValue() > 0 {
		limit := -1
		if q.LimitValue() > 0 {
			limit = q.LimitValue()
		}
		sql.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, q.OffsetValue())
	} else if q.LimitValue() > 0 {
		sql.WriteString(" LIMIT ?")
		args = append(args, q.LimitValue())
	}

	var rows []pivotRow
	if err := s.DB(ctx).Raw(sql.String(), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("pivot metadata: %w", err)
	}

	products := make([]catalog.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toProduct()
	}
	return products, nil
}

func (r pivotRow) toProduct() catalog.Product {
	p := catalog.NewProduct(r.ID)
	if r.Price != nil {
		p = p.WithPrice(*r.Price)
	}
	for field, value := range map[catalog.Field]*string{
		catalog.FieldName:       r.Name,
		catalog.FieldMaker:      r.Maker,
		catalog.FieldCategory:   r.Category,
		catalog.FieldImagePath:  r.ImagePath,
		catalog.FieldProductURL: r.ProductURL,
		catalog.FieldImageHash:  r.ImageHash,
		catalog.FieldCreatedAt:  r.CreatedAt,
		catalog.FieldUpdatedAt:  r.UpdatedAt,
		catalog.FieldOCRLines:   r.OCRLines,
	} {
		if value != nil {
			p = p.WithText(field, *value)
		}
	}
	return p
}

// knownKeys returns the metadata keys managed by this store.
func knownKeys() []string {
	fields := catalog.Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.String()
	}
	return keys
}
