package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monolog-ai/monolog/internal/database"
)

func TestValidateSchema_Migrated(t *testing.T) {
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db))

	assert.NoError(t, ValidateSchema(db))
}

func TestValidateSchema_MissingColumn(t *testing.T) {
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// A table created by another tool, without the integer value column.
	require.NoError(t, db.GORM().Exec(
		`CREATE TABLE embedding_metadata (id INTEGER, "key" TEXT, string_value TEXT, PRIMARY KEY (id, "key"))`,
	).Error)

	err = ValidateSchema(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding_metadata.int_value")
}
