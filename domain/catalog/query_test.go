package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Empty(t *testing.T) {
	q := Build()

	assert.Empty(t, q.Conditions())
	assert.Empty(t, q.Orders())
	assert.Zero(t, q.LimitValue())
	assert.Zero(t, q.OffsetValue())
}

func TestBuild_Conditions(t *testing.T) {
	q := Build(WithID(5), WithField(FieldName))

	conds := q.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, "id", conds[0].Field())
	assert.Equal(t, int64(5), conds[0].Value())
	assert.False(t, conds[0].In())
	assert.Equal(t, "key", conds[1].Field())
	assert.Equal(t, "name", conds[1].Value())
}

func TestBuild_IDIn(t *testing.T) {
	q := Build(WithIDIn([]int64{1, 2, 3}))

	conds := q.Conditions()
	require.Len(t, conds, 1)
	assert.True(t, conds[0].In())
	assert.Equal(t, []int64{1, 2, 3}, conds[0].Value())
}

func TestBuild_Pagination(t *testing.T) {
	q := Build(WithLimit(10), WithOffset(20), WithOrderDesc("id"))

	assert.Equal(t, 10, q.LimitValue())
	assert.Equal(t, 20, q.OffsetValue())
	orders := q.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "id", orders[0].Field())
	assert.False(t, orders[0].Ascending())
}
