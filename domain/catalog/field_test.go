package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_OrderMatchesView(t *testing.T) {
	expected := []Field{
		FieldName, FieldPrice, FieldMaker, FieldCategory,
		FieldImagePath, FieldProductURL, FieldImageHash,
		FieldCreatedAt, FieldUpdatedAt, FieldOCRLines,
	}
	assert.Equal(t, expected, Fields())
}

func TestField_Label(t *testing.T) {
	assert.Equal(t, "상품명", FieldName.Label())
	assert.Equal(t, "가격", FieldPrice.Label())
	assert.Equal(t, "상품URL", FieldProductURL.Label())
	assert.Equal(t, "OCR내용", FieldOCRLines.Label())
}

func TestField_Known(t *testing.T) {
	assert.True(t, FieldName.Known())
	assert.False(t, Field("chroma:document").Known())
	assert.False(t, Field("").Known())
}

func TestField_IsInt(t *testing.T) {
	assert.True(t, FieldPrice.IsInt())
	for _, f := range Fields() {
		if f == FieldPrice {
			continue
		}
		assert.False(t, f.IsInt(), "field %s", f)
	}
}
