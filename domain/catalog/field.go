// Package catalog defines the product metadata domain: the key-value
// attribute rows stored per product and the wide, one-row-per-product
// record pivoted out of them.
package catalog

// Field is an enumerated metadata key. Each stored row carries exactly one
// field; a product is the set of rows sharing an id.
type Field string

// Known metadata fields.
const (
	FieldName       Field = "name"
	FieldPrice      Field = "price"
	FieldMaker      Field = "maker"
	FieldCategory   Field = "category"
	FieldImagePath  Field = "image_path"
	FieldProductURL Field = "product_url"
	FieldImageHash  Field = "image_hash"
	FieldCreatedAt  Field = "created_at"
	FieldUpdatedAt  Field = "updated_at"
	FieldOCRLines   Field = "ocr_lines"
)

// fieldLabels maps each field to its Korean display label, the column
// headings of the exported spreadsheet view.
var fieldLabels = map[Field]string{
	FieldName:       "상품명",
	FieldPrice:      "가격",
	FieldMaker:      "제조사",
	FieldCategory:   "카테고리",
	FieldImagePath:  "이미지경로",
	FieldProductURL: "상품URL",
	FieldImageHash:  "이미지해시",
	FieldCreatedAt:  "생성일",
	FieldUpdatedAt:  "수정일",
	FieldOCRLines:   "OCR내용",
}

// Fields returns all known fields in pivot column order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldPrice,
		FieldMaker,
		FieldCategory,
		FieldImagePath,
		FieldProductURL,
		FieldImageHash,
		FieldCreatedAt,
		FieldUpdatedAt,
		FieldOCRLines,
	}
}

// CompareFields returns the fields consulted by ingest change detection.
// Timestamps and derived OCR text are deliberately excluded: a product is
// "changed" only when its source attributes differ.
func CompareFields() []Field {
	return []Field{
		FieldName,
		FieldPrice,
		FieldMaker,
		FieldCategory,
		FieldProductURL,
		FieldImageHash,
	}
}

// IsInt reports whether the field stores its value in the integer column.
// Only price is integer-valued; every other field uses the string column.
func (f Field) IsInt() bool {
	return f == FieldPrice
}

// Known reports whether f is one of the enumerated metadata fields.
// Rows with unknown keys are ignored by the pivot, never an error.
func (f Field) Known() bool {
	_, ok := fieldLabels[f]
	return ok
}

// Label returns the Korean column label for the field, or the raw key for
// unknown fields.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// String returns the raw key string.
func (f Field) String() string {
	return string(f)
}
