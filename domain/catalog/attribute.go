package catalog

import "fmt"

// Attribute is a single stored metadata row: one field of one product.
// Exactly one of the string and integer values is set, depending on the
// field's value column.
type Attribute struct {
	id          int64
	field       Field
	stringValue *string
	intValue    *int64
}

// NewStringAttribute creates an attribute carrying a string value.
func NewStringAttribute(id int64, field Field, value string) Attribute {
	return Attribute{id: id, field: field, stringValue: &value}
}

// NewIntAttribute creates an attribute carrying an integer value.
func NewIntAttribute(id int64, field Field, value int64) Attribute {
	return Attribute{id: id, field: field, intValue: &value}
}

// ReconstructAttribute rebuilds an attribute from stored column values.
// Both value pointers may be nil for rows written by other tools.
func ReconstructAttribute(id int64, field Field, stringValue *string, intValue *int64) Attribute {
	return Attribute{id: id, field: field, stringValue: stringValue, intValue: intValue}
}

// ID returns the product id this attribute belongs to.
func (a Attribute) ID() int64 { return a.id }

// Field returns the metadata field.
func (a Attribute) Field() Field { return a.field }

// StringValue returns the string value and whether it is set.
func (a Attribute) StringValue() (string, bool) {
	if a.stringValue == nil {
		return "", false
	}
	return *a.stringValue, true
}

// IntValue returns the integer value and whether it is set.
func (a Attribute) IntValue() (int64, bool) {
	if a.intValue == nil {
		return 0, false
	}
	return *a.intValue, true
}

// String returns a readable representation for logs.
func (a Attribute) String() string {
	if v, ok := a.IntValue(); ok {
		return fmt.Sprintf("%d/%s=%d", a.id, a.field, v)
	}
	if v, ok := a.StringValue(); ok {
		return fmt.Sprintf("%d/%s=%q", a.id, a.field, v)
	}
	return fmt.Sprintf("%d/%s=<nil>", a.id, a.field)
}
