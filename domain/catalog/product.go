package catalog

// Product is the pivoted record: one product id with its known metadata
// fields. Fields absent from the store are absent here: the pivot never
// invents values.
type Product struct {
	id    int64
	price *int64
	texts map[Field]string
}

// NewProduct creates an empty product record for the given id.
func NewProduct(id int64) Product {
	return Product{id: id}
}

// WithText returns a copy of the product with a string field set.
// Integer-valued fields are ignored; use WithPrice for those.
func (p Product) WithText(field Field, value string) Product {
	if field.IsInt() {
		return p
	}
	texts := make(map[Field]string, len(p.texts)+1)
	for k, v := range p.texts {
		texts[k] = v
	}
	texts[field] = value
	p.texts = texts
	return p
}

// WithPrice returns a copy of the product with the price set.
func (p Product) WithPrice(price int64) Product {
	p.price = &price
	return p
}

// ProductFromAttributes assembles a product from its stored rows. Rows for
// other ids and unknown fields are skipped. When duplicate rows exist for a
// field the last one wins; stores are expected to enforce uniqueness.
func ProductFromAttributes(id int64, attrs []Attribute) Product {
	p := NewProduct(id)
	for _, a := range attrs {
		if a.ID() != id || !a.Field().Known() {
			continue
		}
		if a.Field().IsInt() {
			if v, ok := a.IntValue(); ok {
				p = p.WithPrice(v)
			}
			continue
		}
		if v, ok := a.StringValue(); ok {
			p = p.WithText(a.Field(), v)
		}
	}
	return p
}

// ID returns the product id.
func (p Product) ID() int64 { return p.id }

// Text returns a string field's value and whether it is set.
func (p Product) Text(field Field) (string, bool) {
	v, ok := p.texts[field]
	return v, ok
}

// Price returns the price and whether it is set.
func (p Product) Price() (int64, bool) {
	if p.price == nil {
		return 0, false
	}
	return *p.price, true
}

// Name returns the product name and whether it is set.
func (p Product) Name() (string, bool) { return p.Text(FieldName) }

// Maker returns the maker and whether it is set.
func (p Product) Maker() (string, bool) { return p.Text(FieldMaker) }

// Category returns the category and whether it is set.
func (p Product) Category() (string, bool) { return p.Text(FieldCategory) }

// ImagePath returns the image path and whether it is set.
func (p Product) ImagePath() (string, bool) { return p.Text(FieldImagePath) }

// ProductURL returns the product URL and whether it is set.
func (p Product) ProductURL() (string, bool) { return p.Text(FieldProductURL) }

// ImageHash returns the image content hash and whether it is set.
func (p Product) ImageHash() (string, bool) { return p.Text(FieldImageHash) }

// CreatedAt returns the creation timestamp string and whether it is set.
func (p Product) CreatedAt() (string, bool) { return p.Text(FieldCreatedAt) }

// UpdatedAt returns the update timestamp string and whether it is set.
func (p Product) UpdatedAt() (string, bool) { return p.Text(FieldUpdatedAt) }

// OCRLines returns the raw OCR lines JSON and whether it is set.
func (p Product) OCRLines() (string, bool) { return p.Text(FieldOCRLines) }

// OCRText returns the flattened, human-readable OCR text.
func (p Product) OCRText() string {
	raw, ok := p.OCRLines()
	if !ok {
		return ""
	}
	return FlattenOCR(raw)
}

// Attributes decomposes the product back into stored rows, in pivot column
// order. Unset fields produce no row.
func (p Product) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(p.texts)+1)
	for _, f := range Fields() {
		if f.IsInt() {
			if v, ok := p.Price(); ok {
				attrs = append(attrs, NewIntAttribute(p.id, f, v))
			}
			continue
		}
		if v, ok := p.Text(f); ok {
			attrs = append(attrs, NewStringAttribute(p.id, f, v))
		}
	}
	return attrs
}

// ChangedFrom reports whether the product's source attributes differ from a
// previously stored record. Only CompareFields participate: timestamps never
// trigger an update by themselves.
func (p Product) ChangedFrom(old Product) bool {
	for _, f := range CompareFields() {
		if f.IsInt() {
			newV, newOK := p.Price()
			oldV, oldOK := old.Price()
			if newOK != oldOK || newV != oldV {
				return true
			}
			continue
		}
		newV, newOK := p.Text(f)
		oldV, oldOK := old.Text(f)
		if newOK != oldOK || newV != oldV {
			return true
		}
	}
	return false
}
