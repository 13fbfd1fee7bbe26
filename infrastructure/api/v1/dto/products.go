// Package dto defines the JSON shapes exchanged with API clients.
package dto

// Product is the pivoted product record as served to clients. Field names
// mirror the stored metadata keys; unset fields are omitted.
type Product struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Price      *int64 `json:"price,omitempty"`
	Maker      string `json:"maker,omitempty"`
	Category   string `json:"category,omitempty"`
	ImagePath  string `json:"image_path,omitempty"`
	ProductURL string `json:"product_url,omitempty"`
	ImageHash  string `json:"image_hash,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	OCRText    string `json:"ocr_text,omitempty"`
}

// ProductListResponse is the body of GET /api/v1/products.
type ProductListResponse struct {
	Data []Product `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// ProductResponse is the body of GET /api/v1/products/{id}.
type ProductResponse struct {
	Data Product `json:"data"`
}

// Attribute is one raw metadata row of a product. Exactly one of the
// value fields is set for rows this service writes; rows from other
// tools may carry neither.
type Attribute struct {
	Key         string  `json:"key"`
	StringValue *string `json:"string_value,omitempty"`
	IntValue    *int64  `json:"int_value,omitempty"`
}

// AttributeListResponse is the body of GET /api/v1/products/{id}/attributes.
type AttributeListResponse struct {
	Data []Attribute `json:"data"`
}

// ListMeta carries pagination bookkeeping.
type ListMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}
