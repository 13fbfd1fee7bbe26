// Package persistence provides database storage implementations.
package persistence

// MetadataModel represents one key-value metadata row. The table layout
// matches the embedding store's metadata segment: a product id appears once
// per key, with the value in the column matching the key's type.
type MetadataModel struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Key         string  `gorm:"column:key;primaryKey;size:255"`
	StringValue *string `gorm:"column:string_value;type:text"`
	IntValue    *int64  `gorm:"column:int_value"`
}

// TableName returns the table name.
func (MetadataModel) TableName() string {
	return "embedding_metadata"
}
