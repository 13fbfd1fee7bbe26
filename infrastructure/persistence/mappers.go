package persistence

import (
	"github.com/monolog-ai/monolog/domain/catalog"
)

// MetadataMapper maps between domain Attribute and persistence MetadataModel.
type MetadataMapper struct{}

// ToDomain converts a MetadataModel to a domain Attribute.
func (m MetadataMapper) ToDomain(e MetadataModel) catalog.Attribute {
	return catalog.ReconstructAttribute(e.ID, catalog.Field(e.Key), e.StringValue, e.IntValue)
}

// ToModel converts a domain Attribute to a MetadataModel.
func (m MetadataMapper) ToModel(a catalog.Attribute) MetadataModel {
	model := MetadataModel{
		ID:  a.ID(),
		Key: a.Field().String(),
	}
	if v, ok := a.StringValue(); ok {
		model.StringValue = &v
	}
	if v, ok := a.IntValue(); ok {
		model.IntValue = &v
	}
	return model
}
