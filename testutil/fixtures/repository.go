package fixtures

import (
	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// EntityRepository maps entity type names to their known instance ids.
type EntityRepository map[string][]int

// AllInstanceIDsOf implements variables.EntityRepository.
func (r EntityRepository) AllInstanceIDsOf(entityTypeName string) []int {
	return r[entityTypeName]
}

// FieldMetadata is an in-memory variables.FieldMetadata.
type FieldMetadata map[string]variables.FieldDescriptor

// NewFieldMetadata indexes the descriptors by identifier.
func NewFieldMetadata(descriptors ...variables.FieldDescriptor) FieldMetadata {
	metadata := make(FieldMetadata, len(descriptors))
	for _, d := range descriptors {
		metadata[d.Identifier] = d
	}

	return metadata
}

// Field implements variables.FieldMetadata.
func (m FieldMetadata) Field(identifier string) (variables.FieldDescriptor, bool) {
	d, ok := m[identifier]
	return d, ok
}

// SingleChoice describes a single-valued field answered with instances of entityType.
func SingleChoice(identifier, entityType string) variables.FieldDescriptor {
	return variables.FieldDescriptor{Identifier: identifier, EntityTypeIdentifier: entityType}
}

// MultiChoice describes a multi-valued field answered with instances of entityType.
func MultiChoice(identifier, entityType string) variables.FieldDescriptor {
	return variables.FieldDescriptor{Identifier: identifier, EntityTypeIdentifier: entityType, MultiValued: true}
}
