package variables

import "time"

// EntityType is a named category of slices, e.g. Wave or SurveyGroup.
type EntityType struct {
	Identifier          string
	DisplayNameSingular string
	DisplayNamePlural   string
}

// EntityInstance is one member of an EntityType.
type EntityInstance struct {
	ID   int
	Name string
}

// EntityValue is one explicit instance choice for an entity type.
type EntityValue struct {
	EntityTypeIdentifier string
	InstanceID           int
}

// EntityValues holds exactly one EntityValue per entity type a variable introduces.
type EntityValues []EntityValue

// For is a shorthand for EntityValues holding a single choice.
func For(entityType EntityType, instanceID int) EntityValues {
	return EntityValues{{EntityTypeIdentifier: entityType.Identifier, InstanceID: instanceID}}
}

// EntityRepository exposes the known instances of each entity type.
type EntityRepository interface {
	// AllInstanceIDsOf returns every known instance id of the entity type, without duplicates, in any order.
	AllInstanceIDsOf(entityTypeName string) []int
}

// FieldDescriptor describes one raw response field a variable reads.
type FieldDescriptor struct {
	Identifier           string
	EntityTypeIdentifier string
	MultiValued          bool
}

// FieldMetadata is the read-only lookup of field descriptors.
type FieldMetadata interface {
	Field(identifier string) (FieldDescriptor, bool)
}

// ResponseEntity is one survey submission as seen by an evaluator.
type ResponseEntity interface {
	ResponseID() int
	Timestamp() time.Time
	SurveyID() int

	// Answers returns the answered instance ids of the field. Empty means the field was not answered.
	// Implementations must not expect the caller to copy the slice and the caller must not modify it.
	Answers(fieldIdentifier string) []int
}
