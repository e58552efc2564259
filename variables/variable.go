package variables

import "fmt"

// Variable is a compiled function family deriving a value or a membership set per response.
//
// A Variable is built once, then shared read-only. The evaluators returned by ValueAt and MembersAt
// own private scratch state: they must not be invoked concurrently. Obtain one evaluator per worker.
type Variable[T Value] interface {
	// ValueAt returns an evaluator computing the value for one explicit instance of every introduced
	// entity type. It panics with ErrCardinalityMismatch if entityValues does not supply exactly that.
	ValueAt(entityValues EntityValues) func(ResponseEntity) T

	// MembersAt returns an evaluator yielding the instances of the single introduced entity type
	// whose value satisfies predicate. The returned slice never contains duplicates and is only
	// valid until the next invocation of the same evaluator.
	MembersAt(predicate func(T) bool) func(ResponseEntity) []int

	// FieldDependencies lists the raw fields the variable reads.
	FieldDependencies() []FieldDescriptor

	// IntroducedEntityTypes lists the entity types the variable adds to the result space.
	IntroducedEntityTypes() []EntityType
}

// MustMatchEntityValues panics with ErrCardinalityMismatch unless entityValues holds exactly one
// value for each of the introduced entity types.
func MustMatchEntityValues(introduced []EntityType, entityValues EntityValues) {
	if len(introduced) != len(entityValues) {
		panic(fmt.Errorf(
			"%w: expected %d entity values, got %d",
			ErrCardinalityMismatch,
			len(introduced),
			len(entityValues),
		))
	}

	for _, entityType := range introduced {
		if !hasValueFor(entityValues, entityType.Identifier) {
			panic(fmt.Errorf("%w: no value for entity type %q", ErrCardinalityMismatch, entityType.Identifier))
		}
	}
}

// MustHaveSingleEntityType panics with ErrCardinalityMismatch unless exactly one entity type is introduced.
func MustHaveSingleEntityType(introduced []EntityType) {
	if len(introduced) != 1 {
		panic(fmt.Errorf(
			"%w: members can only be enumerated for exactly one entity type, got %d",
			ErrCardinalityMismatch,
			len(introduced),
		))
	}
}

func hasValueFor(entityValues EntityValues, entityTypeIdentifier string) bool {
	for _, v := range entityValues {
		if v.EntityTypeIdentifier == entityTypeIdentifier {
			return true
		}
	}

	return false
}
