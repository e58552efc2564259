package instancelist

import (
	"fmt"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

const (
	reasonEntityTypeCount     = "generic variable must introduce exactly one entity type"
	reasonNestedComposite     = "composite components must not be nested"
	reasonNotAnInstanceList   = "every leaf must be an instance list"
	reasonAndWithManyIDs      = "and-operator lists more than one instance"
	reasonRepeatedField       = "field is referenced more than once in one group"
	reasonUnknownField        = "field is not known to the field metadata"
	reasonNotWithMultiValued  = "not-operator cannot be combined with multi-valued fields"
	reasonTooManyCombinations = "lookup table would exceed the combination limit"
)

// CheckApplicability reports why definition cannot be tabulated, or nil if it can.
// It checks the shape of the definition and the projected table size against combinationLimit.
// The returned error wraps variables.ErrUnsupportedShape.
func CheckApplicability(
	repository variables.EntityRepository,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
	generic variables.Variable[variables.Numeric],
	combinationLimit int,
) error {

	if err := checkShape(definition, fields, generic); err != nil {
		return err
	}

	return checkSize(collectKeys(repository, fields, definition), definition, combinationLimit)
}

func checkShape(
	definition variables.GroupedVariableDefinition,
	fields variables.FieldMetadata,
	generic variables.Variable[variables.Numeric],
) error {

	if n := len(generic.IntroducedEntityTypes()); n != 1 {
		return unsupported("%s, got %d", reasonEntityTypeCount, n)
	}

	usesNot := false
	referenced := make([]variables.FieldDescriptor, 0)

	for _, g := range definition.Groups {
		if variables.CompositeCount(g.Component) > 1 {
			return unsupported("group %d: %s", g.ToEntityInstanceID, reasonNestedComposite)
		}

		seenFields := make(map[string]struct{})
		for _, leaf := range variables.Leaves(g.Component) {
			list, ok := leaf.(variables.InstanceListComponent)
			if !ok {
				return unsupported("group %d: %s, got %T", g.ToEntityInstanceID, reasonNotAnInstanceList, leaf)
			}

			if list.Operator == variables.InstanceAnd && len(list.InstanceIDs) > 1 {
				return unsupported("group %d: %s", g.ToEntityInstanceID, reasonAndWithManyIDs)
			}

			if _, seen := seenFields[list.FromVariableIdentifier]; seen {
				return unsupported("group %d: %s: %q", g.ToEntityInstanceID, reasonRepeatedField, list.FromVariableIdentifier)
			}
			seenFields[list.FromVariableIdentifier] = struct{}{}

			field, ok := fields.Field(list.FromVariableIdentifier)
			if !ok {
				return unsupported("group %d: %s: %q", g.ToEntityInstanceID, reasonUnknownField, list.FromVariableIdentifier)
			}
			referenced = append(referenced, field)

			usesNot = usesNot || list.Operator == variables.InstanceNot
		}
	}

	if usesNot && (anyMultiValued(generic.FieldDependencies()) || anyMultiValued(referenced)) {
		return unsupported("%s", reasonNotWithMultiValued)
	}

	return nil
}

func checkSize(keys []lookupKey, definition variables.GroupedVariableDefinition, combinationLimit int) error {
	if projected, ok := projectedSize(keys, definition, combinationLimit); !ok {
		return unsupported("%s: at least %d combinations, limit %d", reasonTooManyCombinations, projected, combinationLimit)
	}

	return nil
}

func anyMultiValued(fields []variables.FieldDescriptor) bool {
	for _, f := range fields {
		if f.MultiValued {
			return true
		}
	}

	return false
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", variables.ErrUnsupportedShape, fmt.Sprintf(format, args...))
}
