package instancelist

import (
	"slices"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/scratch"
)

const (
	logMsgOptimizationNotApplied = "instance list optimization not applied"
	logMsgLookupCompiled         = "instance list lookup compiled"
)

// Variable answers MembersAt from a precomputed lookup table and delegates everything else to the generic variable.
type Variable struct {
	generic variables.Variable[variables.Numeric]
	lookup  *lookup
}

// TryCreate builds a Variable if definition can be tabulated.
// A definition that cannot is not an error: the reason is logged at debug level and ok is false.
func TryCreate(
	repository variables.EntityRepository,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
	generic variables.Variable[variables.Numeric],
	options ...variables.Option,
) (*Variable, bool) {

	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return nil, false
	}

	v, err := compile(repository, fields, definition, generic, settings)
	if err != nil {
		settings.LogDebug(
			logMsgOptimizationNotApplied,
			variables.LogAttrEntityType, definition.ToEntityTypeName,
			variables.LogAttrReason, err.Error(),
		)

		return nil, false
	}

	return v, true
}

// New builds a Variable or returns an error wrapping variables.ErrUnsupportedShape explaining why it cannot.
func New(
	repository variables.EntityRepository,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
	generic variables.Variable[variables.Numeric],
	options ...variables.Option,
) (*Variable, error) {

	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return nil, err
	}

	return compile(repository, fields, definition, generic, settings)
}

func compile(
	repository variables.EntityRepository,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
	generic variables.Variable[variables.Numeric],
	settings variables.Settings,
) (*Variable, error) {

	if err := definition.Validate(); err != nil {
		return nil, err
	}

	if err := checkShape(definition, fields, generic); err != nil {
		return nil, err
	}

	keys := collectKeys(repository, fields, definition)
	if err := checkSize(keys, definition, settings.CombinationLimit); err != nil {
		return nil, err
	}

	l := buildLookup(keys, fields, definition)

	settings.LogDebug(
		logMsgLookupCompiled,
		variables.LogAttrEntityType, definition.ToEntityTypeName,
		variables.LogAttrLookupSize, l.size(),
	)

	return &Variable{generic: generic, lookup: l}, nil
}

// LookupSize returns the number of answer combinations matching at least one group.
func (v *Variable) LookupSize() int {
	return v.lookup.size()
}

// Generic returns the variable this one accelerates.
func (v *Variable) Generic() variables.Variable[variables.Numeric] {
	return v.generic
}

// ValueAt delegates to the generic variable.
func (v *Variable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Numeric {
	return v.generic.ValueAt(entityValues)
}

// MembersAt looks up every combination of the response's answers and returns the matched groups
// whose value satisfies predicate.
//
// Answers unknown to the entity repository are ignored. A field without known answers counts as unanswered.
func (v *Variable) MembersAt(predicate func(variables.Numeric) bool) func(variables.ResponseEntity) []int {
	variables.MustHaveSingleEntityType(v.IntroducedEntityTypes())

	keys := v.lookup.keys
	entries := v.lookup.entries

	pool := scratch.NewPool[int](2 * len(keys))
	result := scratch.NewBuffer[int](4)
	ordinalSets := make([][]int, len(keys))
	positions := make([]int, len(keys))

	return func(response variables.ResponseEntity) []int {
		pool.FreeAll()
		result.Reset()

		for k, key := range keys {
			answers := response.Answers(key.field)

			set := pool.Rent(max(len(answers), 1))
			for _, answer := range answers {
				if ordinal, ok := key.ordinals[answer]; ok && !slices.Contains(set, ordinal) {
					set = append(set, ordinal)
				}
			}
			if len(set) == 0 {
				set = append(set, noAnswer)
			}

			ordinalSets[k] = set
			positions[k] = 0
		}

		for {
			for _, groupID := range entries[v.lookup.encode(ordinalSets, positions)] {
				if !result.Contains(groupID) && predicate(variables.NumericOf(float64(groupID))) {
					result.Append(groupID)
				}
			}

			if !advance(positions, ordinalSets) {
				return result.Items()
			}
		}
	}
}

// FieldDependencies delegates to the generic variable.
func (v *Variable) FieldDependencies() []variables.FieldDescriptor {
	return v.generic.FieldDependencies()
}

// IntroducedEntityTypes delegates to the generic variable.
func (v *Variable) IntroducedEntityTypes() []variables.EntityType {
	return v.generic.IntroducedEntityTypes()
}
