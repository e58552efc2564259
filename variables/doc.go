// Package variables provides the core abstractions of the survey variable evaluation engine.
//
// A grouped variable classifies survey responses into the instances of a target entity type,
// e.g. waves defined by date ranges, survey groups defined by survey ids, or arbitrary cohorts
// defined by composite conditions over the answers of single- and multi-choice fields.
//
// This package defines:
//   - the data model: EntityType, EntityInstance, ResponseEntity, GroupedVariableDefinition
//     and the closed Component variant (DateRange, SurveyIDSet, InstanceList, Composite)
//   - the Variable capability contract with ValueAt and MembersAt evaluator factories
//   - the type adapters AsBoolean, AsInteger and AsNumeric
//   - options, observability interfaces and sentinel errors shared by the implementations
//
// Implementations live in the sub-packages wave, surveygroup, expression and instancelist;
// package grouped picks the fastest one for a definition.
//
// Common usage pattern:
//
//	definition := variables.GroupedVariableDefinition{
//		ToEntityTypeName: "Cohort",
//		Groups: []variables.VariableGrouping{
//			variables.Group(1, "Fans", variables.AllOf(
//				variables.InstanceList("fave_brand", "Brand", variables.InstanceOr, 1, 2),
//				variables.InstanceList("region", "Region", variables.InstanceOr, 3),
//			)),
//		},
//	}
//
//	variable, err := grouped.New(definition, deps, variables.WithLogger(slog.Default()))
//	if err != nil {
//		// handle error
//	}
//
//	members := variable.MembersAt(func(variables.Numeric) bool { return true }) // one per worker
//	for _, response := range responses {
//		for _, cohortID := range members(response) {
//			counts[cohortID]++
//		}
//	}
package variables
