package variables_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

var (
	jan1 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan7 = time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
)

func definitionWith(groups ...variables.VariableGrouping) variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{ToEntityTypeName: "Cohort", Groups: groups}
}

//nolint:funlen
func Test_Validate(t *testing.T) {
	tests := []struct {
		name        string
		definition  variables.GroupedVariableDefinition
		expectedErr error
	}{
		{
			name:       "valid_nested_definition",
			definition: definitionWith(variables.Group(1, "A", variables.AnyOf(variables.SurveyIDs(1), variables.AllOf(variables.DateRange(jan1, jan7))))),
		},
		{
			name:        "empty_entity_type_name",
			definition:  variables.GroupedVariableDefinition{Groups: []variables.VariableGrouping{variables.Group(1, "A", variables.SurveyIDs(1))}},
			expectedErr: variables.ErrEmptyEntityTypeName,
		},
		{
			name:        "no_groups",
			definition:  definitionWith(),
			expectedErr: variables.ErrNoGroups,
		},
		{
			name:        "duplicate_instance_ids",
			definition:  definitionWith(variables.Group(1, "A", variables.SurveyIDs(1)), variables.Group(1, "B", variables.SurveyIDs(2))),
			expectedErr: variables.ErrDuplicateInstanceID,
		},
		{
			name:        "nil_component",
			definition:  definitionWith(variables.Group(1, "A", nil)),
			expectedErr: variables.ErrNilComponent,
		},
		{
			name:        "nil_component_inside_composite",
			definition:  definitionWith(variables.Group(1, "A", variables.CompositeComponent{Children: []variables.Component{nil}})),
			expectedErr: variables.ErrNilComponent,
		},
		{
			name:        "empty_composite",
			definition:  definitionWith(variables.Group(1, "A", variables.CompositeComponent{Separator: variables.SeparatorOr})),
			expectedErr: variables.ErrEmptyComposite,
		},
		{
			name:        "inverted_date_range",
			definition:  definitionWith(variables.Group(1, "A", variables.DateRange(jan7, jan1))),
			expectedErr: variables.ErrInvertedDateRange,
		},
		{
			name:        "instance_list_without_field",
			definition:  definitionWith(variables.Group(1, "A", variables.InstanceList("", "Brand", variables.InstanceOr, 1))),
			expectedErr: variables.ErrEmptyFieldIdentifier,
		},
		{
			name:        "unknown_operator",
			definition:  definitionWith(variables.Group(1, "A", variables.InstanceList("q", "Brand", variables.InstanceOperator(9), 1))),
			expectedErr: variables.ErrUnknownOperator,
		},
		{
			name: "unknown_separator",
			definition: definitionWith(variables.Group(1, "A", variables.CompositeComponent{
				Separator: variables.CompositeSeparator(5),
				Children:  []variables.Component{variables.SurveyIDs(1)},
			})),
			expectedErr: variables.ErrUnknownSeparator,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.definition.Validate()

			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, variables.ErrConfiguration)

			var configurationError *variables.ConfigurationError
			require.ErrorAs(t, err, &configurationError)
			assert.Equal(t, tc.definition.ToEntityTypeName, configurationError.EntityTypeName)
		})
	}
}

func Test_ComponentConstructors_SanitizeIDs(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, variables.SurveyIDs(3, 1, 2, 3, 1).SurveyIDs)
	assert.Equal(t, []int{4, 7}, variables.InstanceList("q", "Brand", variables.InstanceOr, 7, 4, 7).InstanceIDs)
}

func Test_DateRangeContainsIsInclusive(t *testing.T) {
	dateRange := variables.DateRange(jan1, jan7)

	assert.True(t, dateRange.Contains(jan1))
	assert.True(t, dateRange.Contains(jan7))
	assert.False(t, dateRange.Contains(jan7.Add(time.Nanosecond)))
	assert.False(t, dateRange.Contains(jan1.Add(-time.Nanosecond)))
}

func Test_WalkAndLeaves(t *testing.T) {
	brand := variables.InstanceList("brand", "Brand", variables.InstanceOr, 1)
	region := variables.InstanceList("region", "Region", variables.InstanceNot, 2)
	survey := variables.SurveyIDs(9)
	tree := variables.AllOf(brand, variables.AnyOf(region, survey))

	assert.Equal(t, []variables.Component{brand, region, survey}, variables.Leaves(tree))
	assert.Equal(t, 2, variables.CompositeCount(tree))
	assert.Equal(t, 0, variables.CompositeCount(brand))

	visited := 0
	variables.Walk(tree, func(variables.Component) { visited++ })
	assert.Equal(t, 5, visited)
}

func Test_AllComponentsAre(t *testing.T) {
	waves := definitionWith(variables.Group(1, "W1", variables.DateRange(jan1, jan7)), variables.Group(2, "W2", variables.DateRange(jan1, jan7)))
	mixed := definitionWith(variables.Group(1, "W1", variables.DateRange(jan1, jan7)), variables.Group(2, "S", variables.SurveyIDs(1)))

	assert.True(t, variables.AllComponentsAre[variables.DateRangeComponent](waves))
	assert.False(t, variables.AllComponentsAre[variables.DateRangeComponent](mixed))
	assert.False(t, variables.AllComponentsAre[variables.SurveyIDSetComponent](mixed))
	assert.False(t, variables.AllComponentsAre[variables.DateRangeComponent](definitionWith()))
}

func Test_OperatorAndSeparatorNames(t *testing.T) {
	assert.Equal(t, "or", variables.InstanceOr.String())
	assert.Equal(t, "and", variables.InstanceAnd.String())
	assert.Equal(t, "not", variables.InstanceNot.String())
	assert.Equal(t, "unknown", variables.InstanceOperator(9).String())
	assert.Equal(t, "and", variables.SeparatorAnd.String())
	assert.Equal(t, "or", variables.SeparatorOr.String())
}

func Test_DefinitionJSON(t *testing.T) {
	definition := variables.GroupedVariableDefinition{
		ToEntityTypeName:              "Cohort",
		ToEntityTypeDisplayNamePlural: "Cohorts",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "Fans", variables.AnyOf(
				variables.InstanceList("fave_brand", "Brand", variables.InstanceOr, 1, 2),
				variables.InstanceList("age_band", "AgeBand", variables.InstanceAnd, 3),
			)),
			variables.Group(2, "Early", variables.AllOf(variables.DateRange(jan1, jan7), variables.SurveyIDs(4))),
		},
	}

	encoded, err := variables.MarshalGroupedVariableDefinition(definition)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"type":"composite"`)
	assert.Contains(t, string(encoded), `"separator":"or"`)
	assert.Contains(t, string(encoded), `"operator":"and"`)

	decoded, err := variables.UnmarshalGroupedVariableDefinition(encoded)
	require.NoError(t, err)

	assert.Equal(t, definition, decoded)
}

func Test_DefinitionJSON_Defaults(t *testing.T) {
	decoded, err := variables.UnmarshalGroupedVariableDefinitions([]byte(`[{
		"toEntityTypeName": "Cohort",
		"groups": [{
			"toEntityInstanceId": 1,
			"component": {"type": "composite", "children": [
				{"type": "instanceList", "fromVariableIdentifier": "q", "instanceIds": [2]},
				{"type": "dateRange", "min": "2024-01-01", "max": "2024-01-07T00:00:00Z"}
			]}
		}]
	}]`))
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	composite, ok := decoded[0].Groups[0].Component.(variables.CompositeComponent)
	require.True(t, ok)
	assert.Equal(t, variables.SeparatorAnd, composite.Separator)
	assert.Equal(t, variables.InstanceOr, composite.Children[0].(variables.InstanceListComponent).Operator)
	assert.True(t, composite.Children[1].(variables.DateRangeComponent).Contains(jan7))
}

func Test_DefinitionJSON_MissingComponent(t *testing.T) {
	_, err := variables.UnmarshalGroupedVariableDefinition([]byte(`{"toEntityTypeName":"Cohort","groups":[{"toEntityInstanceId":1}]}`))

	assert.ErrorIs(t, err, variables.ErrNilComponent)
	assert.ErrorIs(t, err, variables.ErrConfiguration)
}
