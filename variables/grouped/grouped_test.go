package grouped_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/survey-variables-go/testutil/fixtures"
	"github.com/AntonStoeckl/survey-variables-go/testutil/helper"
	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/grouped"
)

var dependencies = grouped.Dependencies{
	Entities: fixtures.EntityRepository{
		"Gender": {1, 2},
		"Brand":  {1, 2, 3},
	},
	Fields: fixtures.NewFieldMetadata(
		fixtures.SingleChoice("Gender", "Gender"),
		fixtures.MultiChoice("BrandsUsed", "Brand"),
	),
}

func anyMember(variables.Numeric) bool { return true }

func wavesDefinition() variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{
		ToEntityTypeName: "Wave",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "Q1", variables.DateRange(fixtures.Day(2024, time.January, 1), fixtures.Day(2024, time.March, 31))),
			variables.Group(2, "Q2", variables.DateRange(fixtures.Day(2024, time.April, 1), fixtures.Day(2024, time.June, 30))),
		},
	}
}

func surveyGroupsDefinition() variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{
		ToEntityTypeName: "SurveyGroup",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "UK", variables.SurveyIDs(10, 11)),
			variables.Group(2, "US", variables.SurveyIDs(11, 12)),
		},
	}
}

func tabulatableDefinition() variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{
		ToEntityTypeName: "Segment",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "Men", variables.InstanceList("Gender", "Gender", variables.InstanceOr, 1)),
			variables.Group(2, "Brand 2 users", variables.InstanceList("BrandsUsed", "Brand", variables.InstanceOr, 2)),
		},
	}
}

func mixedDefinition() variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{
		ToEntityTypeName: "Segment",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "Men in UK survey", variables.AllOf(
				variables.InstanceList("Gender", "Gender", variables.InstanceOr, 1),
				variables.SurveyIDs(10),
			)),
			variables.Group(2, "Early", variables.DateRange(fixtures.Day(2024, time.January, 1), fixtures.Day(2024, time.January, 31))),
		},
	}
}

func Test_New_ChoosesCompiledForm(t *testing.T) {
	tests := []struct {
		name         string
		definition   variables.GroupedVariableDefinition
		dependencies grouped.Dependencies
		expected     grouped.Path
	}{
		{name: "date_ranges", definition: wavesDefinition(), dependencies: dependencies, expected: grouped.PathWave},
		{name: "survey_id_sets", definition: surveyGroupsDefinition(), dependencies: dependencies, expected: grouped.PathSurveyGroup},
		{name: "tabulatable_instance_lists", definition: tabulatableDefinition(), dependencies: dependencies, expected: grouped.PathInstanceList},
		{name: "mixed_leaf_kinds", definition: mixedDefinition(), dependencies: dependencies, expected: grouped.PathExpression},
		{
			name:         "instance_lists_without_entity_repository",
			definition:   tabulatableDefinition(),
			dependencies: grouped.Dependencies{Fields: dependencies.Fields},
			expected:     grouped.PathExpression,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			variable, err := grouped.New(tc.definition, tc.dependencies)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, grouped.PathOf(variable))
		})
	}
}

func Test_New_WaveValuesAreNumeric(t *testing.T) {
	variable, err := grouped.New(wavesDefinition(), dependencies)
	require.NoError(t, err)

	members := variable.MembersAt(func(v variables.Numeric) bool {
		f, ok := v.Value()
		return ok && f == 2
	})
	value := variable.ValueAt(variables.For(variable.IntroducedEntityTypes()[0], 1))

	assert.Equal(t, []int{2}, members(fixtures.ResponseAt(fixtures.Day(2024, time.May, 5))))
	assert.Empty(t, members(fixtures.ResponseAt(fixtures.Day(2024, time.February, 5))))
	assert.Equal(t, variables.NumericOf(1), value(fixtures.ResponseAt(fixtures.Day(2024, time.February, 5))))
}

func Test_New_AdaptsBackToIntegerWithoutWrapping(t *testing.T) {
	variable, err := grouped.New(surveyGroupsDefinition(), dependencies)
	require.NoError(t, err)

	integers := variables.AsInteger(variable)

	assert.Same(t, variables.Underlying(variable), integers)
	assert.ElementsMatch(t, []int{1, 2}, integers.MembersAt(func(variables.Integer) bool { return true })(fixtures.ResponseToSurvey(11)))
}

func Test_New_MixedDefinitionUsesExpression(t *testing.T) {
	variable, err := grouped.New(mixedDefinition(), dependencies)
	require.NoError(t, err)
	members := variable.MembersAt(anyMember)

	response := fixtures.Response{
		At:             fixtures.Day(2024, time.January, 20),
		Survey:         10,
		AnswersByField: map[string][]int{"Gender": {1}},
	}

	assert.Equal(t, []int{1, 2}, members(response))
}

func Test_New_RejectsInvalidDefinitions(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy()

	definition := tabulatableDefinition()
	definition.Groups = append(definition.Groups, variables.Group(1, "Men again", variables.SurveyIDs(1)))

	variable, err := grouped.New(
		definition,
		dependencies,
		variables.WithLogger(logSpy.Logger()),
		variables.WithMetrics(metricsSpy),
	)

	assert.Nil(t, variable)
	assert.ErrorIs(t, err, variables.ErrConfiguration)
	assert.ErrorIs(t, err, variables.ErrDuplicateInstanceID)
	assert.True(t, logSpy.
		HasErrorLogWithMessage("grouped variable could not be compiled").
		WithAttr(variables.LogAttrEntityType, "Segment").
		WithAttrKey(variables.LogAttrBuildID).
		Assert())
	assert.True(t, metricsSpy.
		HasCounterRecordForMetric("survey_variable_compiled_total").
		WithLabel(variables.MetricLabelStatus, "error").
		Assert())
}

func Test_New_UnknownFieldIsConfigurationError(t *testing.T) {
	definition := variables.GroupedVariableDefinition{
		ToEntityTypeName: "Segment",
		Groups:           []variables.VariableGrouping{variables.Group(1, "G", variables.InstanceList("Age", "AgeBand", variables.InstanceOr, 1))},
	}

	_, err := grouped.New(definition, grouped.Dependencies{})

	var configurationError *variables.ConfigurationError
	require.ErrorAs(t, err, &configurationError)
	assert.Equal(t, "Segment", configurationError.EntityTypeName)
	assert.ErrorIs(t, err, variables.ErrUnknownField)
}

func Test_New_InvalidOption(t *testing.T) {
	_, err := grouped.New(wavesDefinition(), dependencies, variables.WithCombinationLimit(0))

	assert.ErrorIs(t, err, variables.ErrInvalidCombinationMax)
}

func Test_New_ReportsChosenPath(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy()
	buildID := uuid.NewString()

	_, err := grouped.New(
		tabulatableDefinition(),
		dependencies,
		variables.WithLogger(logSpy.Logger()),
		variables.WithMetrics(metricsSpy),
		variables.WithBuildID(buildID),
	)
	require.NoError(t, err)

	assert.True(t, logSpy.
		HasInfoLogWithMessage("grouped variable compiled").
		WithAttr(variables.LogAttrBuildID, buildID).
		WithAttr(variables.LogAttrPath, "instance_list").
		WithAttr(variables.LogAttrGroupCount, 2).
		WithAttrKey(variables.LogAttrLookupSize).
		WithAttrKey(variables.LogAttrDurationMS).
		Assert())
	assert.True(t, logSpy.
		HasDebugLogWithMessage("instance list lookup compiled").
		WithAttr(variables.LogAttrBuildID, buildID).
		Assert())

	assert.True(t, metricsSpy.HasDurationRecord("survey_variable_compile_duration_seconds"))
	assert.True(t, metricsSpy.
		HasCounterRecordForMetric("survey_variable_compiled_total").
		WithLabel(variables.MetricLabelPath, "instance_list").
		WithLabel(variables.MetricLabelStatus, "success").
		WithLabel(variables.MetricLabelEntityType, "Segment").
		Assert())
	assert.True(t, metricsSpy.
		HasValueRecordForMetric("survey_variable_lookup_entries").
		WithLabel(variables.MetricLabelPath, "instance_list").
		Assert())
}

func Test_New_GeneratesBuildIDWhenMissing(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)

	_, err := grouped.New(wavesDefinition(), dependencies, variables.WithLogger(logSpy.Logger()))
	require.NoError(t, err)

	assert.True(t, logSpy.
		HasInfoLogWithMessage("grouped variable compiled").
		WithAttrKey(variables.LogAttrBuildID).
		WithAttr(variables.LogAttrPath, "wave").
		Assert())
}

func Test_New_LogsWhyOptimizationWasNotApplied(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)
	definition := variables.GroupedVariableDefinition{
		ToEntityTypeName: "Segment",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "Not brand 1", variables.InstanceList("BrandsUsed", "Brand", variables.InstanceNot, 1)),
		},
	}

	variable, err := grouped.New(definition, dependencies, variables.WithLogger(logSpy.Logger()))
	require.NoError(t, err)

	assert.Equal(t, grouped.PathExpression, grouped.PathOf(variable))
	assert.True(t, logSpy.
		HasDebugLogWithMessage("instance list optimization not applied").
		WithAttrKey(variables.LogAttrReason).
		Assert())
}

func Test_NewProfileFilter(t *testing.T) {
	waves, err := grouped.NewProfileFilter(wavesDefinition())
	require.NoError(t, err)
	surveyGroups, err := grouped.NewProfileFilter(surveyGroupsDefinition())
	require.NoError(t, err)

	assert.Equal(t, grouped.PathWave, grouped.PathOf(waves))
	assert.Equal(t, grouped.PathSurveyGroup, grouped.PathOf(surveyGroups))
	assert.Empty(t, waves.IntroducedEntityTypes())
	assert.Equal(t, variables.IntegerOf(1), waves.ValueAt(nil)(fixtures.ResponseAt(fixtures.Day(2024, time.June, 30))))
	assert.Equal(t, variables.NoInteger(), waves.ValueAt(nil)(fixtures.ResponseAt(fixtures.Day(2024, time.July, 1))))
	assert.Equal(t, variables.IntegerOf(1), surveyGroups.ValueAt(nil)(fixtures.ResponseToSurvey(12)))
}

func Test_NewProfileFilter_RejectsOtherShapes(t *testing.T) {
	_, err := grouped.NewProfileFilter(tabulatableDefinition())

	assert.ErrorIs(t, err, variables.ErrConfiguration)
	assert.ErrorIs(t, err, variables.ErrUnexpectedComponent)
}

func Test_PathString(t *testing.T) {
	assert.Equal(t, "wave", grouped.PathWave.String())
	assert.Equal(t, "survey_group", grouped.PathSurveyGroup.String())
	assert.Equal(t, "instance_list", grouped.PathInstanceList.String())
	assert.Equal(t, "expression", grouped.PathExpression.String())
	assert.Equal(t, "unknown", grouped.PathUnknown.String())
	assert.Equal(t, grouped.PathUnknown, grouped.PathOf("not a variable"))
}
