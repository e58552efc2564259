package wave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/survey-variables-go/testutil/fixtures"
	"github.com/AntonStoeckl/survey-variables-go/testutil/helper"
	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/wave"
)

func anyWave(variables.Integer) bool { return true }

func januaryWaves() variables.GroupedVariableDefinition {
	return variables.GroupedVariableDefinition{
		ToEntityTypeName:              "Wave",
		ToEntityTypeDisplayNamePlural: "Waves",
		Groups: []variables.VariableGrouping{
			// not in date order
			variables.Group(2, "W2", variables.DateRange(fixtures.Day(2024, time.January, 8), fixtures.Day(2024, time.January, 14))),
			variables.Group(1, "W1", variables.DateRange(fixtures.Day(2024, time.January, 1), fixtures.Day(2024, time.January, 7))),
			variables.Group(3, "W3", variables.DateRange(fixtures.Day(2024, time.January, 22), fixtures.Day(2024, time.January, 28))),
		},
	}
}

func Test_Wave_MembersAt(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)

	tests := []struct {
		name     string
		at       time.Time
		expected []int
	}{
		{name: "inside_second_wave", at: fixtures.Day(2024, time.January, 10), expected: []int{2}},
		{name: "first_day_of_first_wave", at: fixtures.Day(2024, time.January, 1), expected: []int{1}},
		{name: "last_instant_of_first_wave", at: fixtures.Day(2024, time.January, 7), expected: []int{1}},
		{name: "gap_between_waves", at: fixtures.Day(2024, time.January, 18), expected: []int{}},
		{name: "before_all_waves", at: fixtures.Day(2023, time.December, 31), expected: []int{}},
		{name: "after_all_waves", at: fixtures.Day(2024, time.February, 1), expected: []int{}},
		{name: "inside_last_wave", at: fixtures.Day(2024, time.January, 28), expected: []int{3}},
	}

	members := variable.MembersAt(anyWave)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.expected, members(fixtures.ResponseAt(tc.at)))
		})
	}
}

func Test_Wave_MembersAt_AppliesPredicate(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)

	onlyFirstWave := variable.MembersAt(func(v variables.Integer) bool {
		id, ok := v.Value()
		return ok && id == 1
	})

	assert.Equal(t, []int{1}, onlyFirstWave(fixtures.ResponseAt(fixtures.Day(2024, time.January, 3))))
	assert.Empty(t, onlyFirstWave(fixtures.ResponseAt(fixtures.Day(2024, time.January, 10))))
}

func Test_Wave_MembersAt_RepeatedCallsAreIdempotent(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)
	members := variable.MembersAt(anyWave)
	response := fixtures.ResponseAt(fixtures.Day(2024, time.January, 12))

	for range 3 {
		assert.Equal(t, []int{2}, members(response))
	}
}

func Test_Wave_ValueAt(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)
	waveType := variable.IntroducedEntityTypes()[0]

	secondWave := variable.ValueAt(variables.For(waveType, 2))
	unknownWave := variable.ValueAt(variables.For(waveType, 99))

	assert.Equal(t, variables.IntegerOf(2), secondWave(fixtures.ResponseAt(fixtures.Day(2024, time.January, 10))))
	assert.Equal(t, variables.NoInteger(), secondWave(fixtures.ResponseAt(fixtures.Day(2024, time.January, 2))))
	assert.Equal(t, variables.NoInteger(), unknownWave(fixtures.ResponseAt(fixtures.Day(2024, time.January, 10))))
}

func Test_Wave_ValueAt_PanicsOnCardinalityMismatch(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)

	assert.PanicsWithError(t, "entity values do not match the introduced entity types: expected 1 entity values, got 0", func() {
		variable.ValueAt(nil)
	})

	assert.Panics(t, func() {
		variable.ValueAt(variables.EntityValues{{EntityTypeIdentifier: "Brand", InstanceID: 1}})
	})
}

func Test_Wave_IntroducesWaveTypeWithoutFieldDependencies(t *testing.T) {
	variable, err := wave.New(januaryWaves())
	require.NoError(t, err)

	assert.Equal(t,
		[]variables.EntityType{{Identifier: "Wave", DisplayNameSingular: "Wave", DisplayNamePlural: "Waves"}},
		variable.IntroducedEntityTypes(),
	)
	assert.Empty(t, variable.FieldDependencies())
}

func Test_Wave_New_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name        string
		definition  variables.GroupedVariableDefinition
		expectedErr error
	}{
		{
			name: "duplicate_instance_id",
			definition: variables.GroupedVariableDefinition{
				ToEntityTypeName: "Wave",
				Groups: []variables.VariableGrouping{
					variables.Group(1, "W1", variables.DateRange(fixtures.Day(2024, 1, 1), fixtures.Day(2024, 1, 7))),
					variables.Group(1, "W1 again", variables.DateRange(fixtures.Day(2024, 1, 8), fixtures.Day(2024, 1, 14))),
				},
			},
			expectedErr: variables.ErrDuplicateInstanceID,
		},
		{
			name: "not_a_date_range",
			definition: variables.GroupedVariableDefinition{
				ToEntityTypeName: "Wave",
				Groups:           []variables.VariableGrouping{variables.Group(1, "W1", variables.SurveyIDs(1))},
			},
			expectedErr: variables.ErrUnexpectedComponent,
		},
		{
			name: "inverted_range",
			definition: variables.GroupedVariableDefinition{
				ToEntityTypeName: "Wave",
				Groups: []variables.VariableGrouping{
					variables.Group(1, "W1", variables.DateRange(fixtures.Day(2024, 1, 7), fixtures.Day(2024, 1, 1))),
				},
			},
			expectedErr: variables.ErrInvertedDateRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wave.New(tc.definition)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.ErrorIs(t, err, variables.ErrConfiguration)
		})
	}
}

func Test_Wave_OverlappingRanges_AreFlaggedAndLogged(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)
	definition := variables.GroupedVariableDefinition{
		ToEntityTypeName: "Wave",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "W1", variables.DateRange(fixtures.Day(2024, 1, 1), fixtures.Day(2024, 1, 10))),
			variables.Group(2, "W2", variables.DateRange(fixtures.Day(2024, 1, 5), fixtures.Day(2024, 1, 14))),
		},
	}

	variable, err := wave.New(definition, variables.WithLogger(logSpy.Logger()))
	require.NoError(t, err)

	assert.True(t, variable.HasOverlappingRanges())
	assert.True(t, logSpy.
		HasWarnLogWithMessage("wave date ranges overlap, members of overlapping waves may be missed").
		WithAttr(variables.LogAttrEntityType, "Wave").
		Assert())

	nonOverlapping, err := wave.New(januaryWaves())
	require.NoError(t, err)
	assert.False(t, nonOverlapping.HasOverlappingRanges())
}

func Test_Wave_OverlappingRanges_KeepSortedScanBehaviour(t *testing.T) {
	// W1 ends last, so the scan starting at W2 (earliest end) stops there only if W2 starts after t.
	definition := variables.GroupedVariableDefinition{
		ToEntityTypeName: "Wave",
		Groups: []variables.VariableGrouping{
			variables.Group(1, "W1", variables.DateRange(fixtures.Day(2024, 1, 1), fixtures.Day(2024, 1, 31))),
			variables.Group(2, "W2", variables.DateRange(fixtures.Day(2024, 1, 10), fixtures.Day(2024, 1, 20))),
		},
	}
	variable, err := wave.New(definition)
	require.NoError(t, err)

	members := variable.MembersAt(anyWave)

	assert.ElementsMatch(t, []int{1, 2}, members(fixtures.ResponseAt(fixtures.Day(2024, 1, 15))))
	assert.Empty(t, members(fixtures.ResponseAt(fixtures.Day(2024, 1, 5))), "early exit at W2 hides W1")
}

func Test_ProfileOnlyWave(t *testing.T) {
	variable, err := wave.NewProfileOnly(januaryWaves())
	require.NoError(t, err)

	inAnyWave := variable.ValueAt(nil)

	assert.Equal(t, variables.IntegerOf(1), inAnyWave(fixtures.ResponseAt(fixtures.Day(2024, 1, 10))))
	assert.Equal(t, variables.NoInteger(), inAnyWave(fixtures.ResponseAt(fixtures.Day(2024, 1, 18))))
	assert.Empty(t, variable.IntroducedEntityTypes())
	assert.Panics(t, func() { variable.ValueAt(variables.For(variables.EntityType{Identifier: "Wave"}, 1)) })
}

func Test_ProfileOnlyWave_MembersAt_FailsFast(t *testing.T) {
	variable, err := wave.NewProfileOnly(januaryWaves())
	require.NoError(t, err)

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, variables.ErrUnimplementedPath)
	}()

	variable.MembersAt(anyWave)
}
