package variables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/survey-variables-go/testutil/helper"
	"github.com/AntonStoeckl/survey-variables-go/variables"
)

func Test_ApplyOptions_Defaults(t *testing.T) {
	settings, err := variables.ApplyOptions()
	require.NoError(t, err)

	assert.Equal(t, variables.DefaultCombinationLimit, settings.CombinationLimit)
	assert.Nil(t, settings.Logger)
	assert.Nil(t, settings.Metrics)
	assert.Empty(t, settings.BuildID)

	assert.NotPanics(t, func() {
		settings.LogWarn("nobody listens")
		settings.IncrementCounter("nobody_counts_total", nil)
	})
}

func Test_ApplyOptions_CombinationLimit(t *testing.T) {
	settings, err := variables.ApplyOptions(variables.WithCombinationLimit(50))
	require.NoError(t, err)
	assert.Equal(t, 50, settings.CombinationLimit)

	_, err = variables.ApplyOptions(variables.WithCombinationLimit(0))
	assert.ErrorIs(t, err, variables.ErrInvalidCombinationMax)
}

func Test_Settings_LogWithBuildID(t *testing.T) {
	logSpy := helper.NewLogHandlerSpy(false)
	settings, err := variables.ApplyOptions(variables.WithLogger(logSpy.Logger()), variables.WithBuildID("build-1"))
	require.NoError(t, err)

	settings.LogInfo("compiled", variables.LogAttrPath, "wave")
	settings.LogError("failed", variables.ErrNoGroups, variables.LogAttrEntityType, "Wave")

	assert.True(t, logSpy.
		HasInfoLogWithMessage("compiled").
		WithAttr(variables.LogAttrBuildID, "build-1").
		WithAttr(variables.LogAttrPath, "wave").
		Assert())
	assert.True(t, logSpy.
		HasErrorLogWithMessage("failed").
		WithAttr(variables.LogAttrError, variables.ErrNoGroups.Error()).
		WithAttr(variables.LogAttrEntityType, "Wave").
		Assert())
}
