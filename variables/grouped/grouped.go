package grouped

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/expression"
	"github.com/AntonStoeckl/survey-variables-go/variables/instancelist"
	"github.com/AntonStoeckl/survey-variables-go/variables/surveygroup"
	"github.com/AntonStoeckl/survey-variables-go/variables/wave"
)

const (
	logMsgCompiled        = "grouped variable compiled"
	logMsgCompileFailed   = "grouped variable could not be compiled"
	logMsgNoEntities      = "instance list optimization skipped: no entity repository"
	metricCompileDuration = "survey_variable_compile_duration_seconds"
	metricCompiledTotal   = "survey_variable_compiled_total"
	metricLookupEntries   = "survey_variable_lookup_entries"
	statusSuccess         = "success"
	statusError           = "error"
)

const errMsgProfileFilterShape = "profile filters need date ranges or survey id sets"

// Dependencies are the read-only collaborators a compilation may consult.
type Dependencies struct {
	Entities variables.EntityRepository
	Fields   variables.FieldMetadata
}

// New compiles definition into the cheapest variable able to evaluate it.
// Errors are *variables.ConfigurationError values, or the error of an invalid option.
func New(
	definition variables.GroupedVariableDefinition,
	dependencies Dependencies,
	options ...variables.Option,
) (variables.Variable[variables.Numeric], error) {

	start := time.Now()

	settings, options, err := settingsWithBuildID(options)
	if err != nil {
		return nil, err
	}

	variable, err := compile(definition, dependencies, settings, options)
	if err != nil {
		reportFailure(settings, definition, err)
		return nil, err
	}

	reportSuccess(settings, definition, variable, time.Since(start))

	return variable, nil
}

func compile(
	definition variables.GroupedVariableDefinition,
	dependencies Dependencies,
	settings variables.Settings,
	options []variables.Option,
) (variables.Variable[variables.Numeric], error) {

	if err := definition.Validate(); err != nil {
		return nil, err
	}

	switch {
	case variables.AllComponentsAre[variables.DateRangeComponent](definition):
		waves, err := wave.New(definition, options...)
		if err != nil {
			return nil, err
		}

		return variables.AsNumeric[variables.Integer](waves), nil

	case variables.AllComponentsAre[variables.SurveyIDSetComponent](definition):
		groups, err := surveygroup.New(definition, options...)
		if err != nil {
			return nil, err
		}

		return variables.AsNumeric[variables.Integer](groups), nil
	}

	fields := dependencies.Fields
	if fields == nil {
		fields = noFields{}
	}

	generic, err := expression.New(definition, fields, options...)
	if err != nil {
		return nil, err
	}

	if dependencies.Entities == nil {
		settings.LogDebug(logMsgNoEntities, variables.LogAttrEntityType, definition.ToEntityTypeName)
		return generic, nil
	}

	if optimized, ok := instancelist.TryCreate(dependencies.Entities, fields, definition, generic, options...); ok {
		return optimized, nil
	}

	return generic, nil
}

// NewProfileFilter compiles a wave or survey group definition into a variable that introduces no
// entity type. It yields 1 for responses inside any group and no value otherwise.
func NewProfileFilter(
	definition variables.GroupedVariableDefinition,
	options ...variables.Option,
) (variables.Variable[variables.Integer], error) {

	settings, options, err := settingsWithBuildID(options)
	if err != nil {
		return nil, err
	}

	var variable variables.Variable[variables.Integer]

	switch {
	case variables.AllComponentsAre[variables.DateRangeComponent](definition):
		variable, err = wave.NewProfileOnly(definition, options...)
	case variables.AllComponentsAre[variables.SurveyIDSetComponent](definition):
		variable, err = surveygroup.NewProfileOnly(definition, options...)
	default:
		err = definition.Validate()
		if err == nil {
			err = variables.NewConfigurationError(
				definition.ToEntityTypeName,
				fmt.Errorf("%w: %s", variables.ErrUnexpectedComponent, errMsgProfileFilterShape),
			)
		}
	}

	if err != nil {
		reportFailure(settings, definition, err)
		return nil, err
	}

	return variable, nil
}

func settingsWithBuildID(options []variables.Option) (variables.Settings, []variables.Option, error) {
	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return variables.Settings{}, nil, err
	}

	if settings.BuildID != "" {
		return settings, options, nil
	}

	buildID, err := uuid.NewV7()
	if err != nil {
		return variables.Settings{}, nil, err
	}

	settings.BuildID = buildID.String()
	options = append(slices.Clip(options), variables.WithBuildID(settings.BuildID))

	return settings, options, nil
}

func reportSuccess(
	settings variables.Settings,
	definition variables.GroupedVariableDefinition,
	variable variables.Variable[variables.Numeric],
	duration time.Duration,
) {

	path := PathOf(variable)
	labels := map[string]string{
		variables.MetricLabelEntityType: definition.ToEntityTypeName,
		variables.MetricLabelPath:       path.String(),
	}

	args := []any{
		variables.LogAttrEntityType, definition.ToEntityTypeName,
		variables.LogAttrPath, path.String(),
		variables.LogAttrGroupCount, len(definition.Groups),
		variables.LogAttrDurationMS, toMilliseconds(duration),
	}

	if optimized, ok := variables.Underlying(variable).(*instancelist.Variable); ok {
		args = append(args, variables.LogAttrLookupSize, optimized.LookupSize())
		settings.RecordValue(metricLookupEntries, float64(optimized.LookupSize()), labels)
	}

	settings.LogInfo(logMsgCompiled, args...)
	settings.RecordDuration(metricCompileDuration, duration, labels)
	settings.IncrementCounter(metricCompiledTotal, withStatus(labels, statusSuccess))
}

func reportFailure(settings variables.Settings, definition variables.GroupedVariableDefinition, err error) {
	settings.LogError(logMsgCompileFailed, err, variables.LogAttrEntityType, definition.ToEntityTypeName)
	settings.IncrementCounter(metricCompiledTotal, map[string]string{
		variables.MetricLabelEntityType: definition.ToEntityTypeName,
		variables.MetricLabelStatus:     statusError,
	})
}

func withStatus(labels map[string]string, status string) map[string]string {
	labelsWithStatus := maps.Clone(labels)
	labelsWithStatus[variables.MetricLabelStatus] = status

	return labelsWithStatus
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

type noFields struct{}

func (noFields) Field(string) (variables.FieldDescriptor, bool) {
	return variables.FieldDescriptor{}, false
}
