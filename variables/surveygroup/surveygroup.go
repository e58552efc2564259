package surveygroup

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/scratch"
)

const logMsgSurveyGroupsCompiled = "survey group variable compiled"

// Variable maps the survey id of a response to the groups containing that survey.
type Variable struct {
	entityType       variables.EntityType
	groupsBySurveyID map[int][]int
	surveysByGroupID map[int]map[int]struct{}
	maxGroupsPerID   int
}

// New compiles a definition whose groups are all SurveyIDSetComponents.
func New(definition variables.GroupedVariableDefinition, options ...variables.Option) (*Variable, error) {
	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return nil, err
	}

	v, err := compile(definition)
	if err != nil {
		settings.LogError(variables.ErrConfiguration.Error(), err, variables.LogAttrEntityType, definition.ToEntityTypeName)
		return nil, err
	}

	settings.LogDebug(
		logMsgSurveyGroupsCompiled,
		variables.LogAttrEntityType, definition.ToEntityTypeName,
		variables.LogAttrGroupCount, len(definition.Groups),
	)

	return v, nil
}

func compile(definition variables.GroupedVariableDefinition) (*Variable, error) {
	if err := definition.Validate(); err != nil {
		return nil, err
	}

	v := &Variable{
		entityType:       definition.TargetEntityType(),
		groupsBySurveyID: make(map[int][]int),
		surveysByGroupID: make(map[int]map[int]struct{}, len(definition.Groups)),
	}

	for _, g := range definition.Groups {
		surveyIDSet, ok := g.Component.(variables.SurveyIDSetComponent)
		if !ok {
			return nil, variables.NewConfigurationError(
				definition.ToEntityTypeName,
				fmt.Errorf("%w: group %d is %T, survey groups need survey id sets", variables.ErrUnexpectedComponent, g.ToEntityInstanceID, g.Component),
			)
		}

		surveys := make(map[int]struct{}, len(surveyIDSet.SurveyIDs))
		for _, surveyID := range surveyIDSet.SurveyIDs {
			surveys[surveyID] = struct{}{}

			groups := v.groupsBySurveyID[surveyID]
			if !slices.Contains(groups, g.ToEntityInstanceID) {
				v.groupsBySurveyID[surveyID] = append(groups, g.ToEntityInstanceID)
			}
		}
		v.surveysByGroupID[g.ToEntityInstanceID] = surveys
	}

	for _, groups := range v.groupsBySurveyID {
		v.maxGroupsPerID = max(v.maxGroupsPerID, len(groups))
	}

	return v, nil
}

// ValueAt returns the group instance id when the response's survey belongs to that group.
func (v *Variable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Integer {
	variables.MustMatchEntityValues(v.IntroducedEntityTypes(), entityValues)

	groupID := entityValues[0].InstanceID
	surveys, ok := v.surveysByGroupID[groupID]
	if !ok {
		return func(variables.ResponseEntity) variables.Integer {
			return variables.NoInteger()
		}
	}

	return func(response variables.ResponseEntity) variables.Integer {
		if _, ok := surveys[response.SurveyID()]; ok {
			return variables.IntegerOf(groupID)
		}

		return variables.NoInteger()
	}
}

// MembersAt returns the groups containing the response's survey whose instance id satisfies predicate.
func (v *Variable) MembersAt(predicate func(variables.Integer) bool) func(variables.ResponseEntity) []int {
	variables.MustHaveSingleEntityType(v.IntroducedEntityTypes())

	buffer := scratch.NewBuffer[int](v.maxGroupsPerID)

	return func(response variables.ResponseEntity) []int {
		buffer.Reset()

		for _, groupID := range v.groupsBySurveyID[response.SurveyID()] {
			if predicate(variables.IntegerOf(groupID)) {
				buffer.Append(groupID)
			}
		}

		return buffer.Items()
	}
}

// FieldDependencies is empty: survey groups only read the survey id.
func (v *Variable) FieldDependencies() []variables.FieldDescriptor {
	return nil
}

// IntroducedEntityTypes returns the survey group entity type.
func (v *Variable) IntroducedEntityTypes() []variables.EntityType {
	return []variables.EntityType{v.entityType}
}
