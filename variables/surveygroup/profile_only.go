package surveygroup

import (
	"fmt"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// ProfileOnlyVariable answers only whether the response's survey is in any group.
type ProfileOnlyVariable struct {
	groups *Variable
}

// NewProfileOnly compiles the same definitions as New into a ProfileOnlyVariable.
func NewProfileOnly(definition variables.GroupedVariableDefinition, options ...variables.Option) (*ProfileOnlyVariable, error) {
	groups, err := New(definition, options...)
	if err != nil {
		return nil, err
	}

	return &ProfileOnlyVariable{groups: groups}, nil
}

// ValueAt takes no entity values and returns 1 when any group contains the response's survey.
func (v *ProfileOnlyVariable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Integer {
	variables.MustMatchEntityValues(nil, entityValues)

	return func(response variables.ResponseEntity) variables.Integer {
		if len(v.groups.groupsBySurveyID[response.SurveyID()]) > 0 {
			return variables.IntegerOf(1)
		}

		return variables.NoInteger()
	}
}

func (v *ProfileOnlyVariable) MembersAt(func(variables.Integer) bool) func(variables.ResponseEntity) []int {
	panic(fmt.Errorf("%w: profile-only survey group variable has no members", variables.ErrUnimplementedPath))
}

func (v *ProfileOnlyVariable) FieldDependencies() []variables.FieldDescriptor {
	return nil
}

func (v *ProfileOnlyVariable) IntroducedEntityTypes() []variables.EntityType {
	return nil
}
