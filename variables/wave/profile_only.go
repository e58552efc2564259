package wave

import (
	"fmt"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// ProfileOnlyVariable answers only whether any wave contains the response.
// It introduces no entity type, so counting responses does not multiply the result space by waves.
type ProfileOnlyVariable struct {
	waves *Variable
}

// NewProfileOnly compiles the same definitions as New into a ProfileOnlyVariable.
func NewProfileOnly(definition variables.GroupedVariableDefinition, options ...variables.Option) (*ProfileOnlyVariable, error) {
	waves, err := New(definition, options...)
	if err != nil {
		return nil, err
	}

	return &ProfileOnlyVariable{waves: waves}, nil
}

// ValueAt takes no entity values and returns 1 when any wave contains the response timestamp.
func (v *ProfileOnlyVariable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Integer {
	variables.MustMatchEntityValues(nil, entityValues)

	return func(response variables.ResponseEntity) variables.Integer {
		timestamp := response.Timestamp()
		i := v.waves.firstCandidate(timestamp)
		if i < len(v.waves.sortedRanges) && !v.waves.sortedRanges[i].min.After(timestamp) {
			return variables.IntegerOf(1)
		}

		return variables.NoInteger()
	}
}

// MembersAt is not supported: the variable has no entity type to enumerate.
func (v *ProfileOnlyVariable) MembersAt(func(variables.Integer) bool) func(variables.ResponseEntity) []int {
	panic(fmt.Errorf("%w: profile-only wave variable has no members", variables.ErrUnimplementedPath))
}

func (v *ProfileOnlyVariable) FieldDependencies() []variables.FieldDescriptor {
	return nil
}

func (v *ProfileOnlyVariable) IntroducedEntityTypes() []variables.EntityType {
	return nil
}
