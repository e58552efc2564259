package expression

import (
	"fmt"
	"slices"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/scratch"
)

const logMsgExpressionCompiled = "expression variable compiled"

type matcher func(variables.ResponseEntity) bool

type compiledGroup struct {
	instanceID int
	matches    matcher
}

// Variable evaluates the component tree of every group per response.
type Variable struct {
	entityType        variables.EntityType
	groups            []compiledGroup
	groupIndexByID    map[int]int
	fieldDependencies []variables.FieldDescriptor
}

// New compiles definition. Every field referenced by an instance list must be known to fields.
func New(
	definition variables.GroupedVariableDefinition,
	fields variables.FieldMetadata,
	options ...variables.Option,
) (*Variable, error) {

	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return nil, err
	}

	v, err := compile(definition, fields)
	if err != nil {
		settings.LogError(variables.ErrConfiguration.Error(), err, variables.LogAttrEntityType, definition.ToEntityTypeName)
		return nil, err
	}

	settings.LogDebug(
		logMsgExpressionCompiled,
		variables.LogAttrEntityType, definition.ToEntityTypeName,
		variables.LogAttrGroupCount, len(v.groups),
	)

	return v, nil
}

func compile(definition variables.GroupedVariableDefinition, fields variables.FieldMetadata) (*Variable, error) {
	if err := definition.Validate(); err != nil {
		return nil, err
	}

	v := &Variable{
		entityType:     definition.TargetEntityType(),
		groups:         make([]compiledGroup, 0, len(definition.Groups)),
		groupIndexByID: make(map[int]int, len(definition.Groups)),
	}

	for _, g := range definition.Groups {
		matches, err := v.compileComponent(g.Component, fields)
		if err != nil {
			return nil, variables.NewConfigurationError(
				definition.ToEntityTypeName,
				fmt.Errorf("group %d: %w", g.ToEntityInstanceID, err),
			)
		}

		v.groupIndexByID[g.ToEntityInstanceID] = len(v.groups)
		v.groups = append(v.groups, compiledGroup{instanceID: g.ToEntityInstanceID, matches: matches})
	}

	return v, nil
}

func (v *Variable) compileComponent(component variables.Component, fields variables.FieldMetadata) (matcher, error) {
	switch c := component.(type) {
	case variables.DateRangeComponent:
		return func(response variables.ResponseEntity) bool {
			return c.Contains(response.Timestamp())
		}, nil

	case variables.SurveyIDSetComponent:
		surveyIDs := sortedCopy(c.SurveyIDs)
		return func(response variables.ResponseEntity) bool {
			_, found := slices.BinarySearch(surveyIDs, response.SurveyID())
			return found
		}, nil

	case variables.InstanceListComponent:
		field, ok := fields.Field(c.FromVariableIdentifier)
		if !ok {
			return nil, fmt.Errorf("%w: %q", variables.ErrUnknownField, c.FromVariableIdentifier)
		}
		v.addFieldDependency(field)

		return compileInstanceList(c), nil

	case variables.CompositeComponent:
		children := make([]matcher, 0, len(c.Children))
		for _, child := range c.Children {
			m, err := v.compileComponent(child, fields)
			if err != nil {
				return nil, err
			}
			children = append(children, m)
		}

		if c.Separator == variables.SeparatorOr {
			return anyOf(children), nil
		}

		return allOf(children), nil

	default:
		return nil, fmt.Errorf("%w: %T", variables.ErrUnknownComponentType, component)
	}
}

func compileInstanceList(c variables.InstanceListComponent) matcher {
	field := c.FromVariableIdentifier
	ids := sortedCopy(c.InstanceIDs)

	answeredAny := func(response variables.ResponseEntity) bool {
		for _, answer := range response.Answers(field) {
			if _, found := slices.BinarySearch(ids, answer); found {
				return true
			}
		}

		return false
	}

	switch c.Operator {
	case variables.InstanceAnd:
		return func(response variables.ResponseEntity) bool {
			answers := response.Answers(field)
			for _, id := range ids {
				if !slices.Contains(answers, id) {
					return false
				}
			}

			return len(ids) > 0
		}
	case variables.InstanceNot:
		return func(response variables.ResponseEntity) bool {
			return !answeredAny(response)
		}
	default:
		return answeredAny
	}
}

func allOf(children []matcher) matcher {
	return func(response variables.ResponseEntity) bool {
		for _, matches := range children {
			if !matches(response) {
				return false
			}
		}

		return true
	}
}

func anyOf(children []matcher) matcher {
	return func(response variables.ResponseEntity) bool {
		for _, matches := range children {
			if matches(response) {
				return true
			}
		}

		return false
	}
}

func (v *Variable) addFieldDependency(field variables.FieldDescriptor) {
	if !slices.Contains(v.fieldDependencies, field) {
		v.fieldDependencies = append(v.fieldDependencies, field)
	}
}

// ValueAt returns the target instance id when the response matches that group's component.
func (v *Variable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Numeric {
	variables.MustMatchEntityValues(v.IntroducedEntityTypes(), entityValues)

	index, ok := v.groupIndexByID[entityValues[0].InstanceID]
	if !ok {
		return func(variables.ResponseEntity) variables.Numeric {
			return variables.NoNumeric()
		}
	}

	group := v.groups[index]
	value := variables.NumericOf(float64(group.instanceID))

	return func(response variables.ResponseEntity) variables.Numeric {
		if group.matches(response) {
			return value
		}

		return variables.NoNumeric()
	}
}

// MembersAt returns the target instances, in definition order, whose component matches the response
// and whose value satisfies predicate.
func (v *Variable) MembersAt(predicate func(variables.Numeric) bool) func(variables.ResponseEntity) []int {
	variables.MustHaveSingleEntityType(v.IntroducedEntityTypes())

	buffer := scratch.NewBuffer[int](len(v.groups))

	return func(response variables.ResponseEntity) []int {
		buffer.Reset()

		for _, group := range v.groups {
			if group.matches(response) && predicate(variables.NumericOf(float64(group.instanceID))) {
				buffer.Append(group.instanceID)
			}
		}

		return buffer.Items()
	}
}

// FieldDependencies returns the distinct fields referenced by instance list leaves.
func (v *Variable) FieldDependencies() []variables.FieldDescriptor {
	return slices.Clone(v.fieldDependencies)
}

// IntroducedEntityTypes returns the target entity type.
func (v *Variable) IntroducedEntityTypes() []variables.EntityType {
	return []variables.EntityType{v.entityType}
}

func sortedCopy(ids []int) []int {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	return sorted
}
