package variables

import (
	"fmt"
	"slices"
	"time"
)

// GroupedVariableDefinition maps responses onto the instances of a target entity type.
// Each VariableGrouping defines one target instance and the condition for belonging to it.
type GroupedVariableDefinition struct {
	ToEntityTypeName              string
	ToEntityTypeDisplayNamePlural string
	Groups                        []VariableGrouping
}

// VariableGrouping is one target instance and its membership condition.
type VariableGrouping struct {
	ToEntityInstanceID   int
	ToEntityInstanceName string
	Component            Component
}

// TargetEntityType returns the entity type the definition introduces.
func (d GroupedVariableDefinition) TargetEntityType() EntityType {
	return EntityType{
		Identifier:          d.ToEntityTypeName,
		DisplayNameSingular: d.ToEntityTypeName,
		DisplayNamePlural:   d.ToEntityTypeDisplayNamePlural,
	}
}

// TargetInstances returns the instances defined by the groups, in definition order.
func (d GroupedVariableDefinition) TargetInstances() []EntityInstance {
	instances := make([]EntityInstance, 0, len(d.Groups))
	for _, g := range d.Groups {
		instances = append(instances, EntityInstance{ID: g.ToEntityInstanceID, Name: g.ToEntityInstanceName})
	}

	return instances
}

// AllComponentsAre reports whether every group's top-level component is a C.
func AllComponentsAre[C Component](d GroupedVariableDefinition) bool {
	if len(d.Groups) == 0 {
		return false
	}

	for _, g := range d.Groups {
		if _, ok := g.Component.(C); !ok {
			return false
		}
	}

	return true
}

// Validate checks the structural invariants of the definition.
// The returned error is a *ConfigurationError.
func (d GroupedVariableDefinition) Validate() error {
	if d.ToEntityTypeName == "" {
		return NewConfigurationError(d.ToEntityTypeName, ErrEmptyEntityTypeName)
	}

	if len(d.Groups) == 0 {
		return NewConfigurationError(d.ToEntityTypeName, ErrNoGroups)
	}

	seen := make(map[int]struct{}, len(d.Groups))
	for _, g := range d.Groups {
		if _, ok := seen[g.ToEntityInstanceID]; ok {
			return NewConfigurationError(
				d.ToEntityTypeName,
				fmt.Errorf("%w: %d", ErrDuplicateInstanceID, g.ToEntityInstanceID),
			)
		}
		seen[g.ToEntityInstanceID] = struct{}{}

		if err := validateComponent(g.Component); err != nil {
			return NewConfigurationError(
				d.ToEntityTypeName,
				fmt.Errorf("group %d: %w", g.ToEntityInstanceID, err),
			)
		}
	}

	return nil
}

func validateComponent(component Component) error {
	switch c := component.(type) {
	case nil:
		return ErrNilComponent
	case DateRangeComponent:
		if c.Min.After(c.Max) {
			return ErrInvertedDateRange
		}
	case SurveyIDSetComponent:
		return nil
	case InstanceListComponent:
		if c.FromVariableIdentifier == "" {
			return ErrEmptyFieldIdentifier
		}
		if c.Operator < InstanceOr || c.Operator > InstanceNot {
			return ErrUnknownOperator
		}
	case CompositeComponent:
		if len(c.Children) == 0 {
			return ErrEmptyComposite
		}
		if c.Separator != SeparatorAnd && c.Separator != SeparatorOr {
			return ErrUnknownSeparator
		}
		for _, child := range c.Children {
			if err := validateComponent(child); err != nil {
				return err
			}
		}
	default:
		return ErrUnknownComponentType
	}

	return nil
}

/***** Component constructors *****/

// Group builds a VariableGrouping.
func Group(instanceID int, instanceName string, component Component) VariableGrouping {
	return VariableGrouping{ToEntityInstanceID: instanceID, ToEntityInstanceName: instanceName, Component: component}
}

// DateRange builds a DateRangeComponent covering [minDate, maxDate].
func DateRange(minDate, maxDate time.Time) DateRangeComponent {
	return DateRangeComponent{Min: minDate, Max: maxDate}
}

// SurveyIDs builds a SurveyIDSetComponent.
//
// It sanitizes the input:
//   - sorting the survey ids
//   - removing duplicate survey ids
func SurveyIDs(surveyID int, surveyIDs ...int) SurveyIDSetComponent {
	return SurveyIDSetComponent{SurveyIDs: sanitizeIDs(surveyID, surveyIDs...)}
}

// InstanceList builds an InstanceListComponent.
//
// It sanitizes the input:
//   - sorting the instance ids
//   - removing duplicate instance ids
func InstanceList(
	fieldIdentifier string,
	entityTypeName string,
	operator InstanceOperator,
	instanceID int,
	instanceIDs ...int,
) InstanceListComponent {

	return InstanceListComponent{
		FromVariableIdentifier: fieldIdentifier,
		FromEntityTypeName:     entityTypeName,
		Operator:               operator,
		InstanceIDs:            sanitizeIDs(instanceID, instanceIDs...),
	}
}

// AllOf joins the children with AND.
func AllOf(child Component, children ...Component) CompositeComponent {
	return CompositeComponent{Separator: SeparatorAnd, Children: append([]Component{child}, children...)}
}

// AnyOf joins the children with OR.
func AnyOf(child Component, children ...Component) CompositeComponent {
	return CompositeComponent{Separator: SeparatorOr, Children: append([]Component{child}, children...)}
}

func sanitizeIDs(id int, ids ...int) []int {
	allIDs := append([]int{id}, ids...)
	slices.Sort(allIDs)
	allIDs = slices.Compact(allIDs)
	allIDs = slices.Clip(allIDs)

	return allIDs
}
