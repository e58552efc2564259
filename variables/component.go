package variables

import "time"

// InstanceOperator defines how an InstanceListComponent matches the answers of its field.
type InstanceOperator int

const (
	// InstanceOr matches when any listed instance was answered.
	InstanceOr InstanceOperator = iota

	// InstanceAnd matches when every listed instance was answered.
	InstanceAnd

	// InstanceNot matches when none of the listed instances was answered, including no answer at all.
	InstanceNot
)

func (o InstanceOperator) String() string {
	switch o {
	case InstanceOr:
		return "or"
	case InstanceAnd:
		return "and"
	case InstanceNot:
		return "not"
	default:
		return "unknown"
	}
}

// CompositeSeparator joins the children of a CompositeComponent.
type CompositeSeparator int

const (
	SeparatorAnd CompositeSeparator = iota
	SeparatorOr
)

func (s CompositeSeparator) String() string {
	switch s {
	case SeparatorAnd:
		return "and"
	case SeparatorOr:
		return "or"
	default:
		return "unknown"
	}
}

// Component is the condition deciding membership of a group.
// The set of implementations is closed: DateRangeComponent, SurveyIDSetComponent,
// InstanceListComponent and CompositeComponent.
type Component interface {
	isComponent()
}

// DateRangeComponent matches responses with a timestamp inside [Min, Max].
type DateRangeComponent struct {
	Min time.Time
	Max time.Time
}

// Contains reports whether t lies inside the inclusive range.
func (c DateRangeComponent) Contains(t time.Time) bool {
	return !t.Before(c.Min) && !t.After(c.Max)
}

// SurveyIDSetComponent matches responses submitted to one of the surveys.
type SurveyIDSetComponent struct {
	SurveyIDs []int
}

// InstanceListComponent matches responses by the answers given to one field.
type InstanceListComponent struct {
	FromVariableIdentifier string
	FromEntityTypeName     string
	Operator               InstanceOperator
	InstanceIDs            []int
}

// CompositeComponent combines child components with AND or OR.
type CompositeComponent struct {
	Separator CompositeSeparator
	Children  []Component
}

func (DateRangeComponent) isComponent()    {}
func (SurveyIDSetComponent) isComponent()  {}
func (InstanceListComponent) isComponent() {}
func (CompositeComponent) isComponent()    {}

// Walk visits component and all its descendants depth first, parents before children.
func Walk(component Component, visit func(Component)) {
	if component == nil {
		return
	}

	visit(component)

	if composite, ok := component.(CompositeComponent); ok {
		for _, child := range composite.Children {
			Walk(child, visit)
		}
	}
}

// Leaves returns every non-composite descendant of component, in order.
func Leaves(component Component) []Component {
	var leaves []Component

	Walk(component, func(c Component) {
		if _, ok := c.(CompositeComponent); !ok {
			leaves = append(leaves, c)
		}
	})

	return leaves
}

// CompositeCount returns how many composite components the tree contains, component itself included.
func CompositeCount(component Component) int {
	count := 0

	Walk(component, func(c Component) {
		if _, ok := c.(CompositeComponent); ok {
			count++
		}
	})

	return count
}
