package variables

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	componentTypeDateRange    = "dateRange"
	componentTypeSurveyIDSet  = "surveyIdSet"
	componentTypeInstanceList = "instanceList"
	componentTypeComposite    = "composite"
	dateOnlyLayout            = "2006-01-02"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type definitionJSON struct {
	ToEntityTypeName              string         `json:"toEntityTypeName"`
	ToEntityTypeDisplayNamePlural string         `json:"toEntityTypeDisplayNamePlural,omitempty"`
	Groups                        []groupingJSON `json:"groups"`
}

type groupingJSON struct {
	ToEntityInstanceID   int            `json:"toEntityInstanceId"`
	ToEntityInstanceName string         `json:"toEntityInstanceName,omitempty"`
	Component            *componentJSON `json:"component"`
}

// componentJSON is the tagged wire form of Component, discriminated by Type.
type componentJSON struct {
	Type                   string          `json:"type"`
	Min                    *jsonTime       `json:"min,omitempty"`
	Max                    *jsonTime       `json:"max,omitempty"`
	SurveyIDs              []int           `json:"surveyIds,omitempty"`
	FromVariableIdentifier string          `json:"fromVariableIdentifier,omitempty"`
	FromEntityTypeName     string          `json:"fromEntityTypeName,omitempty"`
	Operator               string          `json:"operator,omitempty"`
	InstanceIDs            []int           `json:"instanceIds,omitempty"`
	Separator              string          `json:"separator,omitempty"`
	Children               []componentJSON `json:"children,omitempty"`
}

// jsonTime accepts RFC 3339 timestamps and plain dates, which are read as midnight UTC.
type jsonTime time.Time

func (t jsonTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

func (t *jsonTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	layout := time.RFC3339Nano
	if len(raw) == len(dateOnlyLayout) {
		layout = dateOnlyLayout
	}

	parsed, err := time.Parse(layout, raw)
	if err != nil {
		return err
	}

	*t = jsonTime(parsed)

	return nil
}

// UnmarshalGroupedVariableDefinitions decodes a JSON array of definitions.
// The decoded definitions are not validated; call Validate before compiling them.
func UnmarshalGroupedVariableDefinitions(data []byte) ([]GroupedVariableDefinition, error) {
	var raw []definitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding definitions: %w", err)
	}

	definitions := make([]GroupedVariableDefinition, 0, len(raw))
	for _, r := range raw {
		definition, err := r.toDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}

	return definitions, nil
}

// UnmarshalGroupedVariableDefinition decodes a single JSON definition.
func UnmarshalGroupedVariableDefinition(data []byte) (GroupedVariableDefinition, error) {
	var raw definitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return GroupedVariableDefinition{}, fmt.Errorf("decoding definition: %w", err)
	}

	return raw.toDefinition()
}

// MarshalGroupedVariableDefinition encodes a definition into its JSON form.
func MarshalGroupedVariableDefinition(definition GroupedVariableDefinition) ([]byte, error) {
	raw := definitionJSON{
		ToEntityTypeName:              definition.ToEntityTypeName,
		ToEntityTypeDisplayNamePlural: definition.ToEntityTypeDisplayNamePlural,
		Groups:                        make([]groupingJSON, 0, len(definition.Groups)),
	}

	for _, g := range definition.Groups {
		component, err := componentToJSON(g.Component)
		if err != nil {
			return nil, NewConfigurationError(definition.ToEntityTypeName, err)
		}

		raw.Groups = append(raw.Groups, groupingJSON{
			ToEntityInstanceID:   g.ToEntityInstanceID,
			ToEntityInstanceName: g.ToEntityInstanceName,
			Component:            &component,
		})
	}

	return json.Marshal(raw)
}

func (d definitionJSON) toDefinition() (GroupedVariableDefinition, error) {
	definition := GroupedVariableDefinition{
		ToEntityTypeName:              d.ToEntityTypeName,
		ToEntityTypeDisplayNamePlural: d.ToEntityTypeDisplayNamePlural,
		Groups:                        make([]VariableGrouping, 0, len(d.Groups)),
	}

	for _, g := range d.Groups {
		if g.Component == nil {
			return GroupedVariableDefinition{}, NewConfigurationError(d.ToEntityTypeName, ErrNilComponent)
		}

		component, err := g.Component.toComponent()
		if err != nil {
			return GroupedVariableDefinition{}, NewConfigurationError(
				d.ToEntityTypeName,
				fmt.Errorf("group %d: %w", g.ToEntityInstanceID, err),
			)
		}

		definition.Groups = append(definition.Groups, Group(g.ToEntityInstanceID, g.ToEntityInstanceName, component))
	}

	return definition, nil
}

func (c componentJSON) toComponent() (Component, error) {
	switch c.Type {
	case componentTypeDateRange:
		if c.Min == nil || c.Max == nil {
			return nil, ErrIncompleteDateRange
		}
		return DateRange(time.Time(*c.Min), time.Time(*c.Max)), nil

	case componentTypeSurveyIDSet:
		return SurveyIDSetComponent{SurveyIDs: c.SurveyIDs}, nil

	case componentTypeInstanceList:
		operator, err := parseInstanceOperator(c.Operator)
		if err != nil {
			return nil, err
		}
		return InstanceListComponent{
			FromVariableIdentifier: c.FromVariableIdentifier,
			FromEntityTypeName:     c.FromEntityTypeName,
			Operator:               operator,
			InstanceIDs:            c.InstanceIDs,
		}, nil

	case componentTypeComposite:
		separator, err := parseCompositeSeparator(c.Separator)
		if err != nil {
			return nil, err
		}
		children := make([]Component, 0, len(c.Children))
		for _, child := range c.Children {
			component, err := child.toComponent()
			if err != nil {
				return nil, err
			}
			children = append(children, component)
		}
		return CompositeComponent{Separator: separator, Children: children}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, c.Type)
	}
}

func componentToJSON(component Component) (componentJSON, error) {
	switch c := component.(type) {
	case DateRangeComponent:
		minDate, maxDate := jsonTime(c.Min), jsonTime(c.Max)
		return componentJSON{Type: componentTypeDateRange, Min: &minDate, Max: &maxDate}, nil

	case SurveyIDSetComponent:
		return componentJSON{Type: componentTypeSurveyIDSet, SurveyIDs: c.SurveyIDs}, nil

	case InstanceListComponent:
		return componentJSON{
			Type:                   componentTypeInstanceList,
			FromVariableIdentifier: c.FromVariableIdentifier,
			FromEntityTypeName:     c.FromEntityTypeName,
			Operator:               c.Operator.String(),
			InstanceIDs:            c.InstanceIDs,
		}, nil

	case CompositeComponent:
		children := make([]componentJSON, 0, len(c.Children))
		for _, child := range c.Children {
			encoded, err := componentToJSON(child)
			if err != nil {
				return componentJSON{}, err
			}
			children = append(children, encoded)
		}
		return componentJSON{Type: componentTypeComposite, Separator: c.Separator.String(), Children: children}, nil

	default:
		return componentJSON{}, ErrUnknownComponentType
	}
}

func parseInstanceOperator(raw string) (InstanceOperator, error) {
	switch strings.ToLower(raw) {
	case "", "or":
		return InstanceOr, nil
	case "and":
		return InstanceAnd, nil
	case "not":
		return InstanceNot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, raw)
	}
}

func parseCompositeSeparator(raw string) (CompositeSeparator, error) {
	switch strings.ToLower(raw) {
	case "", "and":
		return SeparatorAnd, nil
	case "or":
		return SeparatorOr, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSeparator, raw)
	}
}
