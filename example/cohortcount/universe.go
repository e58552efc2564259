package main

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/grouped"
)

// universe is the synthetic world the responses are drawn from: the answer entities and fields the
// definitions reference, and the surveys they select.
type universe struct {
	entities  entityTable
	fields    fieldTable
	surveyIDs []int
}

func newUniverse(definitions []variables.GroupedVariableDefinition, instancesPerType int, multiValued []string) universe {
	u := universe{
		entities: make(entityTable),
		fields:   make(fieldTable),
	}

	for _, definition := range definitions {
		for _, g := range definition.Groups {
			for _, leaf := range variables.Leaves(g.Component) {
				switch c := leaf.(type) {
				case variables.InstanceListComponent:
					u.addField(c, slices.Contains(multiValued, c.FromVariableIdentifier))
				case variables.SurveyIDSetComponent:
					u.surveyIDs = append(u.surveyIDs, c.SurveyIDs...)
				}
			}
		}
	}

	for entityType, ids := range u.entities {
		for id := 1; id <= instancesPerType; id++ {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		u.entities[entityType] = slices.Compact(ids)
	}

	slices.Sort(u.surveyIDs)
	u.surveyIDs = slices.Compact(u.surveyIDs)

	return u
}

func (u universe) addField(c variables.InstanceListComponent, multiValued bool) {
	entityType := c.FromEntityTypeName
	if entityType == "" {
		entityType = c.FromVariableIdentifier
	}

	if _, known := u.fields[c.FromVariableIdentifier]; !known {
		u.fields[c.FromVariableIdentifier] = variables.FieldDescriptor{
			Identifier:           c.FromVariableIdentifier,
			EntityTypeIdentifier: entityType,
			MultiValued:          multiValued,
		}
	}

	u.entities[entityType] = append(u.entities[entityType], c.InstanceIDs...)
}

func (u universe) dependencies() grouped.Dependencies {
	return grouped.Dependencies{Entities: u.entities, Fields: u.fields}
}

func (u universe) generator(seed uint64) *responseGenerator {
	fields := make([]variables.FieldDescriptor, 0, len(u.fields))
	for _, field := range u.fields {
		fields = append(fields, field)
	}
	slices.SortFunc(fields, func(a, b variables.FieldDescriptor) int {
		return cmp.Compare(a.Identifier, b.Identifier)
	})

	return newResponseGenerator(seed, u.entities, u.surveyIDs, fields)
}
