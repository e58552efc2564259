package main

import (
	"math/rand/v2"
	"time"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

const (
	responseSpan      = 90 * 24 * time.Hour
	unansweredPercent = 20
)

// syntheticResponse is a generated variables.ResponseEntity.
type syntheticResponse struct {
	id      int
	at      time.Time
	survey  int
	answers map[string][]int
}

func (r syntheticResponse) ResponseID() int      { return r.id }
func (r syntheticResponse) Timestamp() time.Time { return r.at }
func (r syntheticResponse) SurveyID() int        { return r.survey }

func (r syntheticResponse) Answers(fieldIdentifier string) []int {
	return r.answers[fieldIdentifier]
}

// entityTable maps entity type names to their instance ids.
type entityTable map[string][]int

func (t entityTable) AllInstanceIDsOf(entityTypeName string) []int {
	return t[entityTypeName]
}

// fieldTable maps field identifiers to their descriptors.
type fieldTable map[string]variables.FieldDescriptor

func (t fieldTable) Field(identifier string) (variables.FieldDescriptor, bool) {
	d, ok := t[identifier]
	return d, ok
}

// responseGenerator draws reproducible responses from a universe.
type responseGenerator struct {
	rng       *rand.Rand
	fields    []variables.FieldDescriptor
	entities  entityTable
	surveyIDs []int
	start     time.Time
}

func newResponseGenerator(seed uint64, entities entityTable, surveyIDs []int, fields []variables.FieldDescriptor) *responseGenerator {
	return &responseGenerator{
		rng:       rand.New(rand.NewPCG(seed, ^seed)),
		fields:    fields,
		entities:  entities,
		surveyIDs: surveyIDs,
		start:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// responses returns n responses with ids 1..n.
func (g *responseGenerator) responses(n int) []variables.ResponseEntity {
	generated := make([]variables.ResponseEntity, 0, n)
	for id := 1; id <= n; id++ {
		generated = append(generated, g.next(id))
	}

	return generated
}

func (g *responseGenerator) next(id int) syntheticResponse {
	r := syntheticResponse{
		id:      id,
		at:      g.start.Add(time.Duration(g.rng.Int64N(int64(responseSpan)))),
		answers: make(map[string][]int, len(g.fields)),
	}

	if len(g.surveyIDs) > 0 {
		r.survey = g.surveyIDs[g.rng.IntN(len(g.surveyIDs))]
	}

	for _, field := range g.fields {
		candidates := g.entities[field.EntityTypeIdentifier]
		if len(candidates) == 0 || g.rng.IntN(100) < unansweredPercent {
			continue
		}

		if !field.MultiValued {
			r.answers[field.Identifier] = []int{candidates[g.rng.IntN(len(candidates))]}
			continue
		}

		var picked []int
		for _, candidate := range candidates {
			if g.rng.IntN(2) == 0 {
				picked = append(picked, candidate)
			}
		}
		if len(picked) > 0 {
			r.answers[field.Identifier] = picked
		}
	}

	return r
}
