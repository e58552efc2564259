package fixtures

import (
	"math/rand/v2"
	"time"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// ResponseGenerator produces reproducible pseudo-random responses.
type ResponseGenerator struct {
	rng        *rand.Rand
	fields     []variables.FieldDescriptor
	entities   EntityRepository
	surveyIDs  []int
	start      time.Time
	spanInDays int
	unknownIDs []int
}

// NewResponseGenerator creates a generator seeded with seed.
// Answers are drawn from the entity repository; single-choice fields get at most one answer.
func NewResponseGenerator(
	seed uint64,
	entities EntityRepository,
	surveyIDs []int,
	fields ...variables.FieldDescriptor,
) *ResponseGenerator {

	return &ResponseGenerator{
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		fields:     fields,
		entities:   entities,
		surveyIDs:  surveyIDs,
		start:      Day(2024, time.January, 1),
		spanInDays: 90,
	}
}

// WithUnknownAnswers makes roughly every fourth answered field also carry one of ids.
// A single-choice field gets the id instead of its regular answer. The ids should be unknown to the entity repository.
func (g *ResponseGenerator) WithUnknownAnswers(ids ...int) *ResponseGenerator {
	g.unknownIDs = ids

	return g
}

// Next returns the next response with the given id.
func (g *ResponseGenerator) Next(id int) Response {
	response := Response{
		ID:             id,
		At:             g.start.Add(time.Duration(g.rng.Int64N(int64(g.spanInDays) * int64(24*time.Hour)))),
		AnswersByField: make(map[string][]int, len(g.fields)),
	}

	if len(g.surveyIDs) > 0 {
		response.Survey = g.surveyIDs[g.rng.IntN(len(g.surveyIDs))]
	}

	for _, field := range g.fields {
		candidates := g.entities[field.EntityTypeIdentifier]
		if len(candidates) == 0 || g.rng.IntN(5) == 0 {
			continue // unanswered
		}

		answerCount := 1
		if field.MultiValued {
			answerCount = 1 + g.rng.IntN(len(candidates))
		}

		picked := g.rng.Perm(len(candidates))[:answerCount]
		answers := make([]int, 0, answerCount)
		for _, i := range picked {
			answers = append(answers, candidates[i])
		}
		if len(g.unknownIDs) > 0 && g.rng.IntN(4) == 0 {
			unknown := g.unknownIDs[g.rng.IntN(len(g.unknownIDs))]
			if field.MultiValued {
				answers = append(answers, unknown)
			} else {
				answers = []int{unknown}
			}
		}
		response.AnswersByField[field.Identifier] = answers
	}

	return response
}

// Responses returns n responses with ids 1..n.
func (g *ResponseGenerator) Responses(n int) []Response {
	responses := make([]Response, 0, n)
	for i := 1; i <= n; i++ {
		responses = append(responses, g.Next(i))
	}

	return responses
}
