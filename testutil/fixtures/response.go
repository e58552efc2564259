package fixtures

import (
	"time"
)

// Response is an in-memory variables.ResponseEntity.
type Response struct {
	ID             int
	At             time.Time
	Survey         int
	AnswersByField map[string][]int
}

func (r Response) ResponseID() int      { return r.ID }
func (r Response) Timestamp() time.Time { return r.At }
func (r Response) SurveyID() int        { return r.Survey }

func (r Response) Answers(fieldIdentifier string) []int {
	return r.AnswersByField[fieldIdentifier]
}

// ResponseAt builds a Response submitted at the given time.
func ResponseAt(at time.Time) Response {
	return Response{At: at, AnswersByField: map[string][]int{}}
}

// ResponseToSurvey builds a Response submitted to the given survey.
func ResponseToSurvey(surveyID int) Response {
	return Response{Survey: surveyID, AnswersByField: map[string][]int{}}
}

// ResponseWithAnswers builds a Response from field/answer pairs.
func ResponseWithAnswers(answers map[string][]int) Response {
	return Response{AnswersByField: answers}
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
