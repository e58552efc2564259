package grouped

import (
	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/expression"
	"github.com/AntonStoeckl/survey-variables-go/variables/instancelist"
	"github.com/AntonStoeckl/survey-variables-go/variables/surveygroup"
	"github.com/AntonStoeckl/survey-variables-go/variables/wave"
)

// Path names the compiled form chosen for a definition.
type Path int

const (
	PathUnknown Path = iota
	PathWave
	PathSurveyGroup
	PathInstanceList
	PathExpression
)

func (p Path) String() string {
	switch p {
	case PathWave:
		return "wave"
	case PathSurveyGroup:
		return "survey_group"
	case PathInstanceList:
		return "instance_list"
	case PathExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// PathOf reports which compiled form does the work behind variable, looking through type adapters.
func PathOf(variable any) Path {
	switch variables.Underlying(variable).(type) {
	case *wave.Variable, *wave.ProfileOnlyVariable:
		return PathWave
	case *surveygroup.Variable, *surveygroup.ProfileOnlyVariable:
		return PathSurveyGroup
	case *instancelist.Variable:
		return PathInstanceList
	case *expression.Variable:
		return PathExpression
	default:
		return PathUnknown
	}
}
