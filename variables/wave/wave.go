package wave

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/AntonStoeckl/survey-variables-go/variables"
	"github.com/AntonStoeckl/survey-variables-go/variables/scratch"
)

const (
	logMsgOverlappingWaves = "wave date ranges overlap, members of overlapping waves may be missed"
	logMsgWavesCompiled    = "wave variable compiled"
)

type waveRange struct {
	instanceID int
	min        time.Time
	max        time.Time
}

// Variable maps a response timestamp to the wave instances containing it.
type Variable struct {
	entityType   variables.EntityType
	rangesByID   map[int]variables.DateRangeComponent
	sortedRanges []waveRange
	sortedMaxes  []time.Time
	overlapping  bool
}

// New compiles a definition whose groups are all DateRangeComponents.
func New(definition variables.GroupedVariableDefinition, options ...variables.Option) (*Variable, error) {
	settings, err := variables.ApplyOptions(options...)
	if err != nil {
		return nil, err
	}

	ranges, err := collectRanges(definition)
	if err != nil {
		settings.LogError(variables.ErrConfiguration.Error(), err, variables.LogAttrEntityType, definition.ToEntityTypeName)
		return nil, err
	}

	v := &Variable{
		entityType:   definition.TargetEntityType(),
		rangesByID:   make(map[int]variables.DateRangeComponent, len(ranges)),
		sortedRanges: ranges,
		sortedMaxes:  make([]time.Time, 0, len(ranges)),
	}

	for _, r := range ranges {
		v.rangesByID[r.instanceID] = variables.DateRange(r.min, r.max)
		v.sortedMaxes = append(v.sortedMaxes, r.max)
	}

	v.overlapping = hasOverlap(ranges)
	if v.overlapping {
		settings.LogWarn(logMsgOverlappingWaves, variables.LogAttrEntityType, definition.ToEntityTypeName)
	}

	settings.LogDebug(
		logMsgWavesCompiled,
		variables.LogAttrEntityType, definition.ToEntityTypeName,
		variables.LogAttrGroupCount, len(ranges),
	)

	return v, nil
}

// ValueAt returns the wave instance id when the response timestamp lies inside that wave.
func (v *Variable) ValueAt(entityValues variables.EntityValues) func(variables.ResponseEntity) variables.Integer {
	variables.MustMatchEntityValues(v.IntroducedEntityTypes(), entityValues)

	instanceID := entityValues[0].InstanceID
	dateRange, ok := v.rangesByID[instanceID]
	if !ok {
		return func(variables.ResponseEntity) variables.Integer {
			return variables.NoInteger()
		}
	}

	return func(response variables.ResponseEntity) variables.Integer {
		if dateRange.Contains(response.Timestamp()) {
			return variables.IntegerOf(instanceID)
		}

		return variables.NoInteger()
	}
}

// MembersAt returns the waves containing the response timestamp whose instance id satisfies predicate.
func (v *Variable) MembersAt(predicate func(variables.Integer) bool) func(variables.ResponseEntity) []int {
	variables.MustHaveSingleEntityType(v.IntroducedEntityTypes())

	buffer := scratch.NewBuffer[int](1)

	return func(response variables.ResponseEntity) []int {
		buffer.Reset()
		timestamp := response.Timestamp()

		for i := v.firstCandidate(timestamp); i < len(v.sortedRanges); i++ {
			r := v.sortedRanges[i]
			if r.min.After(timestamp) {
				break
			}

			if predicate(variables.IntegerOf(r.instanceID)) {
				buffer.Append(r.instanceID)
			}
		}

		return buffer.Items()
	}
}

// FieldDependencies is empty: waves only read the response timestamp.
func (v *Variable) FieldDependencies() []variables.FieldDescriptor {
	return nil
}

// IntroducedEntityTypes returns the wave entity type.
func (v *Variable) IntroducedEntityTypes() []variables.EntityType {
	return []variables.EntityType{v.entityType}
}

// HasOverlappingRanges reports whether any two waves share a point in time.
func (v *Variable) HasOverlappingRanges() bool {
	return v.overlapping
}

// firstCandidate returns the index of the first wave ending at or after timestamp.
func (v *Variable) firstCandidate(timestamp time.Time) int {
	return sort.Search(len(v.sortedMaxes), func(i int) bool {
		return !v.sortedMaxes[i].Before(timestamp)
	})
}

func collectRanges(definition variables.GroupedVariableDefinition) ([]waveRange, error) {
	if err := definition.Validate(); err != nil {
		return nil, err
	}

	ranges := make([]waveRange, 0, len(definition.Groups))
	for _, g := range definition.Groups {
		dateRange, ok := g.Component.(variables.DateRangeComponent)
		if !ok {
			return nil, variables.NewConfigurationError(
				definition.ToEntityTypeName,
				fmt.Errorf("%w: group %d is %T, waves need date ranges", variables.ErrUnexpectedComponent, g.ToEntityInstanceID, g.Component),
			)
		}

		ranges = append(ranges, waveRange{instanceID: g.ToEntityInstanceID, min: dateRange.Min, max: dateRange.Max})
	}

	slices.SortFunc(ranges, func(a, b waveRange) int {
		if c := a.max.Compare(b.max); c != 0 {
			return c
		}
		if c := a.min.Compare(b.min); c != 0 {
			return c
		}

		return cmp.Compare(a.instanceID, b.instanceID)
	})

	return ranges, nil
}

// hasOverlap expects ranges sorted by max: a range overlaps an earlier one iff it starts before its predecessor ends.
func hasOverlap(sortedRanges []waveRange) bool {
	for i := 1; i < len(sortedRanges); i++ {
		if !sortedRanges[i].min.After(sortedRanges[i-1].max) {
			return true
		}
	}

	return false
}
