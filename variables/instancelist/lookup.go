package instancelist

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// noAnswer is the ordinal every key uses for an unanswered field.
const noAnswer = 0

// lookupKey is one (field, entity type) dimension of the table.
// The known instances and the instance ids listed by the definition's leaves are mapped to ordinals 1..n,
// so a combination of ordinals encodes as one mixed-radix number.
type lookupKey struct {
	field      string
	entityType string
	ordinals   map[int]int
	radix      int64
	stride     int64
}

type keyName struct {
	field      string
	entityType string
}

type lookup struct {
	keys    []lookupKey
	entries map[int64][]int
}

func (l *lookup) size() int {
	return len(l.entries)
}

func buildLookup(
	keys []lookupKey,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
) *lookup {

	l := &lookup{keys: keys, entries: make(map[int64][]int)}
	universal := make([][]int, len(keys))
	for k, key := range keys {
		universal[k] = allOrdinals(key.radix)
	}

	for _, g := range definition.Groups {
		leaves := variables.Leaves(g.Component)

		if composite, ok := g.Component.(variables.CompositeComponent); ok && composite.Separator == variables.SeparatorOr {
			for _, leaf := range leaves {
				sets := slices.Clone(universal)
				l.restrict(sets, leaf.(variables.InstanceListComponent), fields)
				l.addCombinations(g.ToEntityInstanceID, sets)
			}

			continue
		}

		sets := slices.Clone(universal)
		for _, leaf := range leaves {
			l.restrict(sets, leaf.(variables.InstanceListComponent), fields)
		}
		l.addCombinations(g.ToEntityInstanceID, sets)
	}

	return l
}

func collectKeys(
	repository variables.EntityRepository,
	fields variables.FieldMetadata,
	definition variables.GroupedVariableDefinition,
) []lookupKey {

	var keys []lookupKey
	listedIDs := make(map[keyName][]int)
	for _, g := range definition.Groups {
		for _, leaf := range variables.Leaves(g.Component) {
			list := leaf.(variables.InstanceListComponent)
			field, entityType := keyOf(list, fields)
			listedIDs[keyName{field, entityType}] = append(listedIDs[keyName{field, entityType}], list.InstanceIDs...)
			if slices.ContainsFunc(keys, func(k lookupKey) bool { return k.field == field && k.entityType == entityType }) {
				continue
			}
			keys = append(keys, lookupKey{field: field, entityType: entityType})
		}
	}

	slices.SortFunc(keys, func(a, b lookupKey) int {
		return cmp.Or(cmp.Compare(a.field, b.field), cmp.Compare(a.entityType, b.entityType))
	})

	stride := int64(1)
	for k := range keys {
		instanceIDs := slices.Concat(
			repository.AllInstanceIDsOf(keys[k].entityType),
			listedIDs[keyName{keys[k].field, keys[k].entityType}],
		)
		slices.Sort(instanceIDs)
		instanceIDs = slices.Compact(instanceIDs)

		keys[k].ordinals = make(map[int]int, len(instanceIDs))
		for i, id := range instanceIDs {
			keys[k].ordinals[id] = i + 1
		}
		keys[k].radix = int64(len(instanceIDs) + 1)
		keys[k].stride = stride
		stride *= keys[k].radix
	}

	return keys
}

// keyOf falls back to the field's own entity type when the leaf does not name one.
func keyOf(list variables.InstanceListComponent, fields variables.FieldMetadata) (string, string) {
	if list.FromEntityTypeName != "" {
		return list.FromVariableIdentifier, list.FromEntityTypeName
	}

	field, _ := fields.Field(list.FromVariableIdentifier)

	return list.FromVariableIdentifier, field.EntityTypeIdentifier
}

// projectedSize computes product(radix) * max(1, number of OR groups), stopping as soon as limit is exceeded.
func projectedSize(keys []lookupKey, definition variables.GroupedVariableDefinition, limit int) (int64, bool) {
	orGroups := int64(0)
	for _, g := range definition.Groups {
		if composite, ok := g.Component.(variables.CompositeComponent); ok && composite.Separator == variables.SeparatorOr {
			orGroups++
		}
	}

	projected := max(orGroups, 1)
	for _, key := range keys {
		projected *= key.radix
		if projected > int64(limit) {
			return projected, false
		}
	}

	return projected, true
}

func (l *lookup) indexOf(list variables.InstanceListComponent, fields variables.FieldMetadata) int {
	field, entityType := keyOf(list, fields)

	return slices.IndexFunc(l.keys, func(k lookupKey) bool { return k.field == field && k.entityType == entityType })
}

// restrict narrows the ordinal set of the leaf's key to the answers the leaf accepts.
func (l *lookup) restrict(sets [][]int, list variables.InstanceListComponent, fields variables.FieldMetadata) {
	k := l.indexOf(list, fields)
	key := l.keys[k]

	listed := make([]bool, key.radix)
	for _, id := range list.InstanceIDs {
		if ordinal, ok := key.ordinals[id]; ok {
			listed[ordinal] = true
		}
	}

	accepted := make([]int, 0, key.radix)
	for ordinal := range int(key.radix) {
		if listed[ordinal] != (list.Operator == variables.InstanceNot) {
			accepted = append(accepted, ordinal)
		}
	}

	sets[k] = accepted
}

// addCombinations records groupID for every combination of the per-key ordinal sets.
func (l *lookup) addCombinations(groupID int, sets [][]int) {
	for _, set := range sets {
		if len(set) == 0 {
			return
		}
	}

	positions := make([]int, len(sets))
	for {
		code := l.encode(sets, positions)

		groups := l.entries[code]
		if len(groups) == 0 || groups[len(groups)-1] != groupID {
			l.entries[code] = append(groups, groupID)
		}

		if !advance(positions, sets) {
			return
		}
	}
}

func (l *lookup) encode(sets [][]int, positions []int) int64 {
	code := int64(0)
	for k, set := range sets {
		code += int64(set[positions[k]]) * l.keys[k].stride
	}

	return code
}

// advance moves positions to the next combination like an odometer and reports false after the last one.
func advance(positions []int, sets [][]int) bool {
	for k := len(positions) - 1; k >= 0; k-- {
		positions[k]++
		if positions[k] < len(sets[k]) {
			return true
		}
		positions[k] = 0
	}

	return false
}

func allOrdinals(radix int64) []int {
	ordinals := make([]int, radix)
	for i := range ordinals {
		ordinals[i] = i
	}

	return ordinals
}
