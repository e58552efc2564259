// Package grouped chooses the compiled form of a grouped variable definition.
//
// Definitions made only of date ranges become wave variables and definitions made only of survey id
// sets become survey group variables. Everything else is compiled by the expression package, and
// the instancelist package replaces it when the definition can be tabulated.
//
// Example:
//
//	variable, err := grouped.New(
//		definition,
//		grouped.Dependencies{Entities: repository, Fields: fieldMetadata},
//		variables.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		// a *variables.ConfigurationError: skip or flag this one definition
//	}
//
//	membersOf := variable.MembersAt(func(variables.Numeric) bool { return true }) // one per worker
//	for _, response := range responses {
//		for _, instanceID := range membersOf(response) {
//			counts[instanceID]++
//		}
//	}
package grouped
