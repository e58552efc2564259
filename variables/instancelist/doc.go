// Package instancelist precomputes grouped definitions built from instance list leaves into a lookup table.
//
// Compilation enumerates every combination of answers to the referenced fields, including the
// combination where a field was not answered, and records which groups each combination matches.
// Evaluation then costs one table lookup per combination of a response's answers instead of one
// tree evaluation per group.
//
// Only definitions whose result does not depend on seeing all answers of a field at once can be
// tabulated this way. CheckApplicability names the shapes that cannot and rejects tables larger than
// the combination limit; for those the generic expression variable stays in charge.
//
// Every instance the entity repository knows and every instance id a leaf lists gets its own
// ordinal. Answers outside both sets cannot change the outcome of any group and are ignored.
package instancelist
