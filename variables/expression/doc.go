// Package expression evaluates grouped definitions of any shape by walking each group's component tree.
//
// It is the general path: every component kind and arbitrarily nested composites are supported.
// Per response it costs one tree evaluation per group, which the instancelist package avoids for
// the shapes it can precompute.
//
// Instance list leaves match the answers of their field as follows:
//   - Or: at least one answer is in the list
//   - And: every listed instance was answered
//   - Not: no answer is in the list, an unanswered field included
package expression
