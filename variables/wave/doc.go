// Package wave classifies responses into date-range defined entity instances ("waves").
//
// Ranges are sorted ascending by (max, min) at construction, so MembersAt finds the candidate
// waves of a timestamp with one binary search followed by a short forward scan.
// The scan stops at the first wave starting after the timestamp, which is only exhaustive for
// non-overlapping ranges. Overlaps are detected and logged, but they do not change the behavior.
package wave
