// Package lsystem expands L-system seeds into turtle instruction strings.
//
// The alphabet is closed: 0 and 1 draw a branch segment, [ and ] open and close a
// side branch that turns by the branch angle, and + and - save and restore the
// turtle without turning. Every rewrite pass replaces each symbol in parallel
// through a fixed Rules table; symbols without a rule are copied through.
//
// With the default rules
//
//	1 → 11
//	0 → 1+0-[0]0
//
// the seed "0" grows to 1, 8, 30, 98, 306, ... symbols. Expansion is a pure
// function of (rules, seed, iterations) and the result is always well-bracketed
// when the rule replacements are.
package lsystem
