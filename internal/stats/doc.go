// Package stats tallies ingredient text across a tree of recipe files and
// renders the value counts table.
package stats
