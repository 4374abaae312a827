// Package match suggests the closest known name for a misspelled one.
//
// Suggestions are based on the edit distance between names, compared case
// insensitively, and are only offered when the names are close enough that
// a typo is the likely cause.
package match
