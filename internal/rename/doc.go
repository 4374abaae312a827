// Package rename implements the identifier renaming rules applied to
// external field names.
//
// A Rule is selected by its identifier (e.g. "camelCase",
// "SCREAMING_SNAKE_CASE"); unknown identifiers select Identity. Apply is
// total and pure: it never fails and never validates the result.
package rename
