// Package plan exports the resolved view of annotated types: the external
// names, field eligibility per capability, keyword-only flags, requested
// features and problems found while resolving.
//
// The plan is what the generator acts on. Printing it lets users check how
// layered options combined without reading generated code.
package plan
