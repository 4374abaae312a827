// Package diagnostic provides structured generation-time errors and
// warnings for the derive generator.
//
// Every diagnostic carries a source position, a Kind from a closed taxonomy
// (duplicate option, malformed literal, unsupported shape, invalid
// combination, missing method) and a message. A violation is reported once
// even when several features depend on the option that caused it.
package diagnostic
