// Package object is the host object model targeted by derive-generator output.
//
// Generated methods never reach into reflection-heavy machinery directly; they
// call the small set of protocol helpers defined here:
//   - Args, Signature: dynamic call arguments and constructor binding
//   - Repr, Str: the representation protocol
//   - Ordering, Compare, Equals: three-way comparison with an explicit
//     incomparable outcome
//   - Hasher: the ordered hash combinator
//   - Field, Host: reflection descriptors and the field-registration hook
package object
