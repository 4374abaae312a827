// Package analyze provides package loading and annotated-record extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// model of every type carrying a "//derive:" directive: its fields in
// declaration order, their raw annotations, and the method set the
// generator checks for collisions and operator delegates.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: shape, directives, fields and methods of an annotated type
//   - FieldInfo: field name, type, tag, directives and position
//   - MethodInfo: receiver and signature summary of a declared method
package analyze
