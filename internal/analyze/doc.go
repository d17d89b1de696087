// Package analyze loads Go packages and extracts the exported method sets
// of their named types.
//
// It uses golang.org/x/tools/go/packages with go/types to describe every
// method a dispatch table can register.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: a named type with its exported methods
//   - MethodInfo: method name, receiver kind and signature
package analyze
