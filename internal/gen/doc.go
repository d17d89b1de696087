// Package gen generates static dispatch tables for invoke.Resolver.
//
// Generation uses text/template + go/format. For a type T it emits:
//   - TTable: every exported method as a (*T) method expression
//   - TValueTable: value-receiver methods as T method expressions
//   - WithTTables: an invoke.Option installing both
package gen
