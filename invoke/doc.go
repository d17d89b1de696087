// Package invoke finds and calls functions and methods by name with
// run-time arguments.
//
// Members live in a Table: free functions registered by name, or the method
// set of a type (built by reflection with TableOf, or generated by
// dispatch-gen). A Resolver selects the first member, in registration order,
// whose formals accept the arguments; identical types, assignability, one
// level of pointer boxing, nil for nil-able formals and variadic collapse
// all count as a match. With coercion enabled and no strict match, the first
// member whose formals the arguments convert to (through a convert.Registry)
// is called.
package invoke
