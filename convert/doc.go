// Package convert resolves, caches and chains value converters between Go
// types.
//
// A Registry tries its converter families in a fixed order for every
// (source, target) pair it has not seen yet and memoizes the result:
//
//  0. functions registered with WithFunc
//  1. identity and assignability
//  2. pointer boxing and unboxing, bool <-> number
//  3. number <-> number
//  4. text parsing (bools, numbers, enums, temporal values, locales, types,
//     URLs, patterns, zones, UUIDs, big numbers)
//  5. the temporal family
//  6. slices, arrays, sets and maps, element by element
//  7. struct property extraction
//  8. the AnyConverter fallback: render to text, then parse
//
// Every converter maps nil to nil.
package convert
