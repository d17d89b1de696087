// Package match decides whether actual call arguments fit a list of formal
// parameter types, and suggests close names when a member is missing.
//
// Key functions:
//   - Score: verdict of a single formal/actual pair from the ordered rule table
//   - Matches: arity, boxing, nil and variadic-collapse aware list matching
//   - Suggest: closest known names by normalized edit distance
package match
