// Package query provides composable predicates and lazy, paginated
// iteration over a loaded history store.
//
// A Predicate is a pure boolean test over an entry. Predicates compose with
// And, Or, and Not; composed predicates share no state and are safe for
// concurrent use against a frozen store. Run evaluates a predicate by
// streaming the store in insertion order; when the predicate is exactly a
// host, status, or mime equality it walks the matching secondary index
// instead, which yields an identical result set, just faster.
//
// For analyst-facing filtering there are two richer predicate sources:
// Compile turns an expression string such as
//
//	status == 200 && host contains "httpbin"
//
// into a Predicate, and ResponseJSONPath matches entries whose JSON response
// body satisfies a JSONPath condition.
package query
