// Package errclass names the error taxonomy a routing handler maps to
// an HTTP response: every error the core and its collaborators produce
// belongs to exactly one of these five classes, so the HTTP boundary
// never has to pattern-match on error strings.
package errclass

import "errors"

// InvalidInput marks a malformed query: out-of-range node ids, an
// unknown algorithm id, a missing required parameter.
var InvalidInput = errors.New("errclass: invalid input")

// NoRoute marks a structurally sound query that has no feasible path
// under the requested capacity/epsilon constraints.
var NoRoute = errors.New("errclass: no route")

// NumericFailure marks a root or intersection solver encountering
// NaN/Inf; recovered locally by the caller as "no result", but counted
// here so a handler can still report degraded service.
var NumericFailure = errors.New("errclass: numeric failure")

// IOError marks a missing or truncated on-disk graph file, fatal at
// loader construction time.
var IOError = errors.New("errclass: io error")

// InternalInvariant marks a dominance, key-monotonicity, or heap
// invariant violation: always a bug, never a user-facing condition,
// terminates the query.
var InternalInvariant = errors.New("errclass: internal invariant violated")

// Class reports which of the five taxonomy members err belongs to via
// errors.Is, or ("", false) if err does not match any of them.
func Class(err error) (error, bool) {
	for _, class := range []error{InvalidInput, NoRoute, NumericFailure, IOError, InternalInvariant} {
		if errors.Is(err, class) {
			return class, true
		}
	}
	return nil, false
}
