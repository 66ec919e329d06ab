package query

import (
	"strings"

	"github.com/burphist/burphist/pkg/history"
)

// Predicate is a pure boolean test over an entry. Implementations must not
// mutate the entry or keep state across calls.
type Predicate interface {
	Match(e *history.Entry) bool
}

// Func adapts a plain function to a Predicate.
func Func(fn func(e *history.Entry) bool) Predicate {
	return funcPredicate(fn)
}

type funcPredicate func(e *history.Entry) bool

func (f funcPredicate) Match(e *history.Entry) bool { return f(e) }

// And matches when every predicate matches. And() with no arguments matches
// everything.
func And(ps ...Predicate) Predicate { return andPredicate(ps) }

type andPredicate []Predicate

func (a andPredicate) Match(e *history.Entry) bool {
	for _, p := range a {
		if !p.Match(e) {
			return false
		}
	}
	return true
}

// Or matches when at least one predicate matches.
func Or(ps ...Predicate) Predicate { return orPredicate(ps) }

type orPredicate []Predicate

func (o orPredicate) Match(e *history.Entry) bool {
	for _, p := range o {
		if p.Match(e) {
			return true
		}
	}
	return false
}

// Not inverts a predicate.
func Not(p Predicate) Predicate { return notPredicate{p} }

type notPredicate struct{ p Predicate }

func (n notPredicate) Match(e *history.Entry) bool { return !n.p.Match(e) }

// Host matches entries captured for exactly the given host. Run recognizes
// this predicate and serves it from the host index.
func Host(host string) Predicate { return hostIs(host) }

type hostIs string

func (h hostIs) Match(e *history.Entry) bool { return e.Host == string(h) }

// Status matches entries whose response status equals code. Run recognizes
// this predicate and serves it from the status index.
func Status(code int) Predicate { return statusIs(code) }

type statusIs int

func (s statusIs) Match(e *history.Entry) bool { return e.Status == int(s) }

// Mime matches entries with the given capture-tool mime type. Run recognizes
// this predicate and serves it from the mime index.
func Mime(mime string) Predicate { return mimeIs(mime) }

type mimeIs string

func (m mimeIs) Match(e *history.Entry) bool { return e.MimeType == string(m) }

// Method matches the request method, case-insensitively.
func Method(method string) Predicate {
	return Func(func(e *history.Entry) bool {
		return strings.EqualFold(e.Method, method)
	})
}

// PathPrefix matches entries whose path starts with prefix.
func PathPrefix(prefix string) Predicate {
	return Func(func(e *history.Entry) bool {
		return strings.HasPrefix(e.Path, prefix)
	})
}

// Highlighted matches entries the analyst tagged in the capture tool.
func Highlighted() Predicate {
	return Func(func(e *history.Entry) bool { return e.Highlight != "" })
}

// HasDiagnostics matches entries that did not load cleanly.
func HasDiagnostics() Predicate {
	return Func(func(e *history.Entry) bool { return len(e.Diagnostics) > 0 })
}

// Clean matches entries with both messages present and zero diagnostics.
func Clean() Predicate {
	return Func(func(e *history.Entry) bool { return e.Clean() })
}
