package query

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"

	"github.com/burphist/burphist/pkg/history"
)

// ResponseJSONPath matches entries whose JSON response body has at least one
// value at path equal to want. A nil want matches on mere existence of the
// path. Entries without a response, or whose body is not valid JSON, never
// match; that is not an error, it just doesn't match.
func ResponseJSONPath(path string, want interface{}) (Predicate, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("query: invalid JSONPath %q: %w", path, err)
	}
	return jsonPathPredicate{expr: x, want: want}, nil
}

type jsonPathPredicate struct {
	expr jp.Expr
	want interface{}
}

func (p jsonPathPredicate) Match(e *history.Entry) bool {
	if e.Response == nil || len(e.Response.Body) == 0 {
		return false
	}
	var data interface{}
	if err := json.Unmarshal(e.Response.Body, &data); err != nil {
		return false
	}
	results := p.expr.Get(data)
	if p.want == nil {
		return len(results) > 0
	}
	for _, got := range results {
		if jsonValueEqual(got, p.want) {
			return true
		}
	}
	return false
}

// jsonValueEqual compares a decoded JSON value against an expected one,
// bridging Go's numeric types to JSON's float64.
func jsonValueEqual(got, want interface{}) bool {
	if gn, ok := toFloat(got); ok {
		if wn, ok := toFloat(want); ok {
			return gn == wn
		}
		return false
	}
	return reflect.DeepEqual(got, want)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
