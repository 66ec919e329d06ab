package query

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/burphist/burphist/pkg/history"
)

// Compile turns an expression string into a Predicate. Expressions see one
// entry at a time through these variables:
//
//	id, host, host_ip, port, protocol, method, path, url, status, mime,
//	extension, comment, highlight, response_length,
//	clean, secure, has_request, has_response
//
// Example: `status == 200 && host contains "httpbin" && method == "POST"`.
//
// Programs are compiled once and cached; the returned Predicate is safe for
// concurrent use. A runtime evaluation error on some entry simply fails to
// match that entry; predicates cannot abort a query.
func Compile(src string) (Predicate, error) {
	program, err := compileCached(src)
	if err != nil {
		return nil, fmt.Errorf("query: compile %q: %w", src, err)
	}
	return exprPredicate{program: program}, nil
}

var (
	programMu    sync.Mutex
	programCache = make(map[string]*vm.Program)
)

func compileCached(src string) (*vm.Program, error) {
	programMu.Lock()
	defer programMu.Unlock()

	if p, ok := programCache[src]; ok {
		return p, nil
	}
	p, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	programCache[src] = p
	return p, nil
}

type exprPredicate struct {
	program *vm.Program
}

func (p exprPredicate) Match(e *history.Entry) bool {
	out, err := vm.Run(p.program, exprEnv(e))
	if err != nil {
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

func exprEnv(e *history.Entry) map[string]interface{} {
	return map[string]interface{}{
		"id":              e.ID,
		"host":            e.Host,
		"host_ip":         e.HostIP,
		"port":            e.Port,
		"protocol":        e.Protocol,
		"method":          e.Method,
		"path":            e.Path,
		"url":             e.URL,
		"status":          e.Status,
		"mime":            e.MimeType,
		"extension":       e.Extension,
		"comment":         e.Comment,
		"highlight":       e.Highlight,
		"response_length": e.ResponseLength,
		"clean":           e.Clean(),
		"secure":          e.Secure(),
		"has_request":     e.Request != nil,
		"has_response":    e.Response != nil,
	}
}
