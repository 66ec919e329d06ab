package query

import (
	"context"

	"github.com/burphist/burphist/pkg/history"
)

// Options paginates a query. Offset skips that many matching entries and
// Limit caps how many are returned; zero means no cap. Skipped entries are
// never materialized; the scan just keeps moving.
type Options struct {
	Offset int
	Limit  int
}

// Run evaluates a predicate over the store in insertion order and returns a
// lazy iterator. Entries are tested one at a time as the caller pulls them,
// so very large stores cost only what the caller consumes. A host, status,
// or mime equality predicate is served from the matching secondary index;
// the result set is identical to a full scan because indices are maintained
// in id order.
func Run(ctx context.Context, s *history.Store, p Predicate, opts *Options) *Iter {
	if opts == nil {
		opts = &Options{}
	}
	it := &Iter{ctx: ctx, store: s, pred: p, offset: opts.Offset, limit: opts.Limit}

	switch ip := p.(type) {
	case hostIs:
		it.ids = s.ByHost(string(ip))
		it.indexed = true
	case statusIs:
		it.ids = s.ByStatus(int(ip))
		it.indexed = true
	case mimeIs:
		it.ids = s.ByMime(string(ip))
		it.indexed = true
	}
	return it
}

// Iter is a lazy, forward-only cursor over query results. It honors
// cooperative cancellation: a canceled context ends iteration early with
// Err reporting the cause.
type Iter struct {
	ctx   context.Context
	store *history.Store
	pred  Predicate

	indexed bool
	ids     []int64

	pos      int
	skipped  int
	returned int
	offset   int
	limit    int
	err      error
}

// Next returns the next matching entry, or (nil, false) when the results,
// the limit, or the context are exhausted.
func (it *Iter) Next() (*history.Entry, bool) {
	for {
		if err := it.ctx.Err(); err != nil {
			it.err = err
			return nil, false
		}
		if it.limit > 0 && it.returned >= it.limit {
			return nil, false
		}

		e := it.candidate()
		if e == nil {
			return nil, false
		}
		if !it.pred.Match(e) {
			continue
		}
		if it.skipped < it.offset {
			it.skipped++
			continue
		}
		it.returned++
		return e, true
	}
}

// candidate produces the next entry to test, from the index id list or the
// store's insertion-order sequence.
func (it *Iter) candidate() *history.Entry {
	if it.indexed {
		if it.pos >= len(it.ids) {
			return nil
		}
		e := it.store.Get(it.ids[it.pos])
		it.pos++
		return e
	}
	e := it.store.At(it.pos)
	it.pos++
	return e
}

// Err returns the error that ended iteration early, if any.
func (it *Iter) Err() error { return it.err }

// Collect drains the iterator into a slice.
func (it *Iter) Collect() []*history.Entry {
	var out []*history.Entry
	for {
		e, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// Count drains the iterator and returns how many entries matched.
func (it *Iter) Count() int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}
