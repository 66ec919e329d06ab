package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/burphist/burphist/pkg/burpxml"
	"github.com/burphist/burphist/pkg/logging"
)

// ErrFailFast wraps the first entry-level error when Options.FailFast is
// set, converting a recoverable diagnostic into a fatal load error.
var ErrFailFast = errors.New("history: entry error with fail-fast set")

// Load streams a history export into a frozen Store.
//
// A fatal container error aborts with no store. Everything else degrades:
// entry-scoped problems become diagnostics on the affected entry, trailing
// truncation and cancellation become stream-scoped diagnostics on the store,
// and the entries completed so far are returned. Cancellation is checked
// between entries, never mid-entry.
func Load(ctx context.Context, r io.Reader, opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	rd, err := burpxml.NewReader(r)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	store.setMeta(rd.Meta)

	if opts.Workers > 1 {
		err = loadPipelined(ctx, rd, store, opts)
	} else {
		err = loadSequential(ctx, rd, store, opts)
	}
	if err != nil {
		return nil, err
	}

	store.Freeze()
	log.Info("history loaded",
		"entries", store.Len(),
		"burpVersion", store.Meta().BurpVersion,
		"streamDiagnostics", len(store.Diagnostics()),
	)
	return store, nil
}

func loadSequential(ctx context.Context, rd *burpxml.Reader, store *Store, opts *Options) error {
	for {
		if ctx.Err() != nil {
			addStreamDiag(store, opts, "load canceled; store holds entries completed before cancellation")
			return nil
		}
		raw, err := rd.Next()
		if err != nil {
			return endOfStream(err, store, opts)
		}
		entry := buildEntry(raw, opts)
		if opts.FailFast && entry.HasError() {
			return failFast(entry, raw.Offset)
		}
		if _, err := store.Insert(entry); err != nil {
			return err
		}
	}
}

// loadPipelined fans entry building out over a fixed number of workers with
// bounded handoff channels, so a fast reader cannot outrun slow parsing and
// exhaust memory. Arrival order is preserved by routing each item's result
// through a per-item channel queued in read order; the single inserter
// drains that queue, so id assignment equals arrival order.
func loadPipelined(ctx context.Context, rd *burpxml.Reader, store *Store, opts *Options) error {
	type job struct {
		raw *burpxml.RawItem
		out chan *Entry
	}

	jobs := make(chan job, opts.Workers)
	order := make(chan chan *Entry, opts.Workers)

	g, gctx := errgroup.WithContext(ctx)

	// Reader: single producer, checks cancellation between entries.
	g.Go(func() error {
		defer close(jobs)
		defer close(order)
		for {
			if gctx.Err() != nil {
				addStreamDiag(store, opts, "load canceled; store holds entries completed before cancellation")
				return nil
			}
			raw, err := rd.Next()
			if err != nil {
				return endOfStream(err, store, opts)
			}
			out := make(chan *Entry, 1)
			// Sends race against the inserter bailing out; without the
			// Done arm a fail-fast exit would strand the reader on a
			// full channel.
			select {
			case order <- out:
			case <-gctx.Done():
				return nil
			}
			select {
			case jobs <- job{raw: raw, out: out}:
			case <-gctx.Done():
				return nil
			}
		}
	})

	// Workers: entries are independent, so building them concurrently is
	// safe.
	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				j.out <- buildEntry(j.raw, opts)
			}
			return nil
		})
	}

	// Inserter: single consumer linearizes id assignment.
	g.Go(func() error {
		for out := range order {
			var entry *Entry
			select {
			case entry = <-out:
			case <-gctx.Done():
				// The reader bailed before the matching job was queued.
				return nil
			}
			if opts.FailFast && entry.HasError() {
				return failFast(entry, 0)
			}
			if _, err := store.Insert(entry); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// endOfStream folds the reader's terminal conditions into the store: clean
// EOF is silent, truncation is a stream-scoped diagnostic, anything else is
// the fatal container error.
func endOfStream(err error, store *Store, opts *Options) error {
	if err == io.EOF {
		return nil
	}
	if errors.Is(err, burpxml.ErrTruncated) {
		addStreamDiag(store, opts, "stream truncated; kept all fully parsed entries")
		return nil
	}
	return err
}

// addStreamDiag records a stream-scoped warning, honoring MinSeverity.
func addStreamDiag(store *Store, opts *Options, msg string) {
	if !SeverityWarning.AtLeast(opts.minSeverity()) {
		return
	}
	store.addDiagnostic(Diagnostic{
		Stage:    StageContainer,
		Severity: SeverityWarning,
		Message:  msg,
	})
}

func failFast(entry *Entry, offset int64) error {
	for _, d := range entry.Diagnostics {
		if d.Severity == SeverityError {
			return fmt.Errorf("%w: %s (stage %s, byte %d)", ErrFailFast, d.Message, d.Stage, d.Offset)
		}
	}
	return fmt.Errorf("%w: entry at byte %d", ErrFailFast, offset)
}
