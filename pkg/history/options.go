package history

import "log/slog"

// Options configures a load. The zero value is a sensible default:
// sequential load, all diagnostics retained, recoverable problems recorded
// rather than escalated.
type Options struct {
	// MinSeverity filters which diagnostics are retained on entries and the
	// store. Defaults to SeverityWarning (keep everything).
	MinSeverity Severity

	// FailFast escalates any entry-level error diagnostic into a fatal load
	// error instead of recording it. For pipelines that would rather refuse
	// a damaged capture than silently skip parts of it.
	FailFast bool

	// Workers sets the number of concurrent entry builders. Values below 2
	// select the sequential path. Entry ids always equal arrival order
	// regardless of worker count.
	Workers int

	// Logger receives operational logging. Defaults to a no-op logger.
	Logger *slog.Logger
}

func (o *Options) minSeverity() Severity {
	if o.MinSeverity == "" {
		return SeverityWarning
	}
	return o.MinSeverity
}
