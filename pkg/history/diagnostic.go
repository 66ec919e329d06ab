package history

// Stage identifies which layer of the load pipeline produced a Diagnostic.
type Stage string

// Pipeline stages.
const (
	StageContainer Stage = "container"
	StageDecode    Stage = "decode"
	StageHTTPParse Stage = "http-parse"
)

// Severity classifies a Diagnostic.
type Severity string

// Severity levels, ordered: warning < error.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// rank orders severities for MinSeverity filtering.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s.rank() >= min.rank()
}

// Diagnostic is a recorded, non-fatal issue encountered while building an
// entry (or, for stream-scoped diagnostics on the Store, while reading the
// stream). Recoverable problems are data here, not control flow: they are
// attached to whatever they damaged and processing moves on.
type Diagnostic struct {
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// Offset is a byte offset into the source stream or raw message, where
	// one is known; -1 otherwise.
	Offset int64 `json:"offset,omitempty"`
}
