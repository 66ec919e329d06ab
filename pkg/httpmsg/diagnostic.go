package httpmsg

// Severity classifies how badly a grammar violation damaged the message.
type Severity string

// Severity levels.
const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic records one non-fatal issue hit while parsing a message.
// Parsing always continues past a Diagnostic; the caller decides whether
// the salvaged message is still useful.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`

	// Offset is the byte offset into the raw message where the issue was
	// detected, or -1 when no meaningful offset exists.
	Offset int64 `json:"offset,omitempty"`
}
