package history

import (
	"time"

	"github.com/burphist/burphist/pkg/httpmsg"
)

// Protocol constants as they appear in exports.
const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// Entry is one captured request/response exchange plus its capture metadata.
// Entries are immutable once inserted into a Store.
type Entry struct {
	// ID is assigned at insertion, starts at 1, increases monotonically in
	// capture order, and is never reused.
	ID int64 `json:"id"`

	// Timestamp is when the exchange was captured.
	Timestamp time.Time `json:"timestamp,omitempty"`

	URL      string `json:"url,omitempty"`
	Host     string `json:"host,omitempty"`
	HostIP   string `json:"hostIP,omitempty"`
	Port     int    `json:"port,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Method   string `json:"method,omitempty"`
	Path     string `json:"path,omitempty"`

	// Extension is the file extension hint from the capture tool.
	Extension string `json:"extension,omitempty"`

	// Status is the response status as reported by the capture tool;
	// 0 when no response was received.
	Status int `json:"status,omitempty"`

	// ResponseLength is the response size as reported by the capture tool.
	ResponseLength int `json:"responseLength,omitempty"`

	// MimeType is the capture tool's classification, not a parsed header.
	MimeType string `json:"mimeType,omitempty"`

	Comment   string `json:"comment,omitempty"`
	Highlight string `json:"highlight,omitempty"`

	// Request and Response are the parsed messages; nil means absent.
	// An entry with only a request is valid; the response may simply never
	// have been received.
	Request  *httpmsg.Message `json:"request,omitempty"`
	Response *httpmsg.Message `json:"response,omitempty"`

	// RequestRaw and ResponseRaw hold the decoded message bytes exactly as
	// captured, for round-trip export and raw inspection.
	RequestRaw  []byte `json:"-"`
	ResponseRaw []byte `json:"-"`

	// Extra preserves unrecognized export fields verbatim.
	Extra map[string]string `json:"extra,omitempty"`

	// Diagnostics are the non-fatal issues hit while building this entry.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Clean reports whether the entry parsed without a single diagnostic and
// both messages are present.
func (e *Entry) Clean() bool {
	return len(e.Diagnostics) == 0 && e.Request != nil && e.Response != nil
}

// HasError reports whether any diagnostic on the entry is of error severity.
func (e *Entry) HasError() bool {
	for _, d := range e.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Secure reports whether the exchange went over TLS.
func (e *Entry) Secure() bool {
	return e.Protocol == ProtocolHTTPS
}
