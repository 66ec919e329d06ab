package httpmsg

// Kind distinguishes request parsing from response parsing. The two share
// everything except the shape of the start line.
type Kind int

// Message kinds.
const (
	KindRequest Kind = iota
	KindResponse
)

// BodyMode records how the message body was framed in the raw bytes.
type BodyMode string

// Body framing modes.
const (
	// BodyAbsent means the message carried no body bytes at all.
	BodyAbsent BodyMode = "absent"

	// BodyContentLength means the body was bounded by a Content-Length header.
	BodyContentLength BodyMode = "content-length"

	// BodyChunked means the body used chunked transfer encoding and has been
	// reassembled with the chunk framing removed.
	BodyChunked BodyMode = "chunked"

	// BodyReadToEnd means no framing header was present and the entire
	// remainder of the raw bytes was taken as the body. Captures are framed
	// by the surrounding export document rather than a live connection, so
	// this is the correct interpretation of trailing bytes.
	BodyReadToEnd BodyMode = "read-to-end"
)

// Header is a single (name, value) pair. Name holds the exact bytes from the
// wire; Value has leading and trailing whitespace trimmed.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StartLine holds the parsed first line of a message. For a request, Method,
// Target and Version are set; for a response, Version, StatusCode and Reason.
// Raw always holds the original line, including when parsing it failed.
type StartLine struct {
	Raw string `json:"raw"`

	// Request fields.
	Method  string `json:"method,omitempty"`
	Target  string `json:"target,omitempty"`
	Version string `json:"version,omitempty"`

	// Response fields.
	StatusCode int    `json:"statusCode,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Message is one parsed HTTP request or response.
type Message struct {
	Kind      Kind      `json:"kind"`
	StartLine StartLine `json:"startLine"`

	// Headers preserves wire order and duplicate names.
	Headers []Header `json:"headers,omitempty"`

	Body     []byte   `json:"body,omitempty"`
	BodyMode BodyMode `json:"bodyMode"`

	// Trailers holds headers found after the terminal chunk of a chunked
	// body. They are kept separate from Headers so reassembly never silently
	// changes header semantics.
	Trailers []Header `json:"trailers,omitempty"`
}

// Header returns the value of the first header whose name matches name
// case-insensitively, and whether it was present. Lookups are
// case-insensitive even though storage is byte-exact.
func (m *Message) Header(name string) (string, bool) {
	for _, h := range m.Headers {
		if equalFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// HeaderValues returns all values for name, in wire order.
func (m *Message) HeaderValues(name string) []string {
	var vals []string
	for _, h := range m.Headers {
		if equalFold(h.Name, name) {
			vals = append(vals, h.Value)
		}
	}
	return vals
}

// equalFold is strings.EqualFold restricted to ASCII, which is all HTTP
// header names can contain.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
