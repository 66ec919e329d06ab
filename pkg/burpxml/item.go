package burpxml

import (
	"strings"
	"time"
)

// TimeLayout is the timestamp format Burp uses for exportTime and the
// per-item <time> element.
const TimeLayout = "Mon Jan 02 15:04:05 MST 2006"

// parseTime parses a Burp-formatted timestamp.
func parseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, strings.TrimSpace(s))
}

// Meta holds the attributes of the <items> root element.
type Meta struct {
	BurpVersion string    `json:"burpVersion,omitempty"`
	ExportTime  time.Time `json:"exportTime,omitempty"`
}

// Blob is a request or response payload exactly as it appeared in the
// document: still encoded when Base64 is set, raw message bytes otherwise.
// Some export variants write payloads unencoded, so both forms occur.
type Blob struct {
	Present bool   `json:"present"`
	Base64  bool   `json:"base64"`
	Data    []byte `json:"data,omitempty"`
}

// Diag is a non-fatal, item-scoped issue hit while reading one item,
// such as a duplicate child tag. It never stops the stream.
type Diag struct {
	Message string `json:"message"`
	Offset  int64  `json:"offset"`
}

// RawItem is one <item> element with scalar fields still in their textual
// form and payloads still encoded. Normalization, decoding, and message
// parsing all happen downstream; the reader's only job is to find item
// boundaries and lift fields out of the XML.
type RawItem struct {
	Time           string `json:"time,omitempty"`
	URL            string `json:"url,omitempty"`
	Host           string `json:"host,omitempty"`
	HostIP         string `json:"hostIP,omitempty"`
	Port           string `json:"port,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	Method         string `json:"method,omitempty"`
	Path           string `json:"path,omitempty"`
	Extension      string `json:"extension,omitempty"`
	Status         string `json:"status,omitempty"`
	ResponseLength string `json:"responseLength,omitempty"`
	MimeType       string `json:"mimeType,omitempty"`
	Comment        string `json:"comment,omitempty"`
	Highlight      string `json:"highlight,omitempty"`

	Request  Blob `json:"request"`
	Response Blob `json:"response"`

	// Extra preserves unrecognized child tags verbatim instead of dropping
	// them, keyed by tag name. Different Burp versions add fields.
	Extra map[string]string `json:"extra,omitempty"`

	// Offset is the byte offset of the <item> start tag.
	Offset int64 `json:"offset"`

	// Diags are item-scoped reader issues (duplicate tags and the like).
	Diags []Diag `json:"diags,omitempty"`
}
