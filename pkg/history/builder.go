package history

import (
	"fmt"
	"strconv"
	"time"

	"github.com/burphist/burphist/pkg/burpxml"
	"github.com/burphist/burphist/pkg/httpmsg"
)

// buildEntry normalizes one raw item into an Entry: scalar conversion,
// payload decode, and message parsing. Every failure along the way is
// entry-scoped and lands in Diagnostics; buildEntry itself cannot fail.
func buildEntry(raw *burpxml.RawItem, opts *Options) *Entry {
	b := &entryBuilder{min: opts.minSeverity()}

	e := &Entry{
		URL:       raw.URL,
		Host:      raw.Host,
		HostIP:    raw.HostIP,
		Protocol:  raw.Protocol,
		Method:    raw.Method,
		Path:      raw.Path,
		MimeType:  raw.MimeType,
		Comment:   raw.Comment,
		Highlight: raw.Highlight,
		Extra:     raw.Extra,
	}

	for _, d := range raw.Diags {
		b.add(StageContainer, SeverityWarning, d.Message, d.Offset)
	}

	if raw.Time != "" {
		t, err := time.Parse(burpxml.TimeLayout, raw.Time)
		if err != nil {
			b.add(StageContainer, SeverityWarning, fmt.Sprintf("unparseable timestamp %q", raw.Time), raw.Offset)
		} else {
			e.Timestamp = t
		}
	}
	e.Port = b.atoi("port", raw.Port, raw.Offset)
	e.Status = b.atoi("status", raw.Status, raw.Offset)
	e.ResponseLength = b.atoi("responselength", raw.ResponseLength, raw.Offset)

	// Burp writes the literal string "null" for a missing extension.
	if raw.Extension != "null" {
		e.Extension = raw.Extension
	}

	e.RequestRaw, e.Request = b.message(raw.Request, httpmsg.KindRequest, raw.Offset)
	e.ResponseRaw, e.Response = b.message(raw.Response, httpmsg.KindResponse, raw.Offset)

	e.Diagnostics = b.diags
	return e
}

type entryBuilder struct {
	min   Severity
	diags []Diagnostic
}

func (b *entryBuilder) add(stage Stage, sev Severity, msg string, offset int64) {
	if !sev.AtLeast(b.min) {
		return
	}
	b.diags = append(b.diags, Diagnostic{Stage: stage, Severity: sev, Message: msg, Offset: offset})
}

// atoi converts an optional numeric field; empty means absent (0) and an
// unparseable value is diagnosed, not fatal.
func (b *entryBuilder) atoi(field, s string, offset int64) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		b.add(StageContainer, SeverityWarning, fmt.Sprintf("invalid <%s> value %q", field, s), offset)
		return 0
	}
	return n
}

// message decodes and parses one payload. A decode failure marks the message
// absent and records a decode-stage diagnostic; the rest of the entry stands.
func (b *entryBuilder) message(blob burpxml.Blob, kind httpmsg.Kind, offset int64) ([]byte, *httpmsg.Message) {
	rawBytes, err := burpxml.DecodeBlob(blob)
	if err != nil {
		b.add(StageDecode, SeverityWarning, err.Error(), offset)
		return nil, nil
	}
	msg, parseDiags := httpmsg.Parse(rawBytes, kind)
	for _, d := range parseDiags {
		b.add(StageHTTPParse, Severity(d.Severity), d.Message, d.Offset)
	}
	return rawBytes, msg
}
