package httpmsg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Parse parses one raw HTTP message. It never fails: grammar violations are
// reported as Diagnostics on a best-effort partial Message. The single
// exception is a completely empty input, for which the correct result is
// "message absent"; Parse returns (nil, nil).
func Parse(data []byte, kind Kind) (*Message, []Diagnostic) {
	if len(data) == 0 {
		return nil, nil
	}

	p := &parser{data: data}
	msg := &Message{Kind: kind, BodyMode: BodyAbsent}

	if !p.parseStartLine(msg) {
		// Salvage: keep whatever followed the unparseable start line as an
		// opaque body so no captured bytes are lost.
		rest := p.rest()
		if len(rest) > 0 {
			msg.Body = rest
			msg.BodyMode = BodyReadToEnd
		}
		return msg, p.diags
	}

	msg.Headers = p.parseHeaders()
	p.parseBody(msg)

	return msg, p.diags
}

type parser struct {
	data  []byte
	pos   int
	diags []Diagnostic
}

func (p *parser) warnf(offset int, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Offset:   int64(offset),
	})
}

func (p *parser) errorf(offset int, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Offset:   int64(offset),
	})
}

func (p *parser) rest() []byte {
	return p.data[p.pos:]
}

// readLine consumes up to and including the next LF and returns the line
// with its terminator (CRLF or bare LF) stripped. At end of input it
// returns the remaining bytes.
func (p *parser) readLine() []byte {
	rest := p.rest()
	i := bytes.IndexByte(rest, '\n')
	if i < 0 {
		p.pos = len(p.data)
		return bytes.TrimSuffix(rest, []byte("\r"))
	}
	line := rest[:i]
	p.pos += i + 1
	return bytes.TrimSuffix(line, []byte("\r"))
}

// parseStartLine consumes the first line. It reports whether the line was
// structurally usable; false means the caller should salvage the remainder.
// Multiple consecutive spaces are tolerated by splitting on the first two
// space positions only, so a target containing spaces survives intact.
func (p *parser) parseStartLine(msg *Message) bool {
	start := p.pos
	line := string(p.readLine())
	msg.StartLine.Raw = line

	if line == "" || strings.IndexByte(line, ' ') < 0 {
		p.errorf(start, "malformed start line %q", line)
		return false
	}

	switch msg.Kind {
	case KindRequest:
		method, rest, _ := strings.Cut(line, " ")
		target, version, _ := strings.Cut(rest, " ")
		msg.StartLine.Method = method
		msg.StartLine.Target = target
		msg.StartLine.Version = version
	case KindResponse:
		version, rest, _ := strings.Cut(line, " ")
		status, reason, _ := strings.Cut(rest, " ")
		msg.StartLine.Version = version
		msg.StartLine.Reason = reason
		code, err := strconv.Atoi(status)
		if err != nil || code < 0 {
			p.warnf(start, "malformed status code %q", status)
		} else {
			msg.StartLine.StatusCode = code
		}
	}
	return true
}

// parseHeaders consumes header lines until the empty line that terminates
// them, or end of input. A line with no colon is skipped with a diagnostic
// rather than aborting the message.
func (p *parser) parseHeaders() []Header {
	var headers []Header
	for p.pos < len(p.data) {
		start := p.pos
		line := p.readLine()
		if len(line) == 0 {
			break
		}
		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			p.warnf(start, "header line without colon: %q", line)
			continue
		}
		headers = append(headers, Header{
			Name:  string(name),
			Value: string(bytes.TrimSpace(value)),
		})
	}
	return headers
}

// parseBody selects the body framing mode and consumes the body. A valid
// Content-Length bounds the body; a chunked Transfer-Encoding overrides a
// stale conflicting length; with neither, any remaining bytes are the body
// verbatim since the capture container, not a live connection, frames the
// message.
func (p *parser) parseBody(msg *Message) {
	length, hasLength := p.contentLength(msg)

	if isChunked(msg) {
		msg.Body, msg.Trailers = p.parseChunked()
		msg.BodyMode = BodyChunked
		return
	}

	rest := p.rest()
	switch {
	case hasLength:
		msg.BodyMode = BodyContentLength
		if len(rest) < length {
			p.warnf(p.pos, "declared content length %d but only %d bytes remain", length, len(rest))
			msg.Body = rest
			return
		}
		msg.Body = rest[:length]
	case len(rest) > 0:
		msg.Body = rest
		msg.BodyMode = BodyReadToEnd
	default:
		msg.BodyMode = BodyAbsent
	}
}

// contentLength returns the declared body length, if a valid non-negative
// one is present. An unparseable declaration is diagnosed and ignored.
func (p *parser) contentLength(msg *Message) (int, bool) {
	raw, ok := msg.Header("Content-Length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		p.warnf(p.pos, "invalid Content-Length %q", raw)
		return 0, false
	}
	return n, true
}

func isChunked(msg *Message) bool {
	for _, v := range msg.HeaderValues("Transfer-Encoding") {
		for _, tok := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), "chunked") {
				return true
			}
		}
	}
	return false
}
