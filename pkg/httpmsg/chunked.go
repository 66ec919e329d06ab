package httpmsg

import (
	"bytes"
	"strconv"
	"strings"
)

// parseChunked reassembles a chunked body: hex size line, that many bytes,
// terminator, repeated until a zero-size chunk, then optional trailers.
// Malformed framing or a short read keeps everything decoded so far and
// records a diagnostic; already-recovered bytes are never discarded.
func (p *parser) parseChunked() ([]byte, []Header) {
	var body []byte
	for p.pos < len(p.data) {
		start := p.pos
		sizeLine := string(p.readLine())
		// Chunk extensions after ';' are allowed and ignored.
		sizeField, _, _ := strings.Cut(sizeLine, ";")
		size, err := strconv.ParseUint(strings.TrimSpace(sizeField), 16, 32)
		if err != nil {
			p.warnf(start, "malformed chunk size %q, keeping %d bytes reassembled so far", sizeLine, len(body))
			return body, nil
		}

		if size == 0 {
			return body, p.parseTrailers()
		}

		rest := p.rest()
		if uint64(len(rest)) < size {
			p.warnf(p.pos, "chunk declares %d bytes but only %d remain", size, len(rest))
			body = append(body, rest...)
			p.pos = len(p.data)
			return body, nil
		}
		body = append(body, rest[:size]...)
		p.pos += int(size)
		p.consumeChunkTerminator()
	}

	p.warnf(p.pos, "chunked body ended without terminal zero-size chunk")
	return body, nil
}

// consumeChunkTerminator eats the CRLF (or bare LF) that follows chunk data.
// When it is missing, the current position is left alone so the stray bytes
// are reinterpreted as the next size line, which will diagnose them.
func (p *parser) consumeChunkTerminator() {
	rest := p.rest()
	switch {
	case bytes.HasPrefix(rest, []byte("\r\n")):
		p.pos += 2
	case bytes.HasPrefix(rest, []byte("\n")):
		p.pos++
	default:
		p.warnf(p.pos, "missing terminator after chunk data")
	}
}

// parseTrailers reads header lines after the terminal chunk. They are kept
// separate from the main header sequence.
func (p *parser) parseTrailers() []Header {
	var trailers []Header
	for p.pos < len(p.data) {
		start := p.pos
		line := p.readLine()
		if len(line) == 0 {
			break
		}
		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			p.warnf(start, "trailer line without colon: %q", line)
			continue
		}
		trailers = append(trailers, Header{
			Name:  string(name),
			Value: string(bytes.TrimSpace(value)),
		})
	}
	return trailers
}
