package burpxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Reader streams items out of a Burp history export. It is a forward-only,
// non-restartable sequence: call Next until it returns io.EOF (clean end) or
// ErrTruncated (stream died mid-export; items already returned stand).
type Reader struct {
	// Meta carries the root element attributes (Burp version, export time).
	Meta Meta

	dec  *xml.Decoder
	done bool
}

// NewReader locates the <items> root element and returns a Reader positioned
// before the first item. Any failure before the root is found, including a
// root of the wrong name or a stream too short to contain one, is a
// *ContainerError, because nothing after it can be trusted.
func NewReader(r io.Reader) (*Reader, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ContainerError{
				Offset: dec.InputOffset(),
				Reason: "no <items> root element",
				Err:    err,
			}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "items" {
			return nil, &ContainerError{
				Offset: dec.InputOffset(),
				Reason: fmt.Sprintf("unexpected root element <%s>", start.Name.Local),
			}
		}

		rd := &Reader{dec: dec}
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "burpVersion":
				rd.Meta.BurpVersion = a.Value
			case "exportTime":
				// Tolerated when absent or unparseable; it is descriptive
				// metadata, not structure.
				if t, err := parseTime(a.Value); err == nil {
					rd.Meta.ExportTime = t
				}
			}
		}
		return rd, nil
	}
}

// Next returns the next complete item. It returns io.EOF once the closing
// root tag has been seen, ErrTruncated if the stream ends before that, and
// a *ContainerError for any other malformation.
func (r *Reader) Next() (*RawItem, error) {
	if r.done {
		return nil, io.EOF
	}

	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, r.streamErr(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "item" {
				return r.readItem()
			}
			// Not an item: skip the whole subtree and keep scanning.
			if err := r.dec.Skip(); err != nil {
				return nil, r.streamErr(err)
			}
		case xml.EndElement:
			if t.Name.Local == "items" {
				r.done = true
				return nil, io.EOF
			}
		}
	}
}

// streamErr classifies a decoder error. A stream that simply ran out is a
// recoverable truncation; everything else means item boundaries are gone.
func (r *Reader) streamErr(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	if se, ok := err.(*xml.SyntaxError); ok && strings.Contains(se.Msg, "unexpected EOF") {
		return ErrTruncated
	}
	return &ContainerError{
		Offset: r.dec.InputOffset(),
		Reason: "invalid document structure",
		Err:    err,
	}
}

// readItem consumes one <item> subtree. Recognized child tags fill RawItem
// fields; unrecognized ones are preserved in Extra. Duplicate tags keep the
// first value and record an item-scoped Diag.
func (r *Reader) readItem() (*RawItem, error) {
	item := &RawItem{Offset: r.dec.InputOffset()}
	seen := make(map[string]bool)

	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, r.streamErr(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			offset := r.dec.InputOffset()
			text, err := r.readText()
			if err != nil {
				return nil, r.streamErr(err)
			}
			if seen[name] {
				item.Diags = append(item.Diags, Diag{
					Message: fmt.Sprintf("duplicate <%s> tag, keeping first value", name),
					Offset:  offset,
				})
				continue
			}
			seen[name] = true
			r.setField(item, name, t.Attr, text)
		case xml.EndElement:
			if t.Name.Local == "item" {
				return item, nil
			}
		}
	}
}

// readText collects the character data of the current element (plain text
// and CDATA both arrive as CharData) up to its end tag, skipping any
// unexpected nested elements.
func (r *Reader) readText() (string, error) {
	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			return sb.String(), nil
		case xml.StartElement:
			if err := r.dec.Skip(); err != nil {
				return "", err
			}
		}
	}
}

func (r *Reader) setField(item *RawItem, name string, attrs []xml.Attr, text string) {
	switch name {
	case "time":
		item.Time = text
	case "url":
		item.URL = text
	case "host":
		item.Host = text
		item.HostIP = attrValue(attrs, "ip")
	case "port":
		item.Port = text
	case "protocol":
		item.Protocol = text
	case "method":
		item.Method = text
	case "path":
		item.Path = text
	case "extension":
		item.Extension = text
	case "status":
		item.Status = text
	case "responselength":
		item.ResponseLength = text
	case "mimetype":
		item.MimeType = text
	case "comment":
		item.Comment = text
	case "highlight", "color":
		item.Highlight = text
	case "request":
		item.Request = newBlob(attrs, text)
	case "response":
		item.Response = newBlob(attrs, text)
	default:
		if item.Extra == nil {
			item.Extra = make(map[string]string)
		}
		item.Extra[name] = text
	}
}

// newBlob captures a payload element. A missing or unparseable base64 attr
// means the payload is plain; older exports wrote messages unencoded.
func newBlob(attrs []xml.Attr, text string) Blob {
	b := Blob{Present: true, Data: []byte(text)}
	if v := attrValue(attrs, "base64"); v != "" {
		if enc, err := strconv.ParseBool(v); err == nil {
			b.Base64 = enc
		}
	}
	return b
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
