package history

import (
	"io"
	"strconv"

	"github.com/burphist/burphist/pkg/burpxml"
)

// Export writes the store back out as a Burp-compatible history document.
// Message payloads are re-encoded from the raw captured bytes, so a load
// followed by an export round-trips.
func (s *Store) Export(w io.Writer) error {
	entries := s.Entries()
	items := make([]burpxml.RawItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, toRawItem(e))
	}
	return burpxml.Export(w, s.Meta(), items)
}

func toRawItem(e *Entry) burpxml.RawItem {
	item := burpxml.RawItem{
		URL:       e.URL,
		Host:      e.Host,
		HostIP:    e.HostIP,
		Protocol:  e.Protocol,
		Method:    e.Method,
		Path:      e.Path,
		Extension: e.Extension,
		MimeType:  e.MimeType,
		Comment:   e.Comment,
		Highlight: e.Highlight,
		Extra:     e.Extra,
		Request:   burpxml.EncodeBlob(e.RequestRaw),
		Response:  burpxml.EncodeBlob(e.ResponseRaw),
	}
	if !e.Timestamp.IsZero() {
		item.Time = e.Timestamp.Format(burpxml.TimeLayout)
	}
	if e.Port != 0 {
		item.Port = strconv.Itoa(e.Port)
	}
	if e.Status != 0 {
		item.Status = strconv.Itoa(e.Status)
	}
	if e.ResponseLength != 0 {
		item.ResponseLength = strconv.Itoa(e.ResponseLength)
	}
	return item
}
