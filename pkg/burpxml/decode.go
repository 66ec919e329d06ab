package burpxml

import (
	"encoding/base64"
	"strings"
)

// DecodeBlob returns the raw message bytes of a payload. Base64 payloads are
// decoded with the standard alphabet and strict padding; plain payloads pass
// through unchanged; an absent payload yields nil. A failed decode returns a
// *DecodeError; the caller marks that one message absent and moves on, the
// rest of the item is unaffected.
func DecodeBlob(b Blob) ([]byte, error) {
	if !b.Present {
		return nil, nil
	}
	if !b.Base64 {
		return b.Data, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(b.Data)))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return raw, nil
}

// EncodeBlob is the inverse of DecodeBlob for base64 payloads: raw message
// bytes in, export-ready Blob out. Export uses it to round-trip a store.
func EncodeBlob(raw []byte) Blob {
	if raw == nil {
		return Blob{}
	}
	return Blob{
		Present: true,
		Base64:  true,
		Data:    []byte(base64.StdEncoding.EncodeToString(raw)),
	}
}
