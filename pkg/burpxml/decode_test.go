package burpxml

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeBlob_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("GET / HTTP/1.1\r\n\r\n"),
		[]byte{0x00, 0xff, 0x7f, 0x80, 0x0a},
		bytes.Repeat([]byte("abc"), 10000),
		{},
	}
	for _, raw := range payloads {
		blob := EncodeBlob(raw)
		got, err := DecodeBlob(blob)
		if err != nil {
			t.Fatalf("DecodeBlob: %v", err)
		}
		if !bytes.Equal(got, raw) {
			t.Errorf("round trip changed %d bytes -> %d bytes", len(raw), len(got))
		}
	}
}

func TestDecodeBlob_Absent(t *testing.T) {
	got, err := DecodeBlob(Blob{})
	if err != nil || got != nil {
		t.Errorf("absent blob: got %v, %v", got, err)
	}
}

func TestDecodeBlob_Plain(t *testing.T) {
	got, err := DecodeBlob(Blob{Present: true, Data: []byte("raw bytes")})
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if string(got) != "raw bytes" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeBlob_InvalidPadding(t *testing.T) {
	_, err := DecodeBlob(Blob{Present: true, Base64: true, Data: []byte("SFRUUC=")})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDecodeBlob_InvalidAlphabet(t *testing.T) {
	_, err := DecodeBlob(Blob{Present: true, Base64: true, Data: []byte("not!valid@base64#")})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
}

func TestDecodeBlob_SurroundingWhitespaceTolerated(t *testing.T) {
	got, err := DecodeBlob(Blob{Present: true, Base64: true, Data: []byte("\n  aGVsbG8=  \n")})
	if err != nil {
		t.Fatalf("DecodeBlob: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("got %q", got)
	}
}
