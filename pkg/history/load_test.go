package history

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burphist/burphist/pkg/burpxml"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func doc(items ...string) string {
	return `<items burpVersion="2020.12.1" exportTime="Wed Jan 06 11:36:18 UTC 2021">` +
		strings.Join(items, "\n") + `</items>`
}

func item(host string, fields ...string) string {
	return fmt.Sprintf(`<item>
  <time>Wed Jan 06 11:36:03 UTC 2021</time>
  <host ip="10.0.0.1">%s</host>
  <port>80</port>
  <protocol>http</protocol>
  %s
</item>`, host, strings.Join(fields, "\n  "))
}

func TestLoad_RequestOnlyEntryIsValid(t *testing.T) {
	// A request with two headers and no body, and no response at all.
	req := "GET / HTTP/1.1\r\nHost: a.example\r\nAccept: */*\r\n\r\n"
	src := doc(item("a.example",
		`<method>GET</method>`,
		`<path>/</path>`,
		`<request base64="true">`+b64(req)+`</request>`,
	))

	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	e := store.Get(1)
	require.NotNil(t, e)
	assert.Equal(t, "GET", e.Method)
	assert.Equal(t, "/", e.Path)
	require.NotNil(t, e.Request)
	assert.Len(t, e.Request.Headers, 2)
	assert.Nil(t, e.Response)
	assert.Empty(t, e.Diagnostics)
	assert.Empty(t, store.Diagnostics())
	assert.Equal(t, "10.0.0.1", e.HostIP)
	assert.Equal(t, time.Date(2021, 1, 6, 11, 36, 3, 0, time.UTC), e.Timestamp)
}

func TestLoad_InvalidPaddingBecomesDecodeWarning(t *testing.T) {
	req := "GET / HTTP/1.1\r\nHost: a.example\r\n\r\n"
	src := doc(item("a.example",
		`<method>GET</method>`,
		`<status>200</status>`,
		`<request base64="true">`+b64(req)+`</request>`,
		`<response base64="true">SFRUUC=</response>`,
	))

	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	e := store.Get(1)
	assert.Nil(t, e.Response)
	assert.NotNil(t, e.Request)
	require.Len(t, e.Diagnostics, 1)
	assert.Equal(t, StageDecode, e.Diagnostics[0].Stage)
	assert.Equal(t, SeverityWarning, e.Diagnostics[0].Severity)
}

func TestLoad_TruncatedStreamIsRecoverable(t *testing.T) {
	// Stream dies right after the opening container tag: empty store plus a
	// stream-level truncation diagnostic, not a fatal error.
	src := `<items burpVersion="2020.12.1" exportTime="Wed Jan 06 11:36:18 UTC 2021">`

	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	require.Len(t, store.Diagnostics(), 1)
	assert.Equal(t, StageContainer, store.Diagnostics()[0].Stage)
	assert.Contains(t, store.Diagnostics()[0].Message, "truncated")
}

func TestLoad_MalformedRootIsFatal(t *testing.T) {
	_, err := Load(context.Background(), strings.NewReader(`<items burpVersion="x"`), nil)
	var ce *burpxml.ContainerError
	require.ErrorAs(t, err, &ce)
}

func TestLoad_MalformedStructureMidStreamIsFatal(t *testing.T) {
	src := doc(`<item><host>x</broken></item>`)
	_, err := Load(context.Background(), strings.NewReader(src), nil)
	var ce *burpxml.ContainerError
	require.ErrorAs(t, err, &ce)
}

func TestLoad_FailFastEscalatesEntryErrors(t *testing.T) {
	// A start line with no spaces is an error-severity parse diagnostic.
	src := doc(item("a.example",
		`<request base64="true">`+b64("garbage-without-any-structure")+`</request>`,
	))

	_, err := Load(context.Background(), strings.NewReader(src), &Options{FailFast: true})
	require.ErrorIs(t, err, ErrFailFast)

	// Without fail-fast the same input loads with the diagnostic recorded.
	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.True(t, store.Get(1).HasError())
}

func TestLoad_MinSeverityFiltersDiagnostics(t *testing.T) {
	src := doc(item("a.example",
		`<request base64="true">not!base64#data</request>`,
	))

	store, err := Load(context.Background(), strings.NewReader(src),
		&Options{MinSeverity: SeverityError})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Empty(t, store.Get(1).Diagnostics, "decode warning should be filtered out")
}

func TestLoad_CancellationKeepsCompletedEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := doc(item("a.example", `<method>GET</method>`))
	store, err := Load(ctx, strings.NewReader(src), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	require.Len(t, store.Diagnostics(), 1)
	assert.Contains(t, store.Diagnostics()[0].Message, "canceled")
	assert.True(t, store.Frozen())
}

func TestLoad_PipelinedPreservesArrivalOrder(t *testing.T) {
	const n = 200
	items := make([]string, n)
	for i := range items {
		items[i] = item(fmt.Sprintf("host-%03d.example", i),
			`<method>GET</method>`,
			`<request base64="true">`+b64(fmt.Sprintf("GET /%d HTTP/1.1\r\n\r\n", i))+`</request>`,
		)
	}

	store, err := Load(context.Background(), strings.NewReader(doc(items...)),
		&Options{Workers: 4})
	require.NoError(t, err)
	require.Equal(t, n, store.Len())

	for i, e := range store.Entries() {
		assert.Equal(t, int64(i)+1, e.ID)
		assert.Equal(t, fmt.Sprintf("host-%03d.example", i), e.Host)
	}
}

func TestLoad_UnrecognizedFieldsPreserved(t *testing.T) {
	src := doc(item("a.example", `<listenerport>8080</listenerport>`))
	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	assert.Equal(t, "8080", store.Get(1).Extra["listenerport"])
}

func TestLoad_ContentLengthInvariant(t *testing.T) {
	// Parsed body length equals the declared length when no truncation
	// diagnostic is present.
	body := `{"ok":true}`
	resp := fmt.Sprintf("HTTP/1.1 200 OK\r\nContent-Length: %d\r\n\r\n%s", len(body), body)
	src := doc(item("a.example",
		`<status>200</status>`,
		`<response base64="true">`+b64(resp)+`</response>`,
	))

	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)
	e := store.Get(1)
	require.NotNil(t, e.Response)
	assert.Empty(t, e.Diagnostics)
	assert.Len(t, e.Response.Body, len(body))
}

func TestStore_ExportRoundTrip(t *testing.T) {
	req := "GET /x HTTP/1.1\r\nHost: a.example\r\n\r\n"
	resp := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok"
	src := doc(item("a.example",
		`<method>GET</method>`,
		`<path>/x</path>`,
		`<status>200</status>`,
		`<mimetype>HTML</mimetype>`,
		`<request base64="true">`+b64(req)+`</request>`,
		`<response base64="true">`+b64(resp)+`</response>`,
	))

	store, err := Load(context.Background(), strings.NewReader(src), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf))

	again, err := Load(context.Background(), &buf, nil)
	require.NoError(t, err)
	require.Equal(t, store.Len(), again.Len())

	a, b := store.Get(1), again.Get(1)
	assert.Equal(t, a.Host, b.Host)
	assert.Equal(t, a.Method, b.Method)
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.MimeType, b.MimeType)
	assert.Equal(t, a.RequestRaw, b.RequestRaw)
	assert.Equal(t, a.ResponseRaw, b.ResponseRaw)
}
