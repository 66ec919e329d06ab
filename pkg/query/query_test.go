package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burphist/burphist/pkg/history"
	"github.com/burphist/burphist/pkg/httpmsg"
)

func testStore(t *testing.T) *history.Store {
	t.Helper()
	s := history.NewStore()
	entries := []*history.Entry{
		{Host: "a.example", Status: 200, MimeType: "JSON", Method: "GET", Path: "/api/users", Protocol: history.ProtocolHTTPS},
		{Host: "b.example", Status: 404, MimeType: "HTML", Method: "GET", Path: "/missing"},
		{Host: "a.example", Status: 200, MimeType: "HTML", Method: "POST", Path: "/api/users", Highlight: "red"},
		{Host: "c.example", Status: 500, MimeType: "JSON", Method: "GET", Path: "/boom",
			Diagnostics: []history.Diagnostic{{Stage: history.StageDecode, Severity: history.SeverityWarning, Message: "x"}}},
		{Host: "a.example", Status: 302, MimeType: "", Method: "GET", Path: "/redirect"},
	}
	for _, e := range entries {
		if _, err := s.Insert(e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	s.Freeze()
	return s
}

func ids(entries []*history.Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestRun_FullScanInInsertionOrder(t *testing.T) {
	s := testStore(t)
	got := Run(context.Background(), s, And(), nil).Collect()
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(got))
}

func TestCombinators(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	got := Run(ctx, s, And(Host("a.example"), Status(200)), nil).Collect()
	assert.Equal(t, []int64{1, 3}, ids(got))

	got = Run(ctx, s, Or(Status(404), Status(500)), nil).Collect()
	assert.Equal(t, []int64{2, 4}, ids(got))

	got = Run(ctx, s, Not(Host("a.example")), nil).Collect()
	assert.Equal(t, []int64{2, 4}, ids(got))

	got = Run(ctx, s, And(Method("post"), Highlighted()), nil).Collect()
	assert.Equal(t, []int64{3}, ids(got))

	got = Run(ctx, s, HasDiagnostics(), nil).Collect()
	assert.Equal(t, []int64{4}, ids(got))
}

func TestRun_ConjunctionEqualsSequentialFiltering(t *testing.T) {
	// query(store, P.and(Q)) == filtering query(store, P) by Q.
	s := testStore(t)
	ctx := context.Background()
	p, q := Host("a.example"), Status(200)

	combined := Run(ctx, s, And(p, q), nil).Collect()

	var sequential []*history.Entry
	for _, e := range Run(ctx, s, p, nil).Collect() {
		if q.Match(e) {
			sequential = append(sequential, e)
		}
	}
	assert.Equal(t, ids(sequential), ids(combined))
}

func TestRun_IndexPathMatchesScan(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	scan := Run(ctx, s, Func(func(e *history.Entry) bool { return e.Host == "a.example" }), nil).Collect()
	indexed := Run(ctx, s, Host("a.example"), nil).Collect()
	assert.Equal(t, ids(scan), ids(indexed))

	scan = Run(ctx, s, Func(func(e *history.Entry) bool { return e.Status == 200 }), nil).Collect()
	indexed = Run(ctx, s, Status(200), nil).Collect()
	assert.Equal(t, ids(scan), ids(indexed))

	scan = Run(ctx, s, Func(func(e *history.Entry) bool { return e.MimeType == "HTML" }), nil).Collect()
	indexed = Run(ctx, s, Mime("HTML"), nil).Collect()
	assert.Equal(t, ids(scan), ids(indexed))
}

func TestRun_Pagination(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	all := Run(ctx, s, And(), nil).Collect()

	page := Run(ctx, s, And(), &Options{Offset: 1, Limit: 2}).Collect()
	assert.Equal(t, ids(all[1:3]), ids(page))

	page = Run(ctx, s, And(), &Options{Offset: 4}).Collect()
	assert.Equal(t, ids(all[4:]), ids(page))

	page = Run(ctx, s, And(), &Options{Offset: 99}).Collect()
	assert.Empty(t, page)

	// Offset applies to matches, not positions.
	page = Run(ctx, s, Host("a.example"), &Options{Offset: 1, Limit: 1}).Collect()
	assert.Equal(t, []int64{3}, ids(page))
}

func TestRun_Cancellation(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	it := Run(ctx, s, And(), nil)
	_, ok := it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), context.Canceled)
}

func TestRun_EmptyStore(t *testing.T) {
	s := history.NewStore()
	s.Freeze()
	assert.Empty(t, Run(context.Background(), s, And(), nil).Collect())
}

func TestCompile(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p, err := Compile(`status == 200 && host == "a.example"`)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(Run(ctx, s, p, nil).Collect()))

	p, err = Compile(`secure || status >= 500`)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids(Run(ctx, s, p, nil).Collect()))

	p, err = Compile(`path startsWith "/api"`)
	require.NoError(t, err)
	assert.Equal(t, 2, Run(ctx, s, p, nil).Count())
}

func TestCompile_InvalidExpression(t *testing.T) {
	_, err := Compile(`status ==`)
	require.Error(t, err)
}

func TestCompile_ComposesWithCombinators(t *testing.T) {
	s := testStore(t)
	p, err := Compile(`status == 200`)
	require.NoError(t, err)

	got := Run(context.Background(), s, And(p, Not(Method("POST"))), nil).Collect()
	assert.Equal(t, []int64{1}, ids(got))
}

func TestResponseJSONPath(t *testing.T) {
	s := history.NewStore()
	s.Insert(&history.Entry{
		Host:     "a.example",
		Response: &httpmsg.Message{Body: []byte(`{"user":{"name":"amy","age":3}}`)},
	})
	s.Insert(&history.Entry{
		Host:     "b.example",
		Response: &httpmsg.Message{Body: []byte(`{"user":{"name":"bob"}}`)},
	})
	s.Insert(&history.Entry{Host: "c.example"})
	s.Insert(&history.Entry{
		Host:     "d.example",
		Response: &httpmsg.Message{Body: []byte(`not json at all`)},
	})
	s.Freeze()
	ctx := context.Background()

	p, err := ResponseJSONPath("$.user.name", "amy")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(Run(ctx, s, p, nil).Collect()))

	// Numeric comparison bridges int to JSON's float64.
	p, err = ResponseJSONPath("$.user.age", 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(Run(ctx, s, p, nil).Collect()))

	// Existence only.
	p, err = ResponseJSONPath("$.user.name", nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(Run(ctx, s, p, nil).Collect()))
}

func TestResponseJSONPath_InvalidPath(t *testing.T) {
	_, err := ResponseJSONPath("$[", nil)
	require.Error(t, err)
}
