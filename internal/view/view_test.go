package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docbrowser/internal/documents"
	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/render"
)

type fakeBackend struct {
	result    *documents.SearchResult
	err       error
	created   *documents.Document
	calls     []documents.SearchParams
	createdAs []documents.Type
}

func (f *fakeBackend) Search(_ context.Context, p documents.SearchParams) (*documents.SearchResult, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeBackend) Create(_ context.Context, t documents.Type) (*documents.Document, error) {
	f.createdAs = append(f.createdAs, t)
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

type fakeActivity struct {
	entries [][3]string
	err     error
}

func (f *fakeActivity) Record(_ context.Context, action, subject, target string) error {
	f.entries = append(f.entries, [3]string{action, subject, target})
	return f.err
}

var fixedNow = time.Unix(1700000000, 0).Add(2 * time.Hour)

func setupView(t *testing.T, backend *fakeBackend, opts ...Option) (*View, *render.BufferedViewport, *nav.Recorder) {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)

	vp := &render.BufferedViewport{}
	rec := &nav.Recorder{}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(backend, r, rec, vp, opts...), vp, rec
}

func docsNamed(n int) []documents.Document {
	docs := make([]documents.Document, n)
	for i := range docs {
		docs[i] = documents.Document{
			UUID: fmt.Sprintf("doc-%d", i),
			Name: fmt.Sprintf("Doc %d", i),
			Type: documents.TypeSQLQuery,
		}
	}
	return docs
}

func TestParamsFromPath(t *testing.T) {
	p := ParamsFromPath("/a/datastore/queries?owner=me&author=bob&category=sales/eu&publishing_status=published&q=revenue&bogus=1")
	v := p.Values()

	assert.Equal(t, "me", v.Get("owner"))
	assert.Equal(t, "bob", v.Get("author"))
	assert.Equal(t, "sales/eu", v.Get("category_prefix"))
	assert.Equal(t, "published", v.Get("publishing_status"))
	assert.Equal(t, "revenue", v.Get("search"))
	assert.Equal(t, "all", v.Get("type"))
	assert.Equal(t, "true", v.Get("with_categories"))
	_, hasBogus := v["bogus"]
	assert.False(t, hasBogus)
	_, hasCategory := v["category"]
	assert.False(t, hasCategory)
}

func TestParamsFromPathOmitsAbsent(t *testing.T) {
	v := ParamsFromPath("/a/datastore/queries?q=").Values()
	assert.Len(t, v, 3)
	for _, key := range []string{"owner", "category_prefix", "publishing_status", "search"} {
		_, present := v[key]
		assert.False(t, present, "%s should not be sent", key)
	}
	assert.Equal(t, "all", v.Get("author"))
}

func TestLoadViewRendersEligibleRows(t *testing.T) {
	backend := &fakeBackend{result: &documents.SearchResult{
		Documents: []documents.Document{
			{UUID: "abc", Name: "Sales", Type: documents.TypeReport, MTime: 1700000000},
			{UUID: "def", Name: "Top <users>", Type: documents.TypeSQLQuery, MTime: 1700000000},
			{UUID: "ghi", Name: "Hidden", Type: "dashboard", MTime: 1700000000},
		},
	}}
	v, vp, _ := setupView(t, backend)

	require.NoError(t, v.LoadView(context.Background(), Params{Path: "/a/datastore/queries"}))
	assert.Equal(t, StateRendered, v.State())
	assert.False(t, vp.Loading())

	html := string(vp.Content())
	assert.Equal(t, 2, strings.Count(html, "<tr>\n"), "expected two document rows")
	assert.Contains(t, html, `<a href="/a/reports/abc">Sales</a>`)
	assert.Contains(t, html, `<a href="/a/reports/abc">report</a>`)
	assert.Contains(t, html, `<a href="/a/reports/abc">2 hours ago</a>`)
	assert.Contains(t, html, `<a href="/a/sql/def">Top &lt;users&gt;</a>`)
	assert.NotContains(t, html, "Hidden")
	assert.NotContains(t, html, "ghi")
	assert.NotContains(t, html, "zbase_error")

	require.Len(t, backend.calls, 1)
	assert.Equal(t, documents.DefaultSearchParams(), backend.calls[0])
}

func TestLoadViewWithSearchTerm(t *testing.T) {
	backend := &fakeBackend{result: &documents.SearchResult{}}
	v, vp, _ := setupView(t, backend)

	require.NoError(t, v.LoadView(context.Background(), Params{Path: "/a/datastore/queries?q=revenue"}))

	html := string(vp.Content())
	assert.Contains(t, html, `data-value="revenue"`)
	assert.Contains(t, html, `class="query_breadcrumb" href="/a/datastore/queries?q=revenue"`)
	assert.Contains(t, html, "Search results for &#39;revenue&#39;")
	assert.Equal(t, "revenue", backend.calls[0].Search)
}

func TestLoadViewErrorPanel(t *testing.T) {
	backend := &fakeBackend{err: &documents.SearchRequestFailedError{StatusCode: 500, StatusText: "Internal Server Error"}}
	v, vp, _ := setupView(t, backend)

	require.NoError(t, v.LoadView(context.Background(), Params{Path: "/a/datastore/queries"}))
	assert.Equal(t, StateErrorShown, v.State())
	assert.False(t, vp.Loading())

	html := string(vp.Content())
	assert.Contains(t, html, "zbase_error")
	assert.Contains(t, html, "<p>Internal Server Error</p>")
	assert.Contains(t, html, `href="/a/datastore/queries"`)
	assert.NotContains(t, html, "<table")
}

func TestLoadViewTransportFault(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	v, vp, _ := setupView(t, backend)

	err := v.LoadView(context.Background(), Params{Path: "/a/datastore/queries"})
	require.Error(t, err)
	assert.Equal(t, StateLoading, v.State())
	assert.True(t, vp.Loading())
	assert.False(t, vp.Replaced())
}

func TestHandleNavigationChangeReloads(t *testing.T) {
	backend := &fakeBackend{result: &documents.SearchResult{}}
	v, _, _ := setupView(t, backend)

	require.NoError(t, v.LoadView(context.Background(), Params{Path: "/a/datastore/queries"}))
	require.NoError(t, v.HandleNavigationChange(context.Background(), "/a/datastore/queries?q=x"))

	require.Len(t, backend.calls, 2)
	assert.Equal(t, "x", backend.calls[1].Search)
	assert.Equal(t, StateRendered, v.State())

	v.UnloadView()
	assert.Equal(t, StateUnloaded, v.State())
}

func TestAutocompleteLimit(t *testing.T) {
	for _, n := range []int{0, 1, 10, 11, 12, 30} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			backend := &fakeBackend{result: &documents.SearchResult{Documents: docsNamed(n)}}
			v, _, _ := setupView(t, backend)

			items, err := v.Autocomplete(context.Background(), "doc")
			require.NoError(t, err)
			assert.Len(t, items, min(n, 11))
			if n > 0 {
				assert.Equal(t, Suggestion{Query: "Doc 0", DataValue: "Doc 0"}, items[0])
			}
			require.Len(t, backend.calls, 1)
			assert.Equal(t, documents.SearchParams{Search: "doc"}, backend.calls[0])
		})
	}
}

func TestSubmitSingleMatchOpensDocument(t *testing.T) {
	backend := &fakeBackend{result: &documents.SearchResult{Documents: []documents.Document{
		{UUID: "abc", Name: "Sales", Type: documents.TypeReport},
	}}}
	activity := &fakeActivity{}
	v, _, rec := setupView(t, backend, WithActivityLog(activity))

	require.NoError(t, v.Submit(context.Background(), "Sales"))
	target, clear := rec.Take()
	assert.Equal(t, "/a/reports/abc", target)
	assert.True(t, clear)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, [3]string{ActionSearchSubmitted, "Sales", "/a/reports/abc"}, activity.entries[0])
}

func TestSubmitListsResults(t *testing.T) {
	for _, n := range []int{0, 2, 5} {
		backend := &fakeBackend{result: &documents.SearchResult{Documents: docsNamed(n)}}
		v, _, rec := setupView(t, backend)

		require.NoError(t, v.Submit(context.Background(), "q3 numbers"))
		target, clear := rec.Take()
		assert.Equal(t, "/a/datastore/queries?q=q3+numbers", target, "n=%d", n)
		assert.False(t, clear)
	}
}

func TestSubmitFailureDoesNotNavigate(t *testing.T) {
	backend := &fakeBackend{err: &documents.SearchRequestFailedError{StatusCode: 502, StatusText: "Bad Gateway"}}
	v, _, rec := setupView(t, backend, WithActivityLog(&fakeActivity{err: errors.New("unused")}))

	require.Error(t, v.Submit(context.Background(), "x"))
	target, _ := rec.Take()
	assert.Empty(t, target)
}

func TestCreateDocument(t *testing.T) {
	backend := &fakeBackend{created: &documents.Document{UUID: "new-1", Type: documents.TypeSQLQuery}}
	activity := &fakeActivity{err: errors.New("disk full")}
	v, _, rec := setupView(t, backend, WithActivityLog(activity))

	require.NoError(t, v.CreateDocument(context.Background(), "sql_query"))
	target, _ := rec.Take()
	assert.Equal(t, "/a/sql/new-1", target)
	assert.Equal(t, []documents.Type{documents.TypeSQLQuery}, backend.createdAs)
	require.Len(t, activity.entries, 1)

	require.Error(t, v.CreateDocument(context.Background(), "dashboard"))
	assert.Len(t, backend.createdAs, 1)
}
