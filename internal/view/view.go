// Package view implements the document browser page: it lists reports and
// SQL queries from the documents API and handles search, autocomplete and
// document creation.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docbrowser/internal/documents"
	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/render"
)

// Name is the view's registration name.
const Name = "datastore_queries"

const (
	Namespace    = "views/datastore_queries"
	MainTemplate = "zbase_datastore_queries_main_tpl"

	errorNamespace = "views/common"
	errorTemplate  = "zbase_error_tpl"
)

// Actions written to the activity log.
const (
	ActionDocumentCreated = "document_created"
	ActionSearchSubmitted = "search_submitted"
)

// maxSuggestionIndex is the last result index offered as a suggestion, so
// autocomplete returns up to eleven entries.
const maxSuggestionIndex = 10

// View is one instance of the document browser. It is owned by a single
// request or connection.
type View struct {
	backend   Backend
	renderer  *render.Renderer
	navigator nav.Navigator
	viewport  render.Viewport
	activity  ActivityLog
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	state State
}

// Option configures a View.
type Option func(*View)

// WithActivityLog records searches and document creation in log.
func WithActivityLog(log ActivityLog) Option {
	return func(v *View) { v.activity = log }
}

// WithClock overrides the clock used for "time ago" labels.
func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(v *View) { v.logger = l.Named(Name) }
}

// New creates a view wired to its collaborators.
func New(backend Backend, renderer *render.Renderer, navigator nav.Navigator, viewport render.Viewport, opts ...Option) *View {
	v := &View{
		backend:   backend,
		renderer:  renderer,
		navigator: navigator,
		viewport:  viewport,
		logger:    zap.NewNop(),
		now:       time.Now,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the current lifecycle stage.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}

// LoadView runs a full load-and-render cycle for p.Path.
func (v *View) LoadView(ctx context.Context, p Params) error {
	return v.load(ctx, p.Path)
}

// HandleNavigationChange reloads the view after an in-view navigation.
func (v *View) HandleNavigationChange(ctx context.Context, path string) error {
	return v.load(ctx, path)
}

// UnloadView releases the view. It holds nothing across navigations.
func (v *View) UnloadView() {
	v.setState(StateUnloaded)
}

// ParamsFromPath builds the list search parameters from the browser URL.
// Only recognised parameters are forwarded; empty ones are dropped.
func ParamsFromPath(path string) documents.SearchParams {
	p := documents.DefaultSearchParams()
	if owner := nav.ParamValue(path, "owner"); owner != "" {
		p.Owner = owner
	}
	if author := nav.ParamValue(path, "author"); author != "" {
		p.Author = author
	}
	if category := nav.ParamValue(path, "category"); category != "" {
		p.CategoryPrefix = category
	}
	if status := nav.ParamValue(path, "publishing_status"); status != "" {
		p.PublishingStatus = status
	}
	if q := nav.ParamValue(path, "q"); q != "" {
		p.Search = q
	}
	return p
}

func (v *View) load(ctx context.Context, path string) error {
	params := ParamsFromPath(path)

	v.setState(StateLoading)
	v.viewport.ShowLoader()

	result, err := v.backend.Search(ctx, params)
	if err != nil {
		var failed *documents.SearchRequestFailedError
		if errors.As(err, &failed) {
			v.logger.Warn("document search failed",
				zap.String("path", path),
				zap.Int("status", failed.StatusCode),
				zap.String("status_text", failed.StatusText))
			return v.renderError(failed.StatusText)
		}
		return fmt.Errorf("loading documents: %w", err)
	}

	return v.render(result, params)
}

func (v *View) render(result *documents.SearchResult, params documents.SearchParams) error {
	data := mainData{
		BreadcrumbURL:   nav.BasePath,
		BreadcrumbLabel: "All Documents",
		CreateOptions:   createOptions,
		Rows:            buildRows(result.Documents, v.now()),
	}
	if params.Search != "" {
		data.Search = params.Search
		data.BreadcrumbURL = nav.SearchURL(params.Search)
		data.BreadcrumbLabel = fmt.Sprintf("Search results for '%s'", params.Search)
	}

	fragment, err := v.renderer.Fragment(Namespace, MainTemplate, data)
	if err != nil {
		return fmt.Errorf("rendering document list: %w", err)
	}

	v.viewport.Replace(fragment)
	v.viewport.HideLoader()
	v.setState(StateRendered)

	v.logger.Debug("rendered document list",
		zap.Int("documents", len(result.Documents)),
		zap.Int("rows", len(data.Rows)),
		zap.String("search", params.Search))
	return nil
}

// buildRows returns one row per browsable document, in response order.
func buildRows(docs []documents.Document, now time.Time) []row {
	rows := make([]row, 0, len(docs))
	for _, doc := range docs {
		url, ok := documents.DetailPath(doc)
		if !ok {
			continue
		}
		rows = append(rows, row{
			URL:     url,
			Name:    doc.Name,
			Type:    doc.Type,
			TimeAgo: render.TimeAgo(doc.ModifiedAt(), now),
		})
	}
	return rows
}

func (v *View) renderError(msg string) error {
	fragment, err := v.renderer.Fragment(errorNamespace, errorTemplate, errorData{
		Message:   msg,
		ReloadURL: nav.BasePath,
	})
	if err != nil {
		return fmt.Errorf("rendering error panel: %w", err)
	}

	v.viewport.Replace(fragment)
	v.viewport.HideLoader()
	v.setState(StateErrorShown)
	return nil
}

// Autocomplete returns search-box suggestions for term.
func (v *View) Autocomplete(ctx context.Context, term string) ([]Suggestion, error) {
	result, err := v.backend.Search(ctx, documents.SearchParams{Search: term})
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", term, err)
	}

	items := []Suggestion{}
	for i, doc := range result.Documents {
		if i > maxSuggestionIndex {
			break
		}
		items = append(items, Suggestion{Query: doc.Name, DataValue: doc.Name})
	}
	return items, nil
}

// Submit handles a search-box submission. A single match opens that
// document; anything else lists the results for term.
func (v *View) Submit(ctx context.Context, term string) error {
	result, err := v.backend.Search(ctx, documents.SearchParams{Search: term})
	if err != nil {
		return fmt.Errorf("search %q: %w", term, err)
	}

	target := nav.SearchURL(term)
	if len(result.Documents) == 1 {
		if path, ok := documents.DetailPath(result.Documents[0]); ok {
			target = path
			if c, ok := v.navigator.(interface{ ClearInput() }); ok {
				c.ClearInput()
			}
		}
	}

	v.record(ctx, ActionSearchSubmitted, term, target)
	v.navigator.NavigateTo(target)
	return nil
}

// CreateDocument creates a new document of the given type and opens it.
func (v *View) CreateDocument(ctx context.Context, docType string) error {
	t := documents.Type(docType)
	if !t.IsBrowsable() {
		return fmt.Errorf("cannot create document of type %q", docType)
	}

	doc, err := v.backend.Create(ctx, t)
	if err != nil {
		return fmt.Errorf("creating %s: %w", t, err)
	}

	path, ok := documents.DetailPath(*doc)
	if !ok {
		return fmt.Errorf("created document %s has unsupported type %q", doc.UUID, doc.Type)
	}

	v.record(ctx, ActionDocumentCreated, doc.UUID, path)
	v.navigator.NavigateTo(path)
	return nil
}

func (v *View) record(ctx context.Context, action, subject, target string) {
	if v.activity == nil {
		return
	}
	if err := v.activity.Record(ctx, action, subject, target); err != nil {
		v.logger.Warn("recording activity failed",
			zap.String("action", action),
			zap.Error(err))
	}
}
