package view

import (
	"context"

	"github.com/ziadkadry99/docbrowser/internal/documents"
)

// State is the lifecycle stage of a view instance.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateErrorShown
	StateUnloaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateErrorShown:
		return "error_shown"
	case StateUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// Backend is the subset of the documents API the view needs.
type Backend interface {
	Search(ctx context.Context, params documents.SearchParams) (*documents.SearchResult, error)
	Create(ctx context.Context, t documents.Type) (*documents.Document, error)
}

// ActivityLog records user actions taken through the view.
type ActivityLog interface {
	Record(ctx context.Context, action, subject, target string) error
}

// Params is what the hosting router hands to LoadView.
type Params struct {
	Path string
}

// Suggestion is one autocomplete entry for the search box.
type Suggestion struct {
	Query     string `json:"query"`
	DataValue string `json:"data_value"`
}

type row struct {
	URL     string
	Name    string
	Type    documents.Type
	TimeAgo string
}

type createOption struct {
	Type  documents.Type
	Label string
}

// createOptions are the entries of the "create new document" dropdown.
var createOptions = []createOption{
	{Type: documents.TypeSQLQuery, Label: "SQL Query"},
	{Type: documents.TypeReport, Label: "Report"},
}

type mainData struct {
	Search          string
	BreadcrumbURL   string
	BreadcrumbLabel string
	CreateOptions   []createOption
	Rows            []row
}

type errorData struct {
	Message   string
	ReloadURL string
}
