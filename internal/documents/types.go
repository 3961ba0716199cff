package documents

import (
	"encoding/json"
	"net/url"
	"time"
)

// Type identifies the kind of a stored document.
type Type string

const (
	TypeReport   Type = "report"
	TypeSQLQuery Type = "sql_query"
)

// browsable is the set of document types the browser lists and links to.
var browsable = map[Type]bool{
	TypeReport:   true,
	TypeSQLQuery: true,
}

// IsBrowsable reports whether documents of type t get a row and a detail page.
func (t Type) IsBrowsable() bool {
	return browsable[t]
}

// Document is a report or SQL query record owned by the backend datastore.
type Document struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	MTime int64  `json:"mtime"` // unix seconds
}

// ModifiedAt returns the document's modification time.
func (d Document) ModifiedAt() time.Time {
	return time.Unix(d.MTime, 0)
}

// SearchResult is the body of a successful documents search.
type SearchResult struct {
	Documents  []Document        `json:"documents"`
	Categories []json.RawMessage `json:"categories"`
}

// SearchParams are the filters accepted by the documents search endpoint.
// Empty string fields are left out of the request.
type SearchParams struct {
	WithCategories   bool
	Type             string
	Author           string
	Owner            string
	CategoryPrefix   string
	PublishingStatus string
	Search           string
}

// DefaultSearchParams returns the parameters used for an unfiltered list load.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		WithCategories: true,
		Type:           "all",
		Author:         "all",
	}
}

// Values encodes the parameters as query values.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	if p.WithCategories {
		v.Set("with_categories", "true")
	}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("type", p.Type)
	set("author", p.Author)
	set("owner", p.Owner)
	set("category_prefix", p.CategoryPrefix)
	set("publishing_status", p.PublishingStatus)
	set("search", p.Search)
	return v
}

// PathPrefix returns the detail-page prefix for a document type, or "" for
// types the browser does not link to.
func PathPrefix(t Type) string {
	switch t {
	case TypeReport:
		return "/a/reports/"
	case TypeSQLQuery:
		return "/a/sql/"
	default:
		return ""
	}
}

// DetailPath returns the detail page of d. ok is false for unknown types.
func DetailPath(d Document) (path string, ok bool) {
	prefix := PathPrefix(d.Type)
	if prefix == "" {
		return "", false
	}
	return prefix + d.UUID, true
}
