// Package nav parses view URLs and records navigation requests.
package nav

import (
	"net/url"
	"sync"
)

// BasePath is the document browser's own route.
const BasePath = "/a/datastore/queries"

// ParamValue returns the value of the query parameter key in path, or ""
// when the parameter is absent or the path cannot be parsed.
func ParamValue(path, key string) string {
	u, err := url.Parse(path)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

// SearchURL returns the browser URL listing the results for term.
// An empty term yields the unfiltered list.
func SearchURL(term string) string {
	if term == "" {
		return BasePath
	}
	return BasePath + "?q=" + url.QueryEscape(term)
}

// Navigator moves the user to another path.
type Navigator interface {
	NavigateTo(path string)
}

// Recorder is a Navigator that remembers the most recent target so the
// caller can turn it into a redirect or a client message.
type Recorder struct {
	mu         sync.Mutex
	target     string
	clearInput bool
}

// NavigateTo records path as the pending target.
func (r *Recorder) NavigateTo(path string) {
	r.mu.Lock()
	r.target = path
	r.mu.Unlock()
}

// ClearInput asks the client to empty the search box before navigating.
func (r *Recorder) ClearInput() {
	r.mu.Lock()
	r.clearInput = true
	r.mu.Unlock()
}

// Take returns and resets the pending navigation.
func (r *Recorder) Take() (target string, clearInput bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, clearInput = r.target, r.clearInput
	r.target, r.clearInput = "", false
	return target, clearInput
}
