package render

import (
	"html/template"
	"sync"
)

// Viewport is the visible area a view renders into.
type Viewport interface {
	ShowLoader()
	HideLoader()
	Replace(fragment template.HTML)
}

// BufferedViewport keeps the latest fragment in memory until the caller
// writes it out.
type BufferedViewport struct {
	mu       sync.Mutex
	loading  bool
	content  template.HTML
	replaced bool
}

func (v *BufferedViewport) ShowLoader() {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()
}

func (v *BufferedViewport) HideLoader() {
	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()
}

// Replace swaps the viewport contents for fragment.
func (v *BufferedViewport) Replace(fragment template.HTML) {
	v.mu.Lock()
	v.content = fragment
	v.replaced = true
	v.mu.Unlock()
}

// Content returns the current fragment.
func (v *BufferedViewport) Content() template.HTML {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content
}

// Loading reports whether the loader is visible.
func (v *BufferedViewport) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Replaced reports whether any fragment has been swapped in.
func (v *BufferedViewport) Replaced() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.replaced
}
