// Package render materializes named HTML templates into page fragments.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
)

//go:embed templates
var templatesFS embed.FS

const layoutNamespace = "layout"

// Renderer holds one template set per namespace. A namespace is the
// directory of its templates relative to the templates root, for example
// "views/datastore_queries".
type Renderer struct {
	namespaces map[string]*template.Template
}

// New loads the templates embedded in the binary.
func New() (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	return NewFromFS(sub)
}

// NewFromFS loads every directory of *.html files in fsys as a namespace.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{namespaces: make(map[string]*template.Template)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		matches, err := fs.Glob(fsys, path.Join(p, "*.html"))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		tpl, err := template.New(p).ParseFS(fsys, matches...)
		if err != nil {
			return fmt.Errorf("parsing namespace %s: %w", p, err)
		}
		r.namespaces[p] = tpl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return r, nil
}

// Lookup returns the named template of a namespace.
func (r *Renderer) Lookup(namespace, name string) (*template.Template, error) {
	ns, ok := r.namespaces[namespace]
	if !ok {
		return nil, fmt.Errorf("unknown template namespace %q", namespace)
	}
	tpl := ns.Lookup(name)
	if tpl == nil {
		return nil, fmt.Errorf("template %q not found in %s", name, namespace)
	}
	return tpl, nil
}

// Fragment executes a named template and returns the escaped output.
func (r *Renderer) Fragment(namespace, name string, data any) (template.HTML, error) {
	tpl, err := r.Lookup(namespace, name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s/%s: %w", namespace, name, err)
	}
	// html/template has already escaped every interpolated value.
	return template.HTML(buf.String()), nil
}

type pageData struct {
	Title   string
	Content template.HTML
	Loading bool
}

// Page wraps the current viewport contents in the application layout.
func (r *Renderer) Page(title string, vp *BufferedViewport) ([]byte, error) {
	tpl, err := r.Lookup(layoutNamespace, "page")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tpl.Execute(&buf, pageData{
		Title:   title,
		Content: vp.Content(),
		Loading: vp.Loading(),
	})
	if err != nil {
		return nil, fmt.Errorf("executing layout: %w", err)
	}
	return buf.Bytes(), nil
}
