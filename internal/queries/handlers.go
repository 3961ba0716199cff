package queries

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docbrowser/internal/documents"
	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/render"
	"github.com/ziadkadry99/docbrowser/internal/view"
)

const pageTitle = "Documents"

// autocompleteResponse is the JSON body of the autocomplete endpoint.
type autocompleteResponse struct {
	Term  string            `json:"term"`
	Items []view.Suggestion `json:"items"`
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	vp := &render.BufferedViewport{}
	v := h.newView(&nav.Recorder{}, vp)
	defer v.UnloadView()

	if err := v.LoadView(r.Context(), view.Params{Path: r.URL.RequestURI()}); err != nil {
		h.logger.Error("loading view", zap.String("path", r.URL.RequestURI()), zap.Error(err))
		http.Error(w, "documents backend unavailable", http.StatusBadGateway)
		return
	}

	page, err := h.renderer.Page(pageTitle, vp)
	if err != nil {
		h.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (h *Handler) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	v := h.newView(&nav.Recorder{}, &render.BufferedViewport{})

	items, err := v.Autocomplete(r.Context(), term)
	if err != nil {
		h.logger.Warn("autocomplete failed", zap.String("term", term), zap.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, autocompleteResponse{Term: term, Items: items})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("term")
	rec := &nav.Recorder{}
	v := h.newView(rec, &render.BufferedViewport{})

	if err := v.Submit(r.Context(), term); err != nil {
		h.logger.Warn("search submit failed", zap.String("term", term), zap.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	target, _ := rec.Take()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	docType := r.PostFormValue("type")
	if !documents.Type(docType).IsBrowsable() {
		http.Error(w, "unsupported document type", http.StatusBadRequest)
		return
	}

	rec := &nav.Recorder{}
	v := h.newView(rec, &render.BufferedViewport{})

	if err := v.CreateDocument(r.Context(), docType); err != nil {
		h.logger.Error("creating document", zap.String("type", docType), zap.Error(err))
		http.Error(w, "could not create document", http.StatusBadGateway)
		return
	}

	target, _ := rec.Take()
	http.Redirect(w, r, target, http.StatusSeeOther)
}
