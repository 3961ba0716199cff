// Package queries serves the document browser over HTTP and websocket.
// Every request or connection gets its own view instance.
package queries

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/render"
	"github.com/ziadkadry99/docbrowser/internal/view"
)

// SocketPath is the websocket endpoint of the live view.
const SocketPath = "/ws/datastore/queries"

// requestTimeout bounds the plain HTTP routes. The websocket route is
// long-lived and is left out.
const requestTimeout = 60 * time.Second

// Handler mounts the document browser routes.
type Handler struct {
	backend  view.Backend
	renderer *render.Renderer
	activity view.ActivityLog
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Handler. activity may be nil.
func New(backend view.Backend, renderer *render.Renderer, activity view.ActivityLog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		backend:  backend,
		renderer: renderer,
		activity: activity,
		logger:   logger.Named("queries"),
		now:      time.Now,
	}
}

// RegisterRoutes mounts all document browser routes onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get(nav.BasePath, h.handlePage)
		r.Get(nav.BasePath+"/autocomplete", h.handleAutocomplete)
		r.Post(nav.BasePath+"/search", h.handleSearch)
		r.Post(nav.BasePath+"/new", h.handleNew)
	})
	r.Get(SocketPath, h.handleWebSocket)
}

func (h *Handler) newView(navigator nav.Navigator, viewport render.Viewport) *view.View {
	opts := []view.Option{
		view.WithLogger(h.logger),
		view.WithClock(h.now),
	}
	if h.activity != nil {
		opts = append(opts, view.WithActivityLog(h.activity))
	}
	return view.New(h.backend, h.renderer, navigator, viewport, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
