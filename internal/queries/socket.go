package queries

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docbrowser/internal/nav"
	"github.com/ziadkadry99/docbrowser/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Inbound frame types.
const (
	frameLoad         = "load"
	frameNavigate     = "navigate"
	frameAutocomplete = "autocomplete"
	frameSubmit       = "submit"
	frameCreate       = "create"
)

// Outbound-only frame types.
const (
	frameLoader   = "loader"
	frameViewport = "viewport"
	frameError    = "error"
)

// clientFrame is the incoming websocket message format.
type clientFrame struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`     // load, navigate
	Term    string `json:"term,omitempty"`     // autocomplete, submit
	DocType string `json:"doc_type,omitempty"` // create
}

// serverFrame is the outgoing websocket message format.
type serverFrame struct {
	Type       string            `json:"type"`
	Loading    bool              `json:"loading,omitempty"`
	HTML       template.HTML     `json:"html,omitempty"`
	Term       string            `json:"term,omitempty"`
	Items      []view.Suggestion `json:"items,omitempty"`
	Path       string            `json:"path,omitempty"`
	ClearInput bool              `json:"clear_input,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// session is the viewport and navigator of one websocket connection. Frames
// are handled one at a time on the read loop, so writes never overlap.
type session struct {
	conn       *websocket.Conn
	logger     *zap.Logger
	clearInput bool
}

func (s *session) ShowLoader() { s.send(serverFrame{Type: frameLoader, Loading: true}) }

func (s *session) HideLoader() { s.send(serverFrame{Type: frameLoader, Loading: false}) }

func (s *session) Replace(fragment template.HTML) {
	s.send(serverFrame{Type: frameViewport, HTML: fragment})
}

func (s *session) ClearInput() { s.clearInput = true }

func (s *session) NavigateTo(path string) {
	s.send(serverFrame{Type: frameNavigate, Path: path, ClearInput: s.clearInput})
	s.clearInput = false
}

func (s *session) send(f serverFrame) {
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Warn("websocket write", zap.String("frame", f.Type), zap.Error(err))
	}
}

func (s *session) sendError(message string) {
	s.send(serverFrame{Type: frameError, Message: message})
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := &session{conn: conn, logger: h.logger}
	v := h.newView(sess, sess)
	defer v.UnloadView()

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var in clientFrame
		if err := json.Unmarshal(msg, &in); err != nil {
			sess.sendError("invalid message format")
			continue
		}

		switch in.Type {
		case frameLoad, frameNavigate:
			path := in.Path
			if path == "" {
				path = nav.BasePath
			}
			if in.Type == frameLoad {
				err = v.LoadView(ctx, view.Params{Path: path})
			} else {
				err = v.HandleNavigationChange(ctx, path)
			}
			if err != nil {
				h.logger.Error("loading view", zap.String("path", path), zap.Error(err))
				sess.sendError("documents backend unavailable")
			}
		case frameAutocomplete:
			items, err := v.Autocomplete(ctx, in.Term)
			if err != nil {
				h.logger.Warn("autocomplete failed", zap.String("term", in.Term), zap.Error(err))
				continue
			}
			sess.send(serverFrame{Type: frameAutocomplete, Term: in.Term, Items: items})
		case frameSubmit:
			if err := v.Submit(ctx, in.Term); err != nil {
				h.logger.Warn("search submit failed", zap.String("term", in.Term), zap.Error(err))
			}
		case frameCreate:
			if err := v.CreateDocument(ctx, in.DocType); err != nil {
				h.logger.Error("creating document", zap.String("type", in.DocType), zap.Error(err))
				sess.sendError("could not create document")
			}
		default:
			sess.sendError("unknown message type: " + in.Type)
		}
	}
}
