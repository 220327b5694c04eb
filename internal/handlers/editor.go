package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/internal/editor"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/services"
)

// EditorHandler drives in-memory editing sessions. Pointer gestures span
// several requests: move/resize with phase begin, update, then end or cancel.
// The pending gesture lives on the session and goes away with it.
type EditorHandler struct {
	sessions  *services.SessionStore
	templates *services.TemplateService
	log       *slog.Logger
}

func NewEditorHandler(sessions *services.SessionStore, templates *services.TemplateService, log *slog.Logger) *EditorHandler {
	return &EditorHandler{sessions: sessions, templates: templates, log: log}
}

func (h *EditorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /editor/sessions", h.Open)
	mux.HandleFunc("GET /editor/sessions/{id}", h.State)
	mux.HandleFunc("DELETE /editor/sessions/{id}", h.Close)
	mux.HandleFunc("POST /editor/sessions/{id}/blocks", h.AddBlock)
	mux.HandleFunc("PATCH /editor/sessions/{id}/blocks/{block}", h.UpdateBlock)
	mux.HandleFunc("DELETE /editor/sessions/{id}/blocks/{block}", h.DeleteBlock)
	mux.HandleFunc("POST /editor/sessions/{id}/blocks/{block}/duplicate", h.Duplicate)
	mux.HandleFunc("POST /editor/sessions/{id}/blocks/{block}/front", h.BringToFront)
	mux.HandleFunc("POST /editor/sessions/{id}/blocks/{block}/back", h.SendToBack)
	mux.HandleFunc("POST /editor/sessions/{id}/commit", h.Commit)
	mux.HandleFunc("POST /editor/sessions/{id}/undo", h.Undo)
	mux.HandleFunc("POST /editor/sessions/{id}/redo", h.Redo)
	mux.HandleFunc("PATCH /editor/sessions/{id}/page", h.UpdatePage)
	mux.HandleFunc("POST /editor/sessions/{id}/select", h.Select)
	mux.HandleFunc("PUT /editor/sessions/{id}/zoom", h.Zoom)
	mux.HandleFunc("POST /editor/sessions/{id}/move", h.Move)
	mux.HandleFunc("POST /editor/sessions/{id}/resize", h.Resize)
	mux.HandleFunc("POST /editor/sessions/{id}/save", h.Save)
}

type openRequest struct {
	TemplateID string          `json:"template_id,omitempty"`
	Template   json.RawMessage `json:"template,omitempty"`
}

// Open starts a session from a stored template or an inline one.
func (h *EditorHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	var t layout.Template
	switch {
	case req.TemplateID != "":
		var err error
		if t, err = h.templates.Get(req.TemplateID); err != nil {
			writeError(w, r, h.log, err)
			return
		}
	case len(req.Template) > 0:
		var err error
		if t, err = layout.Decode(req.Template); err != nil {
			badJSON(w, err)
			return
		}
	default:
		writeError(w, r, h.log, services.ErrInvalidRequest)
		return
	}
	sess := h.sessions.Open(t)
	h.log.Info("editor session opened", "session", sess.ID, "template", t.ID)
	httpx.JSON(w, http.StatusCreated, sess.State())
}

func (h *EditorHandler) session(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return nil, false
	}
	return sess, true
}

// result answers with the session state, or 404/409 when the editor
// ignored the operation.
func (h *EditorHandler) result(w http.ResponseWriter, sess *services.Session, res editor.Result) {
	switch res {
	case editor.NotFound:
		httpx.JSONError(w, http.StatusNotFound, "block_not_found", nil)
	case editor.Locked:
		httpx.JSONError(w, http.StatusConflict, "block_locked", nil)
	default:
		httpx.JSON(w, http.StatusOK, sess.State())
	}
}

func (h *EditorHandler) State(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.session(w, r); ok {
		httpx.JSON(w, http.StatusOK, sess.State())
	}
}

func (h *EditorHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sessions.Close(id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addBlockRequest struct {
	Type layout.BlockType `json:"type"`
	X    *float64         `json:"x,omitempty"`
	Y    *float64         `json:"y,omitempty"`
}

func (h *EditorHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req addBlockRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	if !req.Type.Valid() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", layout.ErrUnknownBlockType.Error())
		return
	}
	sess.Do(func(e *editor.Editor) {
		if req.X != nil && req.Y != nil {
			e.AddBlockAt(req.Type, *req.X, *req.Y)
			return
		}
		e.AddBlock(req.Type)
	})
	httpx.JSON(w, http.StatusCreated, sess.State())
}

// patchRequest is a BlockPatch whose content is decoded against the
// target block's type.
type patchRequest struct {
	layout.BlockPatch
	Content json.RawMessage `json:"content,omitempty"`
}

// UpdateBlock applies a partial update without committing it.
func (h *EditorHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req patchRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	id := r.PathValue("block")
	var (
		res    editor.Result
		decErr error
	)
	sess.Do(func(e *editor.Editor) {
		patch := req.BlockPatch
		if len(req.Content) > 0 {
			t := e.Template()
			b, found := t.Block(id)
			if !found {
				res = editor.NotFound
				return
			}
			if patch.Content, decErr = layout.DecodeContent(b.Type(), req.Content); decErr != nil {
				return
			}
		}
		res = e.UpdateBlock(id, patch)
	})
	if decErr != nil {
		badJSON(w, decErr)
		return
	}
	h.result(w, sess, res)
}

func (h *EditorHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	h.blockOp(w, r, (*editor.Editor).DeleteBlock)
}

func (h *EditorHandler) BringToFront(w http.ResponseWriter, r *http.Request) {
	h.blockOp(w, r, (*editor.Editor).BringToFront)
}

func (h *EditorHandler) SendToBack(w http.ResponseWriter, r *http.Request) {
	h.blockOp(w, r, (*editor.Editor).SendToBack)
}

func (h *EditorHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	h.blockOp(w, r, func(e *editor.Editor, id string) editor.Result {
		_, res := e.DuplicateBlock(id)
		return res
	})
}

func (h *EditorHandler) blockOp(w http.ResponseWriter, r *http.Request, op func(*editor.Editor, string) editor.Result) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var res editor.Result
	sess.Do(func(e *editor.Editor) { res = op(e, r.PathValue("block")) })
	h.result(w, sess, res)
}

func (h *EditorHandler) Commit(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, (*editor.Editor).CommitChanges)
}

func (h *EditorHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(e *editor.Editor) { e.Undo() })
}

func (h *EditorHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.sessionOp(w, r, func(e *editor.Editor) { e.Redo() })
}

func (h *EditorHandler) sessionOp(w http.ResponseWriter, r *http.Request, op func(*editor.Editor)) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Do(op)
	httpx.JSON(w, http.StatusOK, sess.State())
}

func (h *EditorHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var patch layout.PageSettingsPatch
	if err := httpx.Decode(r, &patch); err != nil {
		badJSON(w, err)
		return
	}
	sess.Do(func(e *editor.Editor) { e.UpdatePageSettings(patch) })
	httpx.JSON(w, http.StatusOK, sess.State())
}

type selectRequest struct {
	BlockID string `json:"block_id"`
}

// Select selects a block; an empty id clears the selection.
func (h *EditorHandler) Select(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	res := editor.Applied
	sess.Do(func(e *editor.Editor) {
		if req.BlockID == "" {
			e.ClearSelection()
			return
		}
		res = e.SelectBlock(req.BlockID)
	})
	h.result(w, sess, res)
}

type zoomRequest struct {
	Zoom float64 `json:"zoom"`
}

func (h *EditorHandler) Zoom(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req zoomRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	sess.Do(func(e *editor.Editor) { e.SetZoom(req.Zoom) })
	httpx.JSON(w, http.StatusOK, sess.State())
}

// Gesture phases.
const (
	phaseBegin  = "begin"
	phaseUpdate = "update"
	phaseEnd    = "end"
	phaseCancel = "cancel"
)

type gestureRequest struct {
	Phase   string  `json:"phase"`
	BlockID string  `json:"block_id,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
}

var errNoGesture = errors.New("no gesture in progress")

func (h *EditorHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, editor.Move)
}

func (h *EditorHandler) Resize(w http.ResponseWriter, r *http.Request) {
	h.gesture(w, r, editor.Resize)
}

// gesture runs one phase of a pointer gesture. dx and dy are the total
// pixel deltas since begin, not per-frame increments.
func (h *EditorHandler) gesture(w http.ResponseWriter, r *http.Request, kind editor.GestureKind) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req gestureRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	res := editor.Applied
	var err error
	sess.Gesture(func(e *editor.Editor, g *editor.Gesture) *editor.Gesture {
		switch req.Phase {
		case phaseBegin:
			// A new begin ends the pending gesture even when it fails.
			if g != nil {
				g.End()
			}
			if kind == editor.Resize {
				g, res = e.BeginResize(req.BlockID)
			} else {
				g, res = e.BeginMove(req.BlockID)
			}
			return g
		case phaseUpdate:
			if g == nil {
				err = errNoGesture
				return nil
			}
			res = g.Update(req.DX, req.DY)
			return g
		case phaseEnd, phaseCancel:
			if g == nil {
				err = errNoGesture
				return nil
			}
			if req.Phase == phaseEnd {
				g.End()
			} else {
				g.Cancel()
			}
			return nil
		}
		err = errors.New("unknown phase " + req.Phase)
		return g
	})
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	h.result(w, sess, res)
}

// Save writes the session template back to storage.
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var t layout.Template
	sess.Do(func(e *editor.Editor) { t = e.Template() })
	var (
		saved layout.Template
		err   error
	)
	if _, getErr := h.templates.Get(t.ID); errors.Is(getErr, services.ErrTemplateNotFound) {
		saved, err = h.templates.Create(t)
	} else {
		saved, err = h.templates.Save(t.ID, t)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("template saved", "session", sess.ID, "template", saved.ID, "blocks", len(saved.Blocks))
	httpx.JSON(w, http.StatusOK, saved)
}
