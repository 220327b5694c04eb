package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/internal/models"
	"github.com/diewo77/doc-designer/internal/services"
)

// DocumentHandler stores invoices and quotes and renders them with a
// style template.
type DocumentHandler struct {
	docs   *services.DocumentService
	render *services.RenderService
	log    *slog.Logger
}

func NewDocumentHandler(docs *services.DocumentService, render *services.RenderService, log *slog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, render: render, log: log}
}

func (h *DocumentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /documents", h.Create)
	mux.HandleFunc("GET /documents/{id}", h.Get)
	mux.HandleFunc("GET /documents/{id}/pdf", h.PDF)
	mux.HandleFunc("POST /render", h.Render)
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := httpx.Decode(r, &doc); err != nil {
		badJSON(w, err)
		return
	}
	doc.ID = 0
	if err := h.docs.Create(&doc); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r.PathValue("id"))
	if !ok || id == 0 {
		writeError(w, r, h.log, services.ErrDocumentNotFound)
		return
	}
	doc, err := h.docs.Get(id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// PDF renders stored document id. ?style= picks a style template (default
// otherwise) and ?format=log returns the draw calls instead of a PDF.
func (h *DocumentHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r.PathValue("id"))
	if !ok || id == 0 {
		writeError(w, r, h.log, services.ErrDocumentNotFound)
		return
	}
	styleID, ok := uintParam(r.URL.Query().Get("style"))
	if !ok {
		writeError(w, r, h.log, services.ErrStyleNotFound)
		return
	}
	out, doc, err := h.render.RenderStored(r.Context(), id, styleID, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.write(w, out, doc.Number)
}

// Render renders a document posted inline without storing it.
func (h *DocumentHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req services.DocumentRequest
	if err := httpx.Decode(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	out, err := h.render.Render(r.Context(), req, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.write(w, out, req.Document.Number)
}

func (h *DocumentHandler) write(w http.ResponseWriter, out services.Output, number string) {
	if out.ContentType == "application/pdf" {
		name := number
		if name == "" {
			name = "document"
		}
		httpx.PDF(w, fmt.Sprintf("%s.pdf", name), out.Data)
		return
	}
	httpx.Blob(w, out.ContentType, out.Data)
}
