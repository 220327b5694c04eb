package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/services"
)

type TemplateHandler struct {
	templates *services.TemplateService
	render    *services.RenderService
	log       *slog.Logger
}

func NewTemplateHandler(templates *services.TemplateService, render *services.RenderService, log *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, render: render, log: log}
}

func (h *TemplateHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /templates", h.List)
	mux.HandleFunc("POST /templates", h.Create)
	mux.HandleFunc("GET /templates/{id}", h.Get)
	mux.HandleFunc("PUT /templates/{id}", h.Update)
	mux.HandleFunc("DELETE /templates/{id}", h.Delete)
	mux.HandleFunc("GET /templates/{id}/export", h.Export)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// decodeTemplate reads a whole template body through layout.Decode so the
// block union is checked.
func decodeTemplate(r *http.Request) (layout.Template, error) {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, httpx.MaxBodyBytes))
	if err != nil {
		return layout.Template{}, err
	}
	return layout.Decode(data)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTemplate(r)
	if err != nil {
		badJSON(w, err)
		return
	}
	created, err := h.templates.Create(t)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTemplate(r)
	if err != nil {
		badJSON(w, err)
		return
	}
	saved, err := h.templates.Save(r.PathValue("id"), t)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.PathValue("id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export renders the stored template; ?format=log returns the draw calls.
func (h *TemplateHandler) Export(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out, err := h.render.ExportTemplate(r.Context(), t, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if out.ContentType == "application/pdf" {
		httpx.PDF(w, t.ID+".pdf", out.Data)
		return
	}
	httpx.Blob(w, out.ContentType, out.Data)
}
