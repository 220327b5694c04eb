package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/internal/models"
	"github.com/diewo77/doc-designer/internal/services"
	"github.com/diewo77/doc-designer/validation"
)

type StyleHandler struct {
	styles *services.StyleService
	log    *slog.Logger
}

func NewStyleHandler(styles *services.StyleService, log *slog.Logger) *StyleHandler {
	return &StyleHandler{styles: styles, log: log}
}

func (h *StyleHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /styles", h.List)
	mux.HandleFunc("POST /styles", h.Create)
	mux.HandleFunc("GET /styles/{id}", h.Get)
	mux.HandleFunc("PUT /styles/{id}", h.Update)
}

func (h *StyleHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.styles.List()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// Get returns style id; "default" selects the default style.
func (h *StyleHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	var id uint
	if raw != "default" {
		var ok bool
		if id, ok = uintParam(raw); !ok || id == 0 {
			writeError(w, r, h.log, services.ErrStyleNotFound)
			return
		}
	}
	st, err := h.styles.Get(id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (h *StyleHandler) decode(w http.ResponseWriter, r *http.Request) (models.StyleTemplate, bool) {
	st := models.DefaultStyleTemplate()
	st.IsDefault = false
	if err := httpx.Decode(r, &st); err != nil {
		badJSON(w, err)
		return st, false
	}
	if v := validation.Style(st); !v.Empty() {
		writeError(w, r, h.log, &services.ValidationError{Violations: v})
		return st, false
	}
	return st, true
}

// Create stores a style. Omitted fields keep the built-in defaults.
func (h *StyleHandler) Create(w http.ResponseWriter, r *http.Request) {
	st, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.styles.Create(&st); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, st)
}

func (h *StyleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r.PathValue("id"))
	if !ok || id == 0 {
		writeError(w, r, h.log, services.ErrStyleNotFound)
		return
	}
	st, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.styles.Update(id, &st); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}
