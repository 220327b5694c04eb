// Package handlers exposes templates, editing sessions, styles and
// document rendering over JSON HTTP.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/services"
)

// writeError maps service errors to statuses. Validation details are
// translated to the request language.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_request", verr.Violations.Localize(i18n.LangFrom(r.Context())))
	case errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrStyleNotFound),
		errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		httpx.JSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrUnknownFormat), errors.Is(err, services.ErrInvalidRequest):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func badJSON(w http.ResponseWriter, err error) {
	httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
}

// uintParam parses a numeric path or query value; empty means 0.
func uintParam(s string) (uint, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(s, 10, 64)
	return uint(n), err == nil
}
