package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/i18n"
)

// Prefs stores the request language in the context: ?lang (persisted in a
// cookie), then the lang cookie, then Accept-Language.
func Prefs(next http.Handler) http.Handler {
	return PrefsWithDefault(i18n.DefaultLang)(next)
}

// PrefsWithDefault is Prefs with fallback used when the request names no
// language at all.
func PrefsWithDefault(fallback string) func(http.Handler) http.Handler {
	fallback = i18n.Normalize(fallback)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if c, err := r.Cookie("lang"); err == nil {
				lang = c.Value
			}
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: "lang", Value: i18n.Normalize(q), Path: "/", MaxAge: 86400 * 30})
			}
			if lang == "" {
				if accept := r.Header.Get("Accept-Language"); accept != "" {
					lang = i18n.DetectLanguage(accept)
				} else {
					lang = fallback
				}
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), i18n.Normalize(lang))))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Logging logs one line per request.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration", time.Since(start),
			)
		})
	}
}

// Recover turns panics into 500 responses.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic", "path", r.URL.Path, "recover", rec)
					httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
