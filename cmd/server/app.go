package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/httpx"
	"github.com/diewo77/doc-designer/internal/config"
	"github.com/diewo77/doc-designer/internal/editor"
	"github.com/diewo77/doc-designer/internal/geometry"
	"github.com/diewo77/doc-designer/internal/handlers"
	"github.com/diewo77/doc-designer/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	db       *gorm.DB
	log      *slog.Logger
	sessions *services.SessionStore
	handler  http.Handler
}

// NewApp wires services and handlers on top of db.
func NewApp(db *gorm.DB, cfg *config.Config, log *slog.Logger) *App {
	a := &App{
		mux: http.NewServeMux(),
		db:  db,
		log: log,
		sessions: services.NewSessionStore(
			editor.WithHistoryCapacity(cfg.Editor.HistoryCapacity),
			editor.WithZoomRange(geometry.ZoomRange{Min: cfg.Editor.ZoomMin, Max: cfg.Editor.ZoomMax}),
		),
	}

	docs := services.NewDocumentService(db)
	styles := services.NewStyleService(db)
	templates := services.NewTemplateService(db)
	fetcher := services.HTTPFetcher{Client: &http.Client{}, Timeout: cfg.Render.LogoFetchTimeout}
	renderer := services.NewRenderService(docs, styles, fetcher, log)

	handlers.NewTemplateHandler(templates, renderer, log).Register(a.mux)
	handlers.NewEditorHandler(a.sessions, templates, log).Register(a.mux)
	handlers.NewStyleHandler(styles, log).Register(a.mux)
	handlers.NewDocumentHandler(docs, renderer, log).Register(a.mux)
	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	a.handler = handlers.PrefsWithDefault(cfg.Render.DefaultLang)(
		handlers.Recover(log)(handlers.Logging(log)(a.mux)),
	)
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// health reports whether the database answers.
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": a.sessions.Len()})
}

// PruneSessions closes idle editing sessions until ctx is done.
func (a *App) PruneSessions(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	tick := time.NewTicker(ttl / 4)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if n := a.sessions.Prune(ttl); n > 0 {
				a.log.Info("editor sessions pruned", "count", n)
			}
		}
	}
}
