package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/joestump/cuecard/docs/swagger"
	"github.com/joestump/cuecard/internal/api"
	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/export"
	"github.com/joestump/cuecard/internal/logger"
	"github.com/joestump/cuecard/internal/session"
	"github.com/joestump/cuecard/internal/store"
	"github.com/joestump/cuecard/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Sessions *session.Store
	Coach    *coach.Service
	Capturer export.Capturer
	Events   *store.EventStore
	Log      *zap.Logger
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.Recoverer)

	// Static assets (embedded). fs.Sub so the file server sees css/app.css directly.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/theme", NewThemeHandler().Toggle)

	cards := NewCardsHandler(deps.Sessions, deps.Coach, deps.Capturer, log)
	settings := NewSettingsHandler(deps.Sessions, deps.Coach, log)

	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.Manager().LoadAndSave)

		r.Get("/", cards.Index)
		r.Post("/cards", cards.Create)
		r.Post("/cards/dismiss", cards.Dismiss)
		r.Get("/cards/export.png", cards.Export)

		r.Post("/settings/api-key", settings.SetAPIKey)
		r.Delete("/settings/api-key", settings.ClearAPIKey)
		r.Post("/settings/api-key/delete", settings.ClearAPIKey)
	})

	r.Get("/api/docs/*", httpSwagger.WrapHandler)
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Coach:  deps.Coach,
		Events: deps.Events,
		Log:    log,
	}))

	return r
}
