package httpz

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/taigaclone/pagesmoke/view"
)

// NewHandler returns an http.Handler that serves the stand-in application.
func NewHandler(logger *zerolog.Logger) (http.Handler, error) {
	router := chi.NewRouter()

	env := &environment{
		logger: logger,
		pages:  make(map[string]*pageSpec, len(pageSpecs)),
	}
	for _, ps := range pageSpecs {
		env.pages[ps.path] = ps
	}

	router.Use(middleware.Compress(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)

	router.Use(hlog.NewHandler(*logger))
	router.Use(hlog.RequestIDHandler("request_id", "x-request-id"))
	router.Use(hlog.MethodHandler("method"))
	router.Use(hlog.URLHandler("url"))
	router.Use(hlog.RemoteAddrHandler("remote_ip"))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("HTTP request")
	}))

	router.Use(middleware.Recoverer)

	router.Use(setContextValue(ctxKeyEnvironment, env))

	for _, ps := range pageSpecs {
		router.Get(ps.path, servePage)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		err := view.Render(view.Page{
			Title:   "Not Found | " + appName,
			Heading: "Page not found",
			Nav:     navigation,
		}).Render(r.Context(), w)
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("failed to render not found page")
		}
	})

	return router, nil
}

func servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := ctx.Value(ctxKeyEnvironment).(*environment)

	ps, ok := env.pages[chi.RouteContext(ctx).RoutePattern()]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := ps.page
	page.Nav = navigation
	page.Active = ps.path

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := view.Render(page).Render(ctx, w)
	if err != nil {
		env.logger.Warn().Err(err).Str("path", ps.path).Msg("failed to render page")
	}
}
