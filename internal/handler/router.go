package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"lancini/internal/app/session"
	"lancini/internal/pkg/auth/jwt"
	"lancini/internal/pkg/logx"
	"lancini/internal/pkg/resp"
)

const (
	LoginRate    = 0.1
	LoginBurst   = 5
	FormRate     = 0.5
	FormBurst    = 10
	SessionRate  = 2
	SessionBurst = 20
)

// Router sets up the HTTP routing table. The cookie guard runs on every request;
// pages additionally get a session store, and dashboard pages require it to hold an
// authenticated user.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger("/health", "/metrics"))
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)
	r.Use(deps.Policy.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Lancini Web",
		}
		resp.RespondSuccess(w, r, data)
	})
	r.Handle("/metrics", deps.Metrics.Handler())

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	cookie := deps.API.CookieName()
	onFail := HandleFormTokenFailure(deps)
	protect := func(form string) func(http.Handler) http.Handler {
		return jwt.Protect(deps.Signer, form, cookie, onFail)
	}

	r.Group(func(pages chi.Router) {
		pages.Use(session.Load(deps.API, deps.Metrics))

		pages.Get("/", HandleHome(deps))
		pages.Post("/logout", HandleLogout(deps))

		pages.Route("/auth", func(auth chi.Router) {
			auth.With(protect("login")).Get("/login", HandleLoginPage(deps))
			auth.With(protect("login")).Post("/login", HandleLogin(deps))
			auth.Get("/verify-email", HandleVerifyEmail(deps))
		})

		pages.Route("/dashboard", func(dash chi.Router) {
			dash.Use(session.RequireAuth(deps.Policy.LoginPath))

			dash.Get("/", HandleDashboard(deps))
			dash.Get("/applications", HandleApplications(deps))

			dash.Get("/messages", HandleMessages(deps))
			dash.Get("/messages/{partnerID}", HandleThread(deps))

			dash.With(protect("settings")).Get("/settings", HandleSettingsPage(deps))
			dash.With(protect("settings")).Post("/settings", HandleChangePassword(deps))

			dash.With(protect("projects")).Get("/projects", HandleProjects(deps))
			dash.With(protect("projects")).Post("/projects/{projectID}/like", HandleLikeProject(deps))

			dash.With(protect("cv")).Get("/cv", HandleCVPage(deps))
			dash.With(protect("cv")).Post("/cv", HandleCVAction(deps))
		})

		pages.Route("/api", func(api chi.Router) {
			api.Use(c.Handler)
			api.Use(deps.SessionLimiter.Middleware)
			api.Get("/session", HandleSession(deps))
		})

		pages.NotFound(HandleNotFound(deps))
	})

	return r
}
