package handler

import (
	"context"
	"net/http"

	"lancini/internal/app/api"
	"lancini/internal/app/session"
	"lancini/internal/app/storage"
	"lancini/internal/configs"
	"lancini/internal/pkg/auth/guard"
	"lancini/internal/pkg/auth/jwt"
	"lancini/internal/pkg/errs"
	"lancini/internal/pkg/limiter"
	"lancini/internal/pkg/metrics"
	"lancini/internal/view"
)

type AppDeps struct {
	Config   *configs.AppConfig
	API      *api.Client
	Renderer *view.Renderer
	Assets   *storage.Resolver
	Signer   *jwt.Signer
	Metrics  *metrics.Metrics
	Policy   guard.Policy

	// LoginLimiter throttles credential submissions, FormLimiter the other
	// state-changing forms, SessionLimiter the JSON session endpoint.
	LoginLimiter   *limiter.IPRateLimiter
	FormLimiter    *limiter.IPRateLimiter
	SessionLimiter *limiter.IPRateLimiter
}

// FullAssetURL resolves an avatar or image reference for the browser.
func (deps *AppDeps) FullAssetURL(ctx context.Context, ref string) string {
	return deps.Assets.URL(ctx, ref)
}

// page assembles the data shared by every template: session, form token and navigation.
func (deps *AppDeps) page(r *http.Request, title, active string, data any) view.Page {
	p := view.Page{
		Title:     title,
		Active:    active,
		FormToken: jwt.TokenFromContext(r.Context()),
		Data:      data,
	}

	if store := session.FromContext(r.Context()); store != nil {
		st := store.Snapshot()
		p.User = st.User
		p.IsAuthenticated = st.IsAuthenticated
		if st.User != nil {
			p.AvatarURL = deps.FullAssetURL(r.Context(), st.User.Avatar)
		}
	}

	return p
}

func (deps *AppDeps) render(w http.ResponseWriter, r *http.Request, status int, name, title, active string, data any) {
	deps.Renderer.Render(w, r, status, name, deps.page(r, title, active, data))
}

type ErrorData struct {
	Status  int
	Message string
}

func (deps *AppDeps) renderError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	status := customErr.Status
	if status < http.StatusBadRequest {
		status = http.StatusBadRequest
	}
	deps.render(w, r, status, "error", http.StatusText(status), "", ErrorData{
		Status:  status,
		Message: customErr.Message,
	})
}

// conn returns the request-bound backend connection installed by session.Load.
func backendConn(r *http.Request) *api.Conn {
	return session.ConnFromContext(r.Context())
}

func sessionStore(r *http.Request) *session.Store {
	return session.FromContext(r.Context())
}
