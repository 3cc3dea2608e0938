package session

import (
	"context"
	"net/http"

	"lancini/internal/app/api"
	"lancini/internal/pkg/metrics"
)

type contextKey string

const (
	storeKey contextKey = "session_store"
	connKey  contextKey = "api_conn"
)

// Load binds the API client to each request, creates its Store and re-checks the
// session when a session cookie is present. Visitors without a cookie get a settled
// anonymous store and no backend call is made.
func Load(client *api.Client, m *metrics.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn := client.For(w, r)

			var store *Store
			if conn.Session() == "" {
				store = NewAnonymousStore(conn)
				m.ObserveSessionCheck(metrics.SessionSkipped)
			} else {
				store = NewStore(conn)
				if store.CheckAuth() {
					m.ObserveSessionCheck(metrics.SessionAuthenticated)
				} else {
					m.ObserveSessionCheck(metrics.SessionRejected)
				}
			}

			ctx := context.WithValue(r.Context(), storeKey, store)
			ctx = context.WithValue(ctx, connKey, conn)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects to loginPath when the session did not check out. CheckAuth has
// already scrubbed the stale cookie, so the route guard lets the login page through.
func RequireAuth(loginPath string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := FromContext(r.Context())
			if store == nil || !store.IsAuthenticated() {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext returns the request's Store, or nil outside Load.
func FromContext(ctx context.Context) *Store {
	store, _ := ctx.Value(storeKey).(*Store)
	return store
}

// ConnFromContext returns the request-bound API connection, or nil outside Load.
func ConnFromContext(ctx context.Context) *api.Conn {
	conn, _ := ctx.Value(connKey).(*api.Conn)
	return conn
}
