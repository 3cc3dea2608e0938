package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lancini/internal/app/api"
	"lancini/internal/pkg/metrics"
)

type backendCalls struct {
	me, logout int
}

func newBackend(t *testing.T, meStatus int) (*api.Client, *backendCalls) {
	t.Helper()

	calls := &backendCalls{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			calls.me++
			w.WriteHeader(meStatus)
			if meStatus == http.StatusOK {
				io.WriteString(w, `{"user":{"id":"u1","email":"s@uni.tn","role":"student"}}`)
			}
		case "/auth/logout":
			calls.logout++
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL, SessionCookie: "token"})
	require.NoError(t, err)
	return client, calls
}

func serve(h http.Handler, cookie string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestLoadWithoutCookieSkipsBackend(t *testing.T) {
	client, calls := newBackend(t, http.StatusOK)

	var st State
	h := Load(client, metrics.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st = FromContext(r.Context()).Snapshot()
		assert.NotNil(t, ConnFromContext(r.Context()))
	}))

	serve(h, "")

	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, 0, calls.me)
}

func TestLoadChecksValidSession(t *testing.T) {
	client, calls := newBackend(t, http.StatusOK)

	var st State
	h := Load(client, metrics.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st = FromContext(r.Context()).Snapshot()
	}))

	serve(h, "valid")

	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "u1", st.User.ID)
	assert.Equal(t, 1, calls.me)
	assert.Equal(t, 0, calls.logout)
}

func TestRequireAuthRedirectsAndScrubsStaleCookie(t *testing.T) {
	client, calls := newBackend(t, http.StatusUnauthorized)

	reached := false
	h := Load(client, metrics.New())(RequireAuth("/auth/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})))

	rr := serve(h, "stale")

	assert.False(t, reached)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login", rr.Header().Get("Location"))
	assert.Equal(t, 1, calls.logout)

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "token", cookies[len(cookies)-1].Name)
	assert.Equal(t, -1, cookies[len(cookies)-1].MaxAge)
}
