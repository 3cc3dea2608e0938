package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"lancini/internal/app/api"
	"lancini/internal/app/storage"
	"lancini/internal/configs"
	"lancini/internal/pkg/auth/guard"
	"lancini/internal/pkg/auth/jwt"
	"lancini/internal/pkg/limiter"
	"lancini/internal/pkg/metrics"
	"lancini/internal/view"
)

const testUserJSON = `{"user":{"id":"u1","email":"amira@uni.tn","role":"student","name":"Amira"}}`

// fakeBackend is an in-process stand-in for the REST API. Routes are keyed by
// "METHOD /path"; every hit is recorded.
type fakeBackend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
	bodies map[string]string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	fb := &fakeBackend{routes: map[string]http.HandlerFunc{}, bodies: map[string]string{}}
	fb.on("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err != nil || c.Value != "valid" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Not authenticated"}`)
			return
		}
		io.WriteString(w, testUserJSON)
	})
	fb.on("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
		io.WriteString(w, `{"message":"Logged out"}`)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)

		fb.mu.Lock()
		fb.calls = append(fb.calls, key)
		fb.bodies[key] = string(body)
		h, ok := fb.routes[key]
		fb.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"message":"Route not found"}`)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	return fb, srv
}

func (fb *fakeBackend) on(key string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[key] = h
}

func (fb *fakeBackend) called(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	n := 0
	for _, c := range fb.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) body(key string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.bodies[key]
}

type testApp struct {
	handler http.Handler
	backend *fakeBackend
	deps    *AppDeps
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fb, srv := newFakeBackend(t)

	cfg := &configs.AppConfig{
		Environment: "development",
		Port:        3000,
		APIURL:      srv.URL,
		FormSecret:  "test-secret",
	}

	client, err := api.New(api.Config{BaseURL: srv.URL, SessionCookie: configs.SessionCookieName})
	require.NoError(t, err)

	renderer, err := view.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	deps := &AppDeps{
		Config:         cfg,
		API:            client,
		Renderer:       renderer,
		Assets:         storage.NewStaticResolver("https://cdn.lancini.tn"),
		Signer:         jwt.NewSigner(cfg.FormSecret),
		Metrics:        metrics.New(),
		Policy:         guard.DefaultPolicy(configs.SessionCookieName),
		LoginLimiter:   limiter.NewIPRateLimiter(ctx, rate.Inf, 1),
		FormLimiter:    limiter.NewIPRateLimiter(ctx, rate.Inf, 1),
		SessionLimiter: limiter.NewIPRateLimiter(ctx, rate.Inf, 1),
	}

	return &testApp{handler: Router(deps), backend: fb, deps: deps}
}

func (a *testApp) do(method, target, cookie string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, r)
	return rr
}

var formTokenRe = regexp.MustCompile(`name="_form_token" value="([^"]+)"`)

// formToken loads page and returns the anti-forgery token it embeds.
func (a *testApp) formToken(t *testing.T, page, cookie string) string {
	t.Helper()

	rr := a.do(http.MethodGet, page, cookie, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	m := formTokenRe.FindStringSubmatch(rr.Body.String())
	require.Len(t, m, 2, "no form token on %s", page)
	return m[1]
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) int {
	t.Helper()

	var env struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Code
}

func lastCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
