package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api/", SessionCookie: "token"})
	require.NoError(t, err)
	return c
}

func browserRequest(cookie string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	return r
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "localhost"})
	assert.Error(t, err)
}

func TestConnForwardsCookieAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		cookie, err := r.Cookie("token")
		require.NoError(t, err)
		assert.Equal(t, "abc", cookie.Value)

		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"_id": "u1", "email": "s@uni.tn", "role": "student"},
		})
	})

	user, err := c.For(httptest.NewRecorder(), browserRequest("abc")).Me()
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "s@uni.tn", user.Email)
}

func TestMeAcceptsBareUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"u2","email":"e@corp.tn","role":"enterprise"}`)
	})

	user, err := c.For(nil, browserRequest("abc")).Me()
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
}

func TestMeRejectsUnknownRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"id":"u3","email":"x@y.tn","role":"superuser"}}`)
	})

	user, err := c.For(nil, browserRequest("abc")).Me()
	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnknownRole)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindDecode, apiErr.Kind)
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Current password is incorrect"}`)
	})

	err := c.For(nil, browserRequest("abc")).ChangePassword("old", "new")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindBackend, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Current password is incorrect", MessageOr(err, "fallback"))
}

func TestBackendErrorWithoutMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "<html>nope</html>")
	})

	_, err := c.For(nil, browserRequest("abc")).Me()
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "fallback", MessageOr(err, "fallback"))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: base, SessionCookie: "token"})
	require.NoError(t, err)

	_, err = c.For(nil, browserRequest("")).Conversations()
	assert.True(t, IsTransport(err))
	assert.Equal(t, "fallback", MessageOr(err, "fallback"))
	assert.Equal(t, 0, StatusOf(err))
}

func TestCancelledRequestContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := browserRequest("abc").WithContext(ctx)
	_, err := c.For(nil, r).Me()
	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCookieRelay(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "fresh", Path: "/", HttpOnly: true})
			io.WriteString(w, `{"user":{"id":"u1","email":"s@uni.tn","role":"student"}}`)
		case "/api/auth/me":
			cookie, err := r.Cookie("token")
			require.NoError(t, err)
			assert.Equal(t, "fresh", cookie.Value)
			io.WriteString(w, `{"id":"u1","email":"s@uni.tn","role":"student"}`)
		}
	})

	rr := httptest.NewRecorder()
	conn := c.For(rr, browserRequest(""))

	_, err := conn.Login("s@uni.tn", "pw")
	require.NoError(t, err)
	assert.Equal(t, "fresh", conn.Session())
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "token=fresh")

	_, err = conn.Me()
	require.NoError(t, err)
}

func TestLogoutExpiresCookieEvenOnFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rr := httptest.NewRecorder()
	conn := c.For(rr, browserRequest("abc"))

	err := conn.Logout()
	assert.Error(t, err)
	assert.Empty(t, conn.Session())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestInterceptorIsConsulted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	calls := 0
	c, err := New(Config{
		BaseURL:       srv.URL,
		SessionCookie: "token",
		Interceptor: func(res *http.Response) (*http.Response, error) {
			calls++
			return Passthrough(res)
		},
	})
	require.NoError(t, err)

	convs, err := c.For(nil, browserRequest("abc")).Conversations()
	require.NoError(t, err)
	assert.Empty(t, convs)
	assert.Equal(t, 1, calls)
}

func TestVerifyEmailSendsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/verify-email", r.URL.Path)
		assert.Equal(t, "tok en", r.URL.Query().Get("token"))
		io.WriteString(w, `{"message":"Email verified"}`)
	})

	msg, err := c.For(nil, browserRequest("")).VerifyEmail("tok en")
	require.NoError(t, err)
	assert.Equal(t, "Email verified", msg)
}
