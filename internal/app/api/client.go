/*
Package api is the frontend's single pre-configured client for the backend REST API.

A Client is created once at startup with the backend base URL and default headers.
Each page request obtains a Conn from Client.For: the Conn forwards the browser's
session cookie to the backend, relays Set-Cookie headers from the backend to the
browser, and inherits the page request's context so that a client disconnect cancels
any backend call still in flight.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lancini/internal/pkg/logx"
)

const (
	// DefaultTimeout bounds one backend call.
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is read to find a message.
	maxErrorBody = 64 << 10
)

// ResponseInterceptor sees every backend response before it is decoded.
// It may replace the response or fail the call.
type ResponseInterceptor func(res *http.Response) (*http.Response, error)

// Passthrough is the installed interceptor: it returns the response unchanged.
func Passthrough(res *http.Response) (*http.Response, error) {
	return res, nil
}

// Config configures a Client.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	SessionCookie string
	SecureCookies bool

	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper

	// Interceptor defaults to Passthrough.
	Interceptor ResponseInterceptor
}

// Client is the shared backend client. It is safe for concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	headers     http.Header
	cookieName  string
	secure      bool
	interceptor ResponseInterceptor
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	interceptor := cfg.Interceptor
	if interceptor == nil {
		interceptor = Passthrough
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			// Redirects from the API are surfaced to the caller, not followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		headers:     headers,
		cookieName:  cfg.SessionCookie,
		secure:      cfg.SecureCookies,
		interceptor: interceptor,
	}, nil
}

// CookieName returns the name of the session cookie the client forwards.
func (c *Client) CookieName() string {
	return c.cookieName
}

// Conn is a Client bound to one browser request.
type Conn struct {
	c       *Client
	ctx     context.Context
	w       http.ResponseWriter
	session string
}

// For binds the client to the browser request r; cookies set by the backend are
// relayed to w. A nil w drops them.
func (c *Client) For(w http.ResponseWriter, r *http.Request) *Conn {
	conn := &Conn{c: c, ctx: r.Context(), w: w}
	if cookie, err := r.Cookie(c.cookieName); err == nil {
		conn.session = cookie.Value
	}
	return conn
}

// Session returns the session cookie value the Conn currently forwards.
func (s *Conn) Session() string {
	return s.session
}

// ExpireSession tells the browser to drop the session cookie and stops forwarding it.
func (s *Conn) ExpireSession() {
	s.session = ""
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.c.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// endpoint joins the base URL with path, which must already be escaped.
func (s *Conn) endpoint(path string, query url.Values) string {
	u := *s.c.base
	escaped := strings.TrimRight(u.EscapedPath(), "/") + "/" + strings.TrimLeft(path, "/")
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
		u.RawPath = escaped
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one backend call. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response body.
func (s *Conn) do(method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Op: op, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(s.ctx, method, s.endpoint(path, query), reader)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}

	for k, v := range s.c.headers {
		httpReq.Header[k] = append([]string(nil), v...)
	}
	if s.session != "" {
		httpReq.AddCookie(&http.Cookie{Name: s.c.cookieName, Value: s.session})
	}

	res, err := s.c.http.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}

	intercepted, err := s.c.interceptor(res)
	if err != nil {
		res.Body.Close()
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	res = intercepted
	defer res.Body.Close()

	s.relayCookies(res)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &Error{Kind: KindBackend, Op: op, Status: res.StatusCode}
		apiErr.Message = readErrorMessage(res.Body)
		logx.Ctx(s.ctx).Debug().
			Str("op", op).
			Int("status", res.StatusCode).
			Str("message", apiErr.Message).
			Msg("Backend call failed")
		return apiErr
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}

	return nil
}

// relayCookies forwards Set-Cookie headers to the browser and tracks changes to the
// session cookie so that later calls on this Conn use the new value.
func (s *Conn) relayCookies(res *http.Response) {
	for _, cookie := range res.Cookies() {
		if cookie.Name != s.c.cookieName {
			continue
		}
		if cookie.Value == "" || cookie.MaxAge < 0 ||
			(!cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())) {
			s.session = ""
		} else {
			s.session = cookie.Value
		}
	}

	if s.w == nil {
		return
	}
	for _, line := range res.Header.Values("Set-Cookie") {
		s.w.Header().Add("Set-Cookie", line)
	}
}

// readErrorMessage extracts the "message" (or "error") field of a JSON error body.
func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func (s *Conn) get(path string, query url.Values, out any) error {
	return s.do(http.MethodGet, path, query, nil, out)
}

func (s *Conn) post(path string, body, out any) error {
	return s.do(http.MethodPost, path, nil, body, out)
}

func (s *Conn) put(path string, body, out any) error {
	return s.do(http.MethodPut, path, nil, body, out)
}
