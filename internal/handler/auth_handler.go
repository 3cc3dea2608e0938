/*
Package handler provides the page handlers and routing setup of the web frontend.
*/
package handler

import (
	"net/http"
	"strings"

	"lancini/internal/app/api"
	"lancini/internal/pkg/errs"
	"lancini/internal/pkg/logx"
	"lancini/internal/pkg/req"
)

const (
	// VerifyRedirectSeconds is the delay before a verified visitor is sent to login.
	VerifyRedirectSeconds = 3

	msgLoginFailed        = "Invalid email or password"
	msgEmailVerified      = "Email verified successfully!"
	msgVerificationFailed = "Verification failed"
)

type LoginData struct {
	Email string
	Error string
}

// HandleLoginPage renders the login form.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.render(w, r, http.StatusOK, "login", "Log in", "", LoginData{})
	}
}

// HandleLogin authenticates against the backend, relays its session cookie and
// records the user in the request's session store.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := req.FormValue(r, "email")
		data := LoginData{Email: email}

		if !deps.LoginLimiter.Allow(r) {
			data.Error = errs.NewError(errs.ErrRateLimitExceeded).Message
			deps.render(w, r, http.StatusTooManyRequests, "login", "Log in", "", data)
			return
		}

		password := req.RawFormValue(r, "password")
		if email == "" || password == "" {
			data.Error = errs.NewError(errs.ErrCredentialsRequired).Message
			deps.render(w, r, http.StatusUnprocessableEntity, "login", "Log in", "", data)
			return
		}

		user, err := backendConn(r).Login(email, password)
		if err != nil {
			if api.IsTransport(err) {
				logx.Error(err, "login: backend unreachable")
				data.Error = errs.NewError(errs.ErrBackendUnavailable).Message
			} else {
				logx.Warn("login: rejected by backend", "status", api.StatusOf(err))
				data.Error = api.MessageOr(err, msgLoginFailed)
			}
			deps.render(w, r, http.StatusUnprocessableEntity, "login", "Log in", "", data)
			return
		}

		sessionStore(r).Login(*user)
		logx.Ctx(r.Context()).Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

		http.Redirect(w, r, deps.Policy.ProtectedHome, http.StatusSeeOther)
	}
}

// HandleLogout signs out and returns to the login page. Local session state and the
// browser cookie are cleared even when the backend call fails.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessionStore(r).Logout(); err != nil {
			logx.Ctx(r.Context()).Warn().Err(err).Msg("logout: backend sign-out failed")
		}

		http.Redirect(w, r, deps.Policy.LoginPath, http.StatusSeeOther)
	}
}

type VerifyStatus string

const (
	VerifyPending VerifyStatus = "verifying"
	VerifySuccess VerifyStatus = "success"
	VerifyFailed  VerifyStatus = "error"
)

type VerifyData struct {
	Status  VerifyStatus
	Message string

	// RedirectURL and RedirectAfter drive the automatic return to login on success.
	RedirectURL   string
	RedirectAfter int
}

// HandleVerifyEmail confirms the token from the verification link. A link without a
// token fails immediately and never reaches the backend.
func HandleVerifyEmail(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := VerifyData{Status: VerifyPending}

		token := strings.TrimSpace(r.URL.Query().Get("token"))
		if token == "" {
			data.Status = VerifyFailed
			data.Message = errs.NewError(errs.ErrInvalidVerificationLink).Message
			deps.render(w, r, http.StatusBadRequest, "verify_email", "Email verification", "", data)
			return
		}

		if _, err := backendConn(r).VerifyEmail(token); err != nil {
			logx.Warn("verify-email: rejected", "status", api.StatusOf(err), "error", err)
			data.Status = VerifyFailed
			data.Message = api.MessageOr(err, msgVerificationFailed)
			deps.render(w, r, http.StatusOK, "verify_email", "Email verification", "", data)
			return
		}

		data.Status = VerifySuccess
		data.Message = msgEmailVerified
		data.RedirectURL = deps.Policy.LoginPath
		data.RedirectAfter = VerifyRedirectSeconds
		deps.render(w, r, http.StatusOK, "verify_email", "Email verification", "", data)
	}
}
