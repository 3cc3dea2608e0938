package jwt

import (
	"context"
	"net/http"

	"lancini/internal/pkg/logx"
	"lancini/internal/pkg/req"
)

type contextKey string

// ContextFormTokenKey stores the freshly issued token for the current render.
const ContextFormTokenKey contextKey = "form_token"

// FailureHandler is called when a submission carries an unusable token.
type FailureHandler func(w http.ResponseWriter, r *http.Request, err error)

// sessionValue returns the raw session cookie value or "".
func sessionValue(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Protect guards one form route. Safe methods get a fresh token injected into the
// context (see TokenFromContext). Other methods must present a valid token in the
// FieldName form value, else onFail is called and next is skipped.
func Protect(s *Signer, form, cookieName string, onFail FailureHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sv := sessionValue(r, cookieName)

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				r.Body = http.MaxBytesReader(w, r.Body, req.MaxFormSize)
				if err := s.Verify(r.PostFormValue(FieldName), form, sv); err != nil {
					logx.Ctx(r.Context()).Warn().Err(err).Str("form", form).Msg("Form token rejected")
					onFail(w, r, err)
					return
				}
			}

			token, err := s.Issue(form, sv)
			if err != nil {
				logx.Ctx(r.Context()).Error().Err(err).Str("form", form).Msg("Failed to issue form token")
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextFormTokenKey, token)))
		})
	}
}

// TokenFromContext returns the token issued by Protect for this request.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextFormTokenKey).(string)
	return token
}
