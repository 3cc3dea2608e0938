package jwt

import "github.com/golang-jwt/jwt"

// FormClaims are the claims of a form token. A form token is embedded as a hidden
// field in every state-changing form the frontend renders and checked on submit.
type FormClaims struct {
	jwt.StandardClaims

	// Form names the form the token was issued for (e.g. "login", "password").
	Form string `json:"form"`

	// Binding is a digest of the session cookie at render time, empty for anonymous forms.
	// A token rendered for one session cannot be replayed under another.
	Binding string `json:"bnd,omitempty"`
}
