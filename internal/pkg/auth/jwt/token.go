/*
Package jwt issues and verifies the signed form tokens that protect the frontend's
state-changing forms against cross-site submission.
*/
package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	// FormTokenExpiration bounds how long a rendered form stays submittable.
	FormTokenExpiration = 2 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "Lancini-Web"

	// FieldName is the hidden input carrying the token.
	FieldName = "_form_token"
)

var (
	ErrTokenInvalid  = errors.New("invalid or expired form token")
	ErrFormMismatch  = errors.New("form token issued for another form")
	ErrSessionChange = errors.New("form token issued for another session")
)

// Binding derives the session binding claim from the raw session cookie value.
func Binding(sessionValue string) string {
	if sessionValue == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(sessionValue))
	return hex.EncodeToString(sum[:8])
}

// Signer issues and verifies form tokens with one HMAC secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer using secretKey and the default expiration.
func NewSigner(secretKey string) *Signer {
	return &Signer{
		secret: []byte(secretKey),
		ttl:    FormTokenExpiration,
		now:    time.Now,
	}
}

// Issue signs a token for form, bound to the given session cookie value.
func (s *Signer) Issue(form, sessionValue string) (string, error) {
	now := s.now()

	claims := &FormClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		Form:    form,
		Binding: Binding(sessionValue),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify checks signature, expiry, form name and session binding.
func (s *Signer) Verify(tokenString, form, sessionValue string) error {
	if tokenString == "" {
		return ErrTokenInvalid
	}

	claims := &FormClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrTokenInvalid
	}

	if claims.Issuer != TokenIssuer {
		return ErrTokenInvalid
	}

	if claims.Form != form {
		return ErrFormMismatch
	}

	if claims.Binding != Binding(sessionValue) {
		return ErrSessionChange
	}

	return nil
}
