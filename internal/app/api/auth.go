package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"lancini/internal/app/model"
)

// userEnvelope accepts both {"user": {...}} and a bare user object.
type userEnvelope struct {
	User *model.User
}

var (
	errEmptyUser   = errors.New("response carries no user")
	errUnknownRole = errors.New("user has an unknown role")
)

// checkUser rejects a missing user or one whose role the frontend does not know.
func checkUser(op string, u *model.User) error {
	if u == nil || (u.ID == "" && u.Email == "") {
		return &Error{Kind: KindDecode, Op: op, Err: errEmptyUser}
	}
	if !u.Role.Valid() {
		return &Error{Kind: KindDecode, Op: op, Err: fmt.Errorf("%w: %q", errUnknownRole, u.Role)}
	}
	return nil
}

func (e *userEnvelope) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		User *model.User `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.User != nil {
		e.User = wrapped.User
		return nil
	}

	var bare model.User
	if err := json.Unmarshal(data, &bare); err != nil {
		return err
	}
	e.User = &bare
	return nil
}

// Me asks the backend who owns the forwarded session (GET /auth/me).
func (s *Conn) Me() (*model.User, error) {
	var env userEnvelope
	if err := s.get("/auth/me", nil, &env); err != nil {
		return nil, err
	}
	if err := checkUser("GET /auth/me", env.User); err != nil {
		return nil, err
	}
	return env.User, nil
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with credentials. The backend's session cookie is relayed to
// the browser and forwarded by subsequent calls on this Conn.
func (s *Conn) Login(email, password string) (*model.User, error) {
	var env userEnvelope
	if err := s.post("/auth/login", LoginInput{Email: email, Password: password}, &env); err != nil {
		return nil, err
	}
	if err := checkUser("POST /auth/login", env.User); err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout signs out (POST /auth/logout). Whatever the outcome, the session cookie is
// expired on the browser response.
func (s *Conn) Logout() error {
	err := s.post("/auth/logout", nil, nil)
	s.ExpireSession()
	return err
}

// ChangePasswordInput is the body of PUT /auth/password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword submits the current and new passwords (PUT /auth/password).
func (s *Conn) ChangePassword(current, next string) error {
	return s.put("/auth/password", ChangePasswordInput{CurrentPassword: current, NewPassword: next}, nil)
}

// VerifyEmail confirms an email verification token (GET /auth/verify-email).
// It returns the backend's confirmation message, possibly empty.
func (s *Conn) VerifyEmail(token string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := s.get("/auth/verify-email", url.Values{"token": {token}}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
