/*
Package session holds the signed-in user for the duration of one page request.

A Store is created per request by Load and injected through the request context.
Its state only changes through Login, Logout and CheckAuth.
*/
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"lancini/internal/app/api"
	"lancini/internal/app/model"
	"lancini/internal/pkg/logx"
)

// Backend is the part of the API client the store needs.
type Backend interface {
	// Me returns the user owning the forwarded session cookie.
	Me() (*model.User, error)

	// Logout signs out on the backend and scrubs the session cookie.
	Logout() error
}

// State is a read-only snapshot of a Store.
type State struct {
	User            *model.User
	IsAuthenticated bool
	IsLoading       bool
}

// Store is the session holder of one request.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	state   State
	logger  zerolog.Logger
}

// NewStore returns a store that has not checked the session yet (loading).
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		state:   State{IsLoading: true},
		logger:  logx.Component("session"),
	}
}

// NewAnonymousStore returns a settled store for a request that carries no session cookie.
func NewAnonymousStore(backend Backend) *Store {
	s := NewStore(backend)
	s.state.IsLoading = false
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// User returns the signed-in user, or nil.
func (s *Store) User() *model.User {
	return s.Snapshot().User
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Login records user as signed in. It makes no backend call: the caller has
// already authenticated.
func (s *Store) Login(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = &user
	s.state.IsAuthenticated = true
}

// Logout signs out on the backend and clears the local state whatever the backend
// answered. The backend error, if any, is returned for logging.
func (s *Store) Logout() error {
	err := s.backend.Logout()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Sign-out request failed; clearing session anyway")
	}

	s.clear()
	return err
}

// CheckAuth asks the backend who owns the session. On success the user is stored;
// on any failure the state is cleared and a sign-out is issued to scrub the cookie,
// so that the route guard stops sending the visitor to the dashboard.
// It reports whether the session is authenticated.
func (s *Store) CheckAuth() bool {
	user, err := s.backend.Me()
	if err == nil && user != nil {
		s.mu.Lock()
		s.state = State{User: user, IsAuthenticated: true, IsLoading: false}
		s.mu.Unlock()
		return true
	}

	if err == nil || api.IsUnauthorized(err) {
		s.logger.Debug().Err(err).Msg("Session rejected; treating visitor as signed out")
	} else {
		s.logger.Warn().Err(err).Msg("Session check failed; treating visitor as signed out")
	}
	s.clear()

	if logoutErr := s.backend.Logout(); logoutErr != nil {
		s.logger.Debug().Err(logoutErr).Msg("Cookie scrub sign-out failed")
	}
	return false
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
}
