package handler

import (
	"net/http"

	"lancini/internal/pkg/errs"
	"lancini/internal/pkg/resp"
)

// HandleHome sends signed-in visitors to the dashboard and everyone else to login.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st := sessionStore(r); st != nil && st.IsAuthenticated() {
			http.Redirect(w, r, deps.Policy.ProtectedHome, http.StatusFound)
			return
		}
		http.Redirect(w, r, deps.Policy.LoginPath, http.StatusFound)
	}
}

func HandleDashboard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.render(w, r, http.StatusOK, "dashboard", "Dashboard", "dashboard", nil)
	}
}

func HandleApplications(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.render(w, r, http.StatusOK, "applications", "Applications", "applications", nil)
	}
}

func HandleNotFound(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.render(w, r, http.StatusNotFound, "error", "Not found", "", ErrorData{
			Status:  http.StatusNotFound,
			Message: "The page you are looking for does not exist.",
		})
	}
}

// HandleFormTokenFailure renders the expired-form page for a rejected submission.
func HandleFormTokenFailure(deps *AppDeps) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		deps.renderError(w, r, errs.NewError(errs.ErrFormTokenInvalid))
	}
}

type SessionInfo struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	User            *SessionUser `json:"user,omitempty"`
}

type SessionUser struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// HandleSession exposes the session snapshot to client-side scripts.
func HandleSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := sessionStore(r)
		if st == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		snap := st.Snapshot()
		info := SessionInfo{IsAuthenticated: snap.IsAuthenticated, IsLoading: snap.IsLoading}
		if snap.User != nil {
			info.User = &SessionUser{
				ID:     snap.User.ID,
				Email:  snap.User.Email,
				Role:   string(snap.User.Role),
				Name:   snap.User.Name,
				Avatar: deps.FullAssetURL(r.Context(), snap.User.Avatar),
			}
		}

		resp.RespondSuccess(w, r, info)
	}
}
