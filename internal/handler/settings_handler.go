package handler

import (
	"net/http"

	"lancini/internal/app/api"
	"lancini/internal/pkg/errs"
	"lancini/internal/pkg/logx"
	"lancini/internal/pkg/req"
)

const (
	msgPasswordUpdated = "Password updated successfully"
	msgPasswordFailed  = "Failed to update password"
)

type SettingsData struct {
	Success string
	Error   string

	// The password fields are echoed back after a failed attempt only.
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// HandleSettingsPage renders the password change form.
func HandleSettingsPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.render(w, r, http.StatusOK, "settings", "Settings", "settings", SettingsData{})
	}
}

// HandleChangePassword checks that both new password fields match before submitting
// the change to the backend. The fields are cleared only on success.
func HandleChangePassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := SettingsData{
			CurrentPassword: req.RawFormValue(r, "currentPassword"),
			NewPassword:     req.RawFormValue(r, "newPassword"),
			ConfirmPassword: req.RawFormValue(r, "confirmPassword"),
		}

		if !deps.FormLimiter.Allow(r) {
			data.Error = errs.NewError(errs.ErrRateLimitExceeded).Message
			deps.render(w, r, http.StatusTooManyRequests, "settings", "Settings", "settings", data)
			return
		}

		if data.NewPassword != data.ConfirmPassword {
			data.Error = errs.NewError(errs.ErrPasswordMismatch).Message
			deps.render(w, r, http.StatusUnprocessableEntity, "settings", "Settings", "settings", data)
			return
		}

		if err := backendConn(r).ChangePassword(data.CurrentPassword, data.NewPassword); err != nil {
			logx.Warn("settings: password change failed", "status", api.StatusOf(err), "error", err)
			data.Error = api.MessageOr(err, msgPasswordFailed)
			deps.render(w, r, http.StatusUnprocessableEntity, "settings", "Settings", "settings", data)
			return
		}

		deps.render(w, r, http.StatusOK, "settings", "Settings", "settings", SettingsData{Success: msgPasswordUpdated})
	}
}
