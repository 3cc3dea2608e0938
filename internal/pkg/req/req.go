/*
Package req provides helpers for reading page form submissions and request metadata.
*/
package req

import (
	"net"
	"net/http"
	"strings"

	"lancini/internal/pkg/errs"
)

// MaxFormSize caps the body of a URL-encoded form submission (64 KB).
const MaxFormSize int64 = 64 << 10

// ParseForm limits the request body and parses URL-encoded form values into r.PostForm.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormSize)

	if err := r.ParseForm(); err != nil {
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// FormValue returns the trimmed post form value for key.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// RawFormValue returns the post form value for key unmodified. Used for passwords.
func RawFormValue(r *http.Request, key string) string {
	return r.PostFormValue(key)
}

// ClientIP returns the host part of r.RemoteAddr (already rewritten by RealIP).
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		return "unknown_ip"
	}

	return ip
}
