/*
Package model holds the data shapes the frontend receives from the backend API.

None of these types is owned or mutated by the frontend: they are fetched per request,
rendered, and dropped. The only exception is User, which the session store keeps for
the duration of one request.
*/
package model

import (
	"encoding/json"
	"strings"
)

// Role is the account type of a user.
type Role string

const (
	RoleStudent    Role = "student"
	RoleEnterprise Role = "enterprise"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEnterprise, RoleAdmin:
		return true
	}
	return false
}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleEnterprise:
		return "Enterprise"
	case RoleAdmin:
		return "Admin"
	}
	return "Member"
}

// User is the signed-in account as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// Name is the optional display name.
	Name string `json:"name,omitempty"`

	// Avatar is an optional asset reference (URL or storage key).
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts both "id" and the document-store style "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// DisplayName returns Name, or the local part of Email when no name is set.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Initial is the first letter of the display name, upper-cased, for avatar placeholders.
func (u User) Initial() string {
	name := u.DisplayName()
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[:1]))
}
