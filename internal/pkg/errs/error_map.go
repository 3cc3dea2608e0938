package errs

import "net/http"

// errorMap holds the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrFormParseFailed:   {Code: ErrFormParseFailed, Message: "Failed to process submitted data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrFormTokenInvalid:  {Code: ErrFormTokenInvalid, Message: "Your form has expired. Please try again.", Status: http.StatusForbidden},

	// 2xxx
	ErrPasswordMismatch:        {Code: ErrPasswordMismatch, Message: "New passwords do not match."},
	ErrInvalidVerificationLink: {Code: ErrInvalidVerificationLink, Message: "Invalid verification link"},
	ErrCredentialsRequired:     {Code: ErrCredentialsRequired, Message: "Email and password are required."},
	ErrSkillLevelInvalid:       {Code: ErrSkillLevelInvalid, Message: "Skill level must be between %d and %d."},

	// 3xxx
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrBackendUnavailable: {Code: ErrBackendUnavailable, Message: "Service is temporarily unavailable.", Status: http.StatusBadGateway},
}
