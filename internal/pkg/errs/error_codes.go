/*
Package errs provides custom error types and application-level error code constants.

These codes identify the failures the frontend detects on its own (before or instead of
calling the backend) and are rendered as user-facing messages on pages and JSON routes.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrFormParseFailed indicates failure to parse a URL-encoded form submission.
	ErrFormParseFailed = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrFormTokenInvalid indicates a missing, expired or forged form token.
	ErrFormTokenInvalid = 1008
)

// 2xxx: Form Pre-Validation Errors
const (
	// ErrPasswordMismatch indicates the new and confirm password fields differ.
	ErrPasswordMismatch = 2001

	// ErrInvalidVerificationLink indicates the verification URL carries no token.
	ErrInvalidVerificationLink = 2002

	// ErrCredentialsRequired indicates an empty email or password on the login form.
	ErrCredentialsRequired = 2003

	// ErrSkillLevelInvalid indicates a CV skill level outside 1-5.
	ErrSkillLevelInvalid = 2004
)

// 3xxx: Session Errors
const (
	// ErrUnauthorized indicates the request requires a valid session.
	ErrUnauthorized = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrBackendUnavailable indicates the backend API could not be reached.
	ErrBackendUnavailable = 5001
)
