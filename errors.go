package authclient

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

const (
	textCodeNoSession           = "SESSION_NOT_FOUND"
	textCodeSessionExpired      = "SESSION_EXPIRED"
	textCodeAuthorizationFailed = "AUTHORIZATION_FAILED"
	textCodeIdentityUnreachable = "IDENTITY_UNREACHABLE"
	textCodeIdentityRejected    = "IDENTITY_REJECTED"
)

// ErrNoSession is returned when an operation needs a refresh token and the
// store has none. No network call is made.
var ErrNoSession = errors.New("no session available", errors.CategoryAuth).
	WithTextCode(textCodeNoSession).
	WithCode(errors.CodeUnauthorized)

// ErrSessionExpired is the terminal refresh failure: the identity service
// rejected the refresh token and both credentials have been cleared.
var ErrSessionExpired = errors.New("session expired", errors.CategoryAuth).
	WithTextCode(textCodeSessionExpired).
	WithCode(errors.CodeUnauthorized)

// IsAuthorizationFailure reports whether err means the presented credential
// was rejected (401/403 class). This is the one failure class the
// SessionManager recognizes and recovers from.
func IsAuthorizationFailure(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz
}

// IsSessionExpired reports whether err is the terminal refresh failure.
func IsSessionExpired(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == textCodeSessionExpired
	}
	return false
}

// IsValidationFailure reports whether err carries field-level validation
// errors, either local (ozzo) or from the identity service. Never retried.
func IsValidationFailure(err error) bool {
	if err == nil {
		return false
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return true
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryValidation
	}
	return false
}

// IsNetworkFailure reports whether err means the identity service could not
// be reached at all. Retry policy for these belongs to the caller.
func IsNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == textCodeIdentityUnreachable
	}
	return false
}

// ValidationErrorMap flattens validation failures into field => message,
// suitable for per-field display.
func ValidationErrorMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, ferr := range fieldErrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Metadata != nil {
		if payload, ok := richErr.Metadata["payload"].(map[string]any); ok {
			for field, val := range payload {
				if msgs, ok := val.([]any); ok && len(msgs) > 0 {
					if msg, ok := msgs[0].(string); ok {
						out[field] = msg
					}
				}
			}
		}
	}

	return out
}

// ErrorMessage extracts a display string from any failure the package
// produces. Server payloads win: `detail`, then `message`, then the first
// per-field error array.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		if richErr.Metadata != nil {
			if payload, ok := richErr.Metadata["payload"].(map[string]any); ok {
				if detail, ok := payload["detail"].(string); ok && detail != "" {
					return detail
				}
				if msg, ok := payload["message"].(string); ok && msg != "" {
					return msg
				}
				for _, val := range payload {
					if msgs, ok := val.([]any); ok && len(msgs) > 0 {
						if msg, ok := msgs[0].(string); ok {
							return msg
						}
					}
				}
			}
		}
		if richErr.Message != "" {
			return richErr.Message
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return "An unexpected error occurred. Please try again."
}
