package domain

import "errors"

var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("access forbidden")
var ErrInactiveUser = errors.New("usuario inactivo")
var ErrSessionNotReady = errors.New("session not ready")
var ErrNotAuthenticated = errors.New("not authenticated")

// Fixed user-displayable messages for logical auth failures. The UI renders
// these verbatim, never the raw backend message.
const (
	MsgLoginFailed    = "Error al iniciar sesión"
	MsgProfileFailed  = "Error al obtener perfil"
	MsgRegisterFailed = "Error al registrar usuario"
)

// AuthError marks a logical failure: a well-formed backend response whose
// success flag is false (bad credentials, token rejected by business logic).
// Transport faults are never wrapped in an AuthError — they propagate with
// their original message so callers can treat them as "backend unavailable".
type AuthError struct {
	// Message is the fixed user-displayable text.
	Message string
	// Err carries the backend-reported cause, when any.
	Err error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError builds a logical auth failure with a fixed message.
func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, Err: cause}
}

// IsAuthError reports whether err is (or wraps) a logical auth failure.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
