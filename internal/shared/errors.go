package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrMissingCredentials indicates login was invoked without email or password.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrNotAuthenticated indicates an operation that needs a session was
	// invoked without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthError is a rejected credential exchange. Message carries the
// backend-provided text verbatim so the login UI can surface it as-is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// TransportError is a network-level failure reaching the backend
// (unreachable host, timeout, malformed response).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "backend unreachable"
	}
	return "backend unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsTransportError reports whether err is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
