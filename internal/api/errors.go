package api

// Error is a failed backend call. Message carries the backend's "message"
// field when the response had one, otherwise the operation's generic
// fallback string; either way it is what the UI shows the user.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(status int, message, fallback string, cause error) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Status: status, Message: message, cause: cause}
}
