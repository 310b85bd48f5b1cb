package domain

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrUnauthorized   = errors.New("session rejected by server")
	ErrConnectivity   = errors.New("server unreachable")
	ErrBackend        = errors.New("backend rejected request")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrWrongStage       = errors.New("operation not allowed in current login stage")
	ErrBusy             = errors.New("a submission is already in flight")
	ErrCancelled        = errors.New("cancelled")
	ErrItemNotFound     = errors.New("item not found")
	ErrMediaIndex       = errors.New("media index out of range")

	// ErrRefreshFailed marks a mutation the backend accepted whose follow-up
	// list fetch failed.
	ErrRefreshFailed = errors.New("saved, but the list could not be refreshed")
)

// Kind classifies a failure the console shows to the user.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindConnectivity
	KindBackend
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuthentication:
		return ErrAuthentication
	case KindAuthorization:
		return ErrUnauthorized
	case KindConnectivity:
		return ErrConnectivity
	default:
		return ErrBackend
	}
}

// Error is a failure converted at the controller boundary into a
// user-facing message. errors.Is matches both the kind's sentinel and the
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

func NewError(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// NewValidationError reports a client-side check that failed before any
// network call.
func NewValidationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Message returns the text to show the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
