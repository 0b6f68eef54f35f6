package reading

import "errors"

// Kind classifies the errors that cross this package's boundary.
type Kind int

const (
	// KindNotFound covers missing books and sessions.
	KindNotFound Kind = iota + 1
	// KindValidation covers malformed input: unknown status values,
	// out-of-range ratings, end-before-start dates.
	KindValidation
	// KindInvalidTransition covers requests the state machine forbids.
	KindInvalidTransition
)

// Error is a domain error with a caller-facing message. Only these three
// kinds propagate out of the engine; best-effort failures degrade into
// result flags instead.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func invalidTransition(message string) error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

func isKind(err error, kind Kind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.Kind == kind
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsValidation reports whether err is a Validation domain error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsInvalidTransition reports whether err is an InvalidTransition domain error.
func IsInvalidTransition(err error) bool { return isKind(err, KindInvalidTransition) }
