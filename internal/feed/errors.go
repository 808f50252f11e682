package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrFeedUnavailable covers connection failures, timeouts, cancellation,
	// truncated bodies and unexpected non-error statuses.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedNotFound is returned for 404 and 410 responses.
	ErrFeedNotFound = errors.New("feed not found")

	// ErrFeedServerError is returned for 5xx responses.
	ErrFeedServerError = errors.New("feed server error")
)

// Error describes a failed fetch. It matches exactly one of the sentinel
// errors above with errors.Is, and also the underlying cause when there is one
// (context.Canceled, a *url.Error, ...).
type Error struct {
	Kind       error
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%v: %s: status %d: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%v: %s: status %d", e.Kind, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.URL, e.Err)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.URL)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Retryable reports whether err is a fetch failure a caller may retry:
// unavailable or server error. A missing resource stays missing. Callers stop
// retrying on their own context, which Retryable does not look at.
func Retryable(err error) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == ErrFeedUnavailable || fe.Kind == ErrFeedServerError
}

// kindName is the short label used in metric names and log fields.
func kindName(kind error) string {
	switch kind {
	case ErrFeedNotFound:
		return "not_found"
	case ErrFeedServerError:
		return "server_error"
	default:
		return "unavailable"
	}
}
