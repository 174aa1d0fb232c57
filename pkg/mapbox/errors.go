package mapbox

import (
	"errors"
	"fmt"
)

var (
	ErrTokenMissing   = errors.New("you have to set your mapbox public access token first")
	ErrDatasetMissing = errors.New("a mapbox dataset is required")
	ErrQueryMissing   = errors.New("you have to specify the location to geocode")
)

// Kind tells apart the ways a lookup can fail.
type Kind int

const (
	// KindConfig means the request was never sent: token, dataset or query
	// were missing.
	KindConfig Kind = iota + 1
	// KindTransport means the transport failed before a response arrived.
	KindTransport
	// KindRemote means Mapbox answered with a status other than 200.
	KindRemote
	// KindDecode means the response body was not valid JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the only error type handed to a Callback.
type Error struct {
	Kind Kind

	// StatusCode and Body are set for KindRemote and, when the response
	// arrived, for KindDecode.
	StatusCode int
	Body       *Result

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRemote:
		return fmt.Sprintf("mapbox: unexpected response: (%d) %s", e.StatusCode, e.Body)
	case KindDecode:
		return fmt.Sprintf("mapbox: decode response (%d): %s", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("mapbox: %s: %s", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func configError(err error) *Error {
	return &Error{Kind: KindConfig, Err: err}
}
