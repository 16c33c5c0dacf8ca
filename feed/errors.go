package feed

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an identifier does not map to any known feed.
// No network request is made in that case.
var ErrNotFound = errors.New("feed not found")

// Kind classifies a failure that happened after a feed was resolved
type Kind int

const (
	// KindNone is returned by KindOf for errors that are not feed failures
	KindNone Kind = iota
	// KindTransport covers connection failures, timeouts and non-2xx responses
	KindTransport
	// KindDecode covers payloads that cannot be parsed
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "none"
	}
}

// Error is a transport or decode failure for one upstream URL
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failure for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// TransportError wraps err as a transport failure
func TransportError(url string, err error) *Error {
	return &Error{Kind: KindTransport, URL: url, Err: err}
}

// DecodeError wraps err as a decode failure
func DecodeError(url string, err error) *Error {
	return &Error{Kind: KindDecode, URL: url, Err: err}
}

// IsNotFound reports whether err is a resolution miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// KindOf returns the failure kind carried by err, or KindNone
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNone
}
