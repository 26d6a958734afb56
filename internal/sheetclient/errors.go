package sheetclient

import (
	"errors"
	"fmt"
	"net/url"
	"os"
)

// Kind is the category of a failed remote call.
type Kind int

const (
	// KindNetwork: the host could not be reached (refused, DNS, timeout, reset).
	KindNetwork Kind = iota
	// KindCrossOrigin: the endpoint redirected to an origin outside the allow-list.
	KindCrossOrigin
	// KindHTTPStatus: the endpoint answered with a non-2xx status.
	KindHTTPStatus
	// KindServerReported: the decoded payload carried an error message.
	KindServerReported
	// KindDecode: the body was not the expected JSON envelope.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCrossOrigin:
		return "cross_origin"
	case KindHTTPStatus:
		return "http_status"
	case KindServerReported:
		return "server_reported"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every Client operation that fails.
type Error struct {
	Kind       Kind
	Op         string // "submit" or "list"
	StatusCode int    // KindHTTPStatus only
	Status     string // status text, e.g. "Bad Gateway"
	Message    string // server-reported message, or a description
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind of a client error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// As is a shorthand for errors.As on *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// errCrossOrigin is returned from the redirect policy and surfaces wrapped in
// a *url.Error from http.Client.Do.
var errCrossOrigin = errors.New("redirect to disallowed origin")

func transportError(op string, err error) *Error {
	if errors.Is(err, errCrossOrigin) {
		var urlErr *url.Error
		target := ""
		if errors.As(err, &urlErr) {
			target = urlErr.URL
		}
		return &Error{Kind: KindCrossOrigin, Op: op, Message: "blocked redirect to " + target, Err: err}
	}

	msg := "request failed"
	if os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded) {
		msg = "request timed out"
	}
	return &Error{Kind: KindNetwork, Op: op, Message: msg, Err: err}
}
