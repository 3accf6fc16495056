package providers

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrTransport indicates the request could not be sent or the response could not be read.
	ErrTransport = errors.New("endpoint unavailable")

	// ErrHTTPStatus indicates the API answered with a non-success status code.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrDecode indicates the response body is not valid JSON.
	ErrDecode = errors.New("decode response")
)

// StatusError describes a non-success response. Params are kept for logs
// and are not part of the message, which must not change between polls.
type StatusError struct {
	Code    int
	Reason  string
	Params  url.Values
	Content string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http_code = %d; reason = %s; content = %s", ErrHTTPStatus, e.Code, e.Reason, e.Content)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}
