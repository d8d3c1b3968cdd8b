package client

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is shown when the backend gave no usable message.
const GenericErrorMessage = "Something went wrong!"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNoToken     = errors.New("no session token, please login")
)

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NetworkError means the request produced no response at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return GenericErrorMessage
}

// Unwrap exposes both the transport error and ErrUnavailable.
func (e *NetworkError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// Detail returns the underlying transport error text for logs.
func (e *NetworkError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return fmt.Sprintf("%v", e.Err)
}
