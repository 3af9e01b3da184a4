package buddyapi

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the chat endpoint answered with neither a
// response nor an error.
var ErrEmptyResponse = errors.New("empty response from server")

// NetworkError indicates the request never produced a usable reply: the
// server was unreachable, the request was rejected in transit, or the body
// was not the JSON the contract promises.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError indicates the service answered with an explicit error.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// UserMessage returns the text to show the learner for err: the backend's
// own message for a BackendError, otherwise "Error: " and the failure.
func UserMessage(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return "Error: " + err.Error()
}
