package api

import (
	"errors"
	"fmt"
)

// GenericMessage is shown when no response reached the user.
const GenericMessage = "Something went wrong."

// ErrTransport marks failures where no response was received.
var ErrTransport = errors.New("api: transport failure")

// Error is a failure reported by the remote API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// UserMessage turns err into the text shown on a page: the server's own
// message when it sent one, fallback when it did not, and GenericMessage
// when the request never got a response.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if fallback != "" {
			return fallback
		}
	}
	return GenericMessage
}
