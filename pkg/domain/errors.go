package domain

import (
	"errors"
	"fmt"
)

// ErrNoCredentials is returned when neither workspace credential is configured.
var ErrNoCredentials = errors.New("missing API keys: set NOTION_API_KEY and/or CLICKUP_API_KEY")

// ErrNoTeams is returned when the task workspace lists no team for the token.
var ErrNoTeams = errors.New("no teams found for this user")

// ErrMissingParent is recorded when a page is skipped because it has no parent reference.
var ErrMissingParent = errors.New("no parent reference")

// ErrorKind classifies a failed remote call.
type ErrorKind string

const (
	KindNetwork     ErrorKind = "network"
	KindAuth        ErrorKind = "auth"
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindServer      ErrorKind = "server"
	KindDecode      ErrorKind = "decode"
)

// KindFromStatus maps an HTTP status code to an ErrorKind.
func KindFromStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return KindAuth
	case code == 404:
		return KindNotFound
	case code == 429:
		return KindRateLimited
	case code >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// RemoteError describes a failed call to a workspace API.
type RemoteError struct {
	Service    string
	Operation  string
	StatusCode int
	Kind       ErrorKind
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %s (HTTP %d): %s", e.Service, e.Operation, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Service, e.Operation, e.Kind, msg)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind carried by err, or "" if err is not a RemoteError.
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
