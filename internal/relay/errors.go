package relay

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/shared"
)

// ErrorKind classifies a collaborator failure for presentation. Raw
// upstream detail never reaches the user for auth/not-found/generic
// failures; it only goes to the logs.
type ErrorKind int

const (
	ErrorTimeout ErrorKind = iota + 1
	ErrorAuth
	ErrorNotFound
	ErrorGeneric
)

var authMarkers = []string{
	"unauthorized",
	"restricted from accessing",
	"invalid token",
	"api token is invalid",
	"permission",
}

var notFoundMarkers = []string{
	"object_not_found",
	"could not find",
	"not found",
}

// classifyError maps a collaborator error onto the user-facing taxonomy.
func classifyError(err error) ErrorKind {
	if errors.Is(err, ai.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}

	var upstream *shared.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrorAuth
		case http.StatusNotFound:
			return ErrorNotFound
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return ErrorAuth
		}
	}
	for _, marker := range notFoundMarkers {
		if strings.Contains(msg, marker) {
			return ErrorNotFound
		}
	}
	return ErrorGeneric
}
