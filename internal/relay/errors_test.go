package relay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/shared"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "wrapped ai timeout",
			err:  fmt.Errorf("deepseek: %w", ai.ErrTimeout),
			want: ErrorTimeout,
		},
		{
			name: "context deadline",
			err:  fmt.Errorf("execute request: %w", context.DeadlineExceeded),
			want: ErrorTimeout,
		},
		{
			name: "upstream 401",
			err:  &shared.UpstreamError{Op: "workspace.create", StatusCode: 401, Message: "bad token"},
			want: ErrorAuth,
		},
		{
			name: "upstream 403",
			err:  &shared.UpstreamError{Op: "workspace.search", StatusCode: 403, Message: "restricted"},
			want: ErrorAuth,
		},
		{
			name: "upstream 404",
			err:  &shared.UpstreamError{Op: "workspace.create", StatusCode: 404, Message: "missing database"},
			want: ErrorNotFound,
		},
		{
			name: "auth marker in message",
			err:  errors.New("api token is invalid"),
			want: ErrorAuth,
		},
		{
			name: "not-found marker in message",
			err:  errors.New("could not find database with id"),
			want: ErrorNotFound,
		},
		{
			name: "anything else",
			err:  errors.New("connection reset by peer"),
			want: ErrorGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyError(tt.err))
		})
	}
}
