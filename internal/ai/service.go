package ai

import (
	"context"
	"errors"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// ErrTimeout reports that an upstream AI call exceeded its deadline.
var ErrTimeout = errors.New("ai request timed out")

// Context carries optional workspace material attached to a generation
// request. Clients that cannot use it ignore it.
type Context struct {
	Snippets []string
}

// TextClient generates a reply for a user message. One implementation
// exists per non-disabled Provider.
type TextClient interface {
	Generate(ctx context.Context, text string, enrich *Context) (string, error)
}

// Sentiment is one vendor's verdict on a piece of text.
type Sentiment struct {
	Label      string
	Confidence float64
}

// SentimentClient scores the sentiment of a text across upstream vendors.
// The result map may omit vendors that returned nothing usable.
type SentimentClient interface {
	Analyze(ctx context.Context, text string) (map[string]Sentiment, error)
}
