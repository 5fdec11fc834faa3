// Package workspace defines the contract with the external document
// workspace that backs note saving, listing and search.
package workspace

import (
	"context"
	"time"
)

//go:generate mockgen -source=workspace.go -destination=mocks/workspace_mock.go -package=mocks

const (
	// MaxEntryBody is the rune limit an entry body is silently truncated to.
	MaxEntryBody = 2000

	// MaxSearchResults caps how many hits Search returns.
	MaxSearchResults = 5
)

// Collection is a workspace container that entries are filed into.
type Collection struct {
	ID          string
	Title       string
	Description string
}

// SearchResult is one workspace page matching a search query.
type SearchResult struct {
	ID         string
	Title      string
	URL        string
	LastEdited time.Time
}

// Entry is a created workspace page. Truncated reports that the body was
// cut to MaxEntryBody runes before persisting; it is not an error.
type Entry struct {
	ID        string
	URL       string
	Title     string
	Truncated bool
}

// Client is the document-workspace collaborator.
type Client interface {
	ListCollections(ctx context.Context) ([]Collection, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
	CreateEntry(ctx context.Context, title, body string) (*Entry, error)
}
