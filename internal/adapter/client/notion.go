package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-chatrelay-svc/internal/shared"
	"go-chatrelay-svc/internal/workspace"
)

const notionVersion = "2022-06-28"

// NotionClient implements workspace.Client against the Notion API. New
// entries are filed into a fixed default collection (database).
type NotionClient struct {
	baseURL    string
	token      string
	collection string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNotionClient creates a workspace client.
func NewNotionClient(cfg shared.WorkspaceConfig, logger *zap.Logger) *NotionClient {
	return &NotionClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		collection: cfg.DefaultCollection,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type richText struct {
	PlainText string `json:"plain_text,omitempty"`
	Text      *struct {
		Content string `json:"content"`
	} `json:"text,omitempty"`
}

type searchObject struct {
	ID             string              `json:"id"`
	Object         string              `json:"object"`
	URL            string              `json:"url"`
	LastEditedTime time.Time           `json:"last_edited_time"`
	Title          []richText          `json:"title"`
	Description    []richText          `json:"description"`
	Properties     map[string]property `json:"properties"`
}

type property struct {
	Type  string     `json:"type"`
	Title []richText `json:"title"`
}

type searchResponse struct {
	Results []searchObject `json:"results"`
}

// ListCollections returns every database shared with the integration.
func (c *NotionClient) ListCollections(ctx context.Context) ([]workspace.Collection, error) {
	payload := map[string]any{
		"filter": map[string]string{
			"property": "object",
			"value":    "database",
		},
	}

	var resp searchResponse
	if err := c.post(ctx, "workspace.list", "/search", payload, &resp); err != nil {
		return nil, err
	}

	cols := make([]workspace.Collection, 0, len(resp.Results))
	for _, obj := range resp.Results {
		cols = append(cols, workspace.Collection{
			ID:          obj.ID,
			Title:       plainText(obj.Title, "Untitled"),
			Description: plainText(obj.Description, ""),
		})
	}
	return cols, nil
}

// Search finds pages matching the query, newest edits first, capped at
// workspace.MaxSearchResults.
func (c *NotionClient) Search(ctx context.Context, query string) ([]workspace.SearchResult, error) {
	payload := map[string]any{
		"query": query,
		"sort": map[string]string{
			"direction": "descending",
			"timestamp": "last_edited_time",
		},
		"page_size": workspace.MaxSearchResults,
	}

	var resp searchResponse
	if err := c.post(ctx, "workspace.search", "/search", payload, &resp); err != nil {
		return nil, err
	}

	results := make([]workspace.SearchResult, 0, workspace.MaxSearchResults)
	for _, obj := range resp.Results {
		if len(results) == workspace.MaxSearchResults {
			break
		}
		results = append(results, workspace.SearchResult{
			ID:         obj.ID,
			Title:      pageTitle(obj),
			URL:        obj.URL,
			LastEdited: obj.LastEditedTime,
		})
	}
	return results, nil
}

type createPageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateEntry files a new page into the default collection. Bodies longer
// than workspace.MaxEntryBody runes are silently truncated; the returned
// entry reports it via the Truncated flag.
func (c *NotionClient) CreateEntry(ctx context.Context, title, body string) (*workspace.Entry, error) {
	truncated := false
	if runes := []rune(body); len(runes) > workspace.MaxEntryBody {
		body = string(runes[:workspace.MaxEntryBody])
		truncated = true
	}

	payload := map[string]any{
		"parent": map[string]string{"database_id": c.collection},
		"properties": map[string]any{
			"Name": map[string]any{
				"title": []map[string]any{
					{"text": map[string]string{"content": title}},
				},
			},
			"Content": map[string]any{
				"rich_text": []map[string]any{
					{"text": map[string]string{"content": body}},
				},
			},
		},
	}

	var resp createPageResponse
	if err := c.post(ctx, "workspace.create", "/pages", payload, &resp); err != nil {
		return nil, err
	}

	return &workspace.Entry{
		ID:        resp.ID,
		URL:       resp.URL,
		Title:     title,
		Truncated: truncated,
	}, nil
}

func (c *NotionClient) post(ctx context.Context, op, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Notion-Version", notionVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("workspace request failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return &shared.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// plainText joins the rendered text of a rich-text array.
func plainText(parts []richText, fallback string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// pageTitle digs the title out of a page's properties; pages keep their
// title under whichever property has the "title" type.
func pageTitle(obj searchObject) string {
	for _, prop := range obj.Properties {
		if prop.Type == "title" {
			return plainText(prop.Title, "Untitled")
		}
	}
	return "Untitled"
}
