// Package client implements the HTTP collaborators: the AI vendor
// clients and the document-workspace client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/shared"
)

// DeepSeekClient calls the DeepSeek chat-completions API.
type DeepSeekClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	retry      int
}

// NewDeepSeekClient creates a DeepSeek text client.
func NewDeepSeekClient(cfg shared.ProviderConfig, logger *zap.Logger) *DeepSeekClient {
	return &DeepSeekClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		retry:  cfg.Retry,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements ai.TextClient. Workspace context, when present, is
// injected as a system message ahead of the user's text.
func (c *DeepSeekClient) Generate(ctx context.Context, text string, enrich *ai.Context) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if enrich != nil && len(enrich.Snippets) > 0 {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "Relevant workspace documents:\n" + strings.Join(enrich.Snippets, "\n"),
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: text})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       "deepseek-chat",
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	attempts := c.retry + 1 // first attempt + retries

	for i := 0; i < attempts; i++ {
		reply, err := c.doRequest(ctx, body)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		// Timeouts are surfaced immediately; the user decides whether to retry.
		if errors.Is(err, ai.ErrTimeout) {
			return "", err
		}

		// Don't sleep after the last attempt
		if i < c.retry {
			delay := time.Duration(500<<uint(i)) * time.Millisecond // 500ms, 1s, 2s, ...
			select {
			case <-ctx.Done():
				return "", classifyTransport(ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	c.logger.Error("all retries failed for deepseek request",
		zap.Int("attempts", attempts),
		zap.Error(lastErr),
	)
	return "", fmt.Errorf("deepseek generate after %d attempts: %w", attempts, lastErr)
}

func (c *DeepSeekClient) doRequest(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &shared.UpstreamError{
			Op:         "deepseek.generate",
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("deepseek response contained no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// classifyTransport converts deadline and client-timeout failures into
// the contract's timeout error; everything else passes through wrapped.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
	}
	return fmt.Errorf("execute request: %w", err)
}
