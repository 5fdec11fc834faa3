package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/shared"
)

// EdenClient calls the Eden AI aggregation API for text generation and
// sentiment analysis.
type EdenClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEdenClient creates an Eden AI client.
func NewEdenClient(cfg shared.ProviderConfig, logger *zap.Logger) *EdenClient {
	return &EdenClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type edenGenerationRequest struct {
	Providers   string  `json:"providers"`
	Text        string  `json:"text"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type edenGenerationResult struct {
	GeneratedText string `json:"generated_text"`
	Status        string `json:"status"`
}

// Generate implements ai.TextClient via Eden's text-generation endpoint.
// Eden has no slot for extra context, so enrichment is ignored.
func (c *EdenClient) Generate(ctx context.Context, text string, _ *ai.Context) (string, error) {
	payload := edenGenerationRequest{
		Providers:   "openai",
		Text:        text,
		Temperature: 0.3,
		MaxTokens:   150,
	}

	var result map[string]edenGenerationResult
	if err := c.post(ctx, "eden.generate", "/text/generation", payload, &result); err != nil {
		return "", err
	}

	if r, ok := result["openai"]; ok && r.GeneratedText != "" {
		return strings.TrimSpace(r.GeneratedText), nil
	}
	return "", fmt.Errorf("eden returned no valid response from providers")
}

type edenSentimentRequest struct {
	Providers string `json:"providers"`
	Text      string `json:"text"`
}

type edenSentimentResult struct {
	GeneralSentiment     string  `json:"general_sentiment"`
	GeneralSentimentRate float64 `json:"general_sentiment_rate"`
	Status               string  `json:"status"`
}

// Analyze implements ai.SentimentClient. Vendors that failed or returned
// no verdict are omitted from the result map.
func (c *EdenClient) Analyze(ctx context.Context, text string) (map[string]ai.Sentiment, error) {
	payload := edenSentimentRequest{
		Providers: "amazon,google",
		Text:      text,
	}

	var result map[string]edenSentimentResult
	if err := c.post(ctx, "eden.sentiment", "/text/sentiment_analysis", payload, &result); err != nil {
		return nil, err
	}

	verdicts := make(map[string]ai.Sentiment, len(result))
	for vendor, r := range result {
		if r.GeneralSentiment == "" {
			continue
		}
		verdicts[vendor] = ai.Sentiment{
			Label:      r.GeneralSentiment,
			Confidence: r.GeneralSentimentRate,
		}
	}
	return verdicts, nil
}

func (c *EdenClient) post(ctx context.Context, op, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("eden request failed",
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
