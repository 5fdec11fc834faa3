package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-chatrelay-svc/internal/shared"
)

func edenConfig(url string) shared.ProviderConfig {
	return shared.ProviderConfig{
		BaseURL: url,
		APIKey:  "eden-test",
		Timeout: 2 * time.Second,
	}
}

func TestEdenGenerate(t *testing.T) {
	var gotReq edenGenerationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text/generation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"openai": map[string]any{
				"generated_text": "  an answer  ",
				"status":         "success",
			},
		})
	}))
	defer srv.Close()

	c := NewEdenClient(edenConfig(srv.URL), zap.NewNop())
	reply, err := c.Generate(context.Background(), "question", nil)
	require.NoError(t, err)
	assert.Equal(t, "an answer", reply)
	assert.Equal(t, "openai", gotReq.Providers)
}

func TestEdenGenerateNoValidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"openai": map[string]any{"generated_text": "", "status": "fail"},
		})
	}))
	defer srv.Close()

	c := NewEdenClient(edenConfig(srv.URL), zap.NewNop())
	_, err := c.Generate(context.Background(), "question", nil)
	assert.Error(t, err)
}

func TestEdenAnalyze(t *testing.T) {
	var gotReq edenSentimentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text/sentiment_analysis", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]any{
			"amazon": map[string]any{
				"general_sentiment":      "Positive",
				"general_sentiment_rate": 0.98,
				"status":                 "success",
			},
			// google returned nothing usable and must be omitted.
			"google": map[string]any{
				"general_sentiment": "",
				"status":            "fail",
			},
		})
	}))
	defer srv.Close()

	c := NewEdenClient(edenConfig(srv.URL), zap.NewNop())
	verdicts, err := c.Analyze(context.Background(), "great product")
	require.NoError(t, err)

	assert.Equal(t, "amazon,google", gotReq.Providers)
	require.Contains(t, verdicts, "amazon")
	assert.Equal(t, "Positive", verdicts["amazon"].Label)
	assert.InDelta(t, 0.98, verdicts["amazon"].Confidence, 1e-9)
	assert.NotContains(t, verdicts, "google")
}

func TestEdenAnalyzeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewEdenClient(edenConfig(srv.URL), zap.NewNop())
	_, err := c.Analyze(context.Background(), "text")
	var upstream *shared.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Equal(t, "eden.sentiment", upstream.Op)
}
