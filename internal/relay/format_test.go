package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-chatrelay-svc/internal/ai"
	"go-chatrelay-svc/internal/workspace"
)

func TestNoteSavedTruncationNotice(t *testing.T) {
	f := NewFormatter("en")

	plain := f.NoteSaved("en", &workspace.Entry{Title: "T", URL: "https://ws/1"})
	assert.NotContains(t, plain, "truncated")

	cut := f.NoteSaved("en", &workspace.Entry{Title: "T", URL: "https://ws/1", Truncated: true})
	assert.Contains(t, cut, "truncated")
	assert.Contains(t, cut, "2000")
}

func TestSentimentReportOmitsAbsentVendors(t *testing.T) {
	f := NewFormatter("en")

	report := f.SentimentReport("en", map[string]ai.Sentiment{
		"google": {Label: "Positive", Confidence: 0.87},
	})
	assert.Contains(t, report, "google: Positive (87% confidence)")
	assert.NotContains(t, report, "amazon")
}

func TestSentimentReportOrdersVendors(t *testing.T) {
	f := NewFormatter("en")

	report := f.SentimentReport("en", map[string]ai.Sentiment{
		"google": {Label: "Negative", Confidence: 0.5},
		"amazon": {Label: "Positive", Confidence: 0.9},
	})
	amazonAt := strings.Index(report, "amazon")
	googleAt := strings.Index(report, "google")
	assert.Less(t, amazonAt, googleAt)
}

func TestSentimentReportEmpty(t *testing.T) {
	f := NewFormatter("en")

	report := f.SentimentReport("en", map[string]ai.Sentiment{})
	assert.Contains(t, report, "try again")
}

func TestLocaleFallback(t *testing.T) {
	f := NewFormatter("en")

	assert.Equal(t, f.Help("en"), f.Help("fr"))
	assert.NotEqual(t, f.Help("en"), f.Help("pt"))
}

func TestPortugueseTemplates(t *testing.T) {
	f := NewFormatter("pt")

	msg := f.AIEnabled("pt", ai.ProviderDeepSeek)
	assert.Contains(t, msg, "IA ativada")
	assert.Contains(t, msg, "DeepSeek")
}

func TestDummyBannerListsAllSelectable(t *testing.T) {
	f := NewFormatter("en")

	banner := f.DummyBanner("en")
	for _, p := range ai.ListSelectable() {
		assert.Contains(t, banner, ai.CommandName(p))
		assert.Contains(t, banner, ai.DisplayName(p))
	}
}

func TestCollectionsEmpty(t *testing.T) {
	f := NewFormatter("en")

	assert.Contains(t, f.Collections("en", nil), "No collections")
	assert.Contains(t, f.SearchResults("en", nil), "No pages")
}
