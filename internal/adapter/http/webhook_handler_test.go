package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-chatrelay-svc/internal/ai"
	aimocks "go-chatrelay-svc/internal/ai/mocks"
	"go-chatrelay-svc/internal/relay"
	"go-chatrelay-svc/internal/session"
	"go-chatrelay-svc/internal/workspace"
	wsmocks "go-chatrelay-svc/internal/workspace/mocks"
)

func newTestHandler(t *testing.T) (*WebhookHandler, *aimocks.MockTextClient, *wsmocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	text := aimocks.NewMockTextClient(ctrl)
	ws := wsmocks.NewMockClient(ctrl)

	dispatcher := relay.NewDispatcher(
		session.NewStore(ai.ProviderDeepSeek),
		map[ai.Provider]ai.TextClient{ai.ProviderDeepSeek: text},
		aimocks.NewMockSentimentClient(ctrl),
		ws,
		relay.StaticDetector{Tag: "en"},
		relay.NewFormatter("en"),
		zap.NewNop(),
		relay.Options{CallTimeout: time.Second},
	)
	return NewWebhookHandler(dispatcher, zap.NewNop()), text, ws
}

func postUpdate(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, []string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp struct {
		Replies []string `json:"replies"`
	}
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp.Replies
}

func TestWebhookStartCommand(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec, replies := postUpdate(t, h, `{"update_id":1,"user_id":42,"text":"/start"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Welcome")
}

func TestWebhookPlainMessage(t *testing.T) {
	h, text, _ := newTestHandler(t)

	text.EXPECT().
		Generate(gomock.Any(), "hello", gomock.Nil()).
		Return("hi", nil)

	rec, replies := postUpdate(t, h, `{"update_id":2,"user_id":42,"text":"hello"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"hi"}, replies)
}

func TestWebhookCommandWithArgs(t *testing.T) {
	h, _, ws := newTestHandler(t)

	_, replies := postUpdate(t, h, `{"update_id":3,"user_id":42,"text":"/save My Title"}`)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "My Title")

	ws.EXPECT().
		CreateEntry(gomock.Any(), "My Title", "note body").
		Return(&workspace.Entry{ID: "1", URL: "https://ws/1", Title: "My Title"}, nil)

	_, replies = postUpdate(t, h, `{"update_id":4,"user_id":42,"text":"note body"}`)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "https://ws/1")
}

func TestWebhookCommandCaseInsensitive(t *testing.T) {
	h, _, _ := newTestHandler(t)

	_, replies := postUpdate(t, h, `{"update_id":5,"user_id":42,"text":"/HELP"}`)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "/provider")
}

func TestWebhookMalformedBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec, _ := postUpdate(t, h, `{"update_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
