// Package handler adapts the messaging platform's webhook to the relay
// dispatcher.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-chatrelay-svc/internal/relay"
)

// Update is one inbound platform message.
type Update struct {
	UpdateID int64  `json:"update_id"`
	UserID   int64  `json:"user_id"`
	Text     string `json:"text"`
}

type webhookResponse struct {
	Replies []string `json:"replies"`
}

// WebhookHandler receives platform updates and responds with the replies
// to deliver back to the user.
type WebhookHandler struct {
	dispatcher *relay.Dispatcher
	logger     *zap.Logger
}

// NewWebhookHandler creates the webhook handler.
func NewWebhookHandler(dispatcher *relay.Dispatcher, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, logger: logger}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("webhook body parse failed", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	uid := strconv.FormatInt(update.UserID, 10)
	replies := h.route(r, uid, update.Text)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(webhookResponse{Replies: replies}); err != nil {
		h.logger.Error("failed to write webhook response",
			zap.Int64("update_id", update.UpdateID),
			zap.Error(err),
		)
	}
}

// route classifies the update: a leading "/word" token is a command with
// the remainder as its argument; anything else is a free-form message.
func (h *WebhookHandler) route(r *http.Request, uid, text string) []string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		cmd, args, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
		return h.dispatcher.HandleCommand(r.Context(), uid, relay.Command(strings.ToLower(cmd)), args)
	}

	return h.dispatcher.HandleMessage(r.Context(), uid, text)
}
