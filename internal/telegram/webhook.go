package telegram

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SetWebhook registers rawURL as the bot's webhook target. An empty URL
// unregisters the webhook.
func SetWebhook(api BotAPI, rawURL string) error {
	wh, err := tgbotapi.NewWebhook(rawURL)
	if err != nil {
		return err
	}
	_, err = api.Request(wh)
	return err
}

// WebhookHandler returns an HTTP handler that decodes one update per
// request and routes it. The body format is what Telegram posts to a
// registered webhook.
func (r *Router) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var upd tgbotapi.Update
		if err := json.NewDecoder(req.Body).Decode(&upd); err != nil {
			r.log.Warn("webhook decode failed", zap.Error(err))
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		r.HandleUpdate(req.Context(), upd)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}
}
