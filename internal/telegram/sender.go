package telegram

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotAPI is the slice of *tgbotapi.BotAPI this package uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Sender delivers one text message per call, retrying transient transport
// failures with exponential backoff. Telegram enforces its own rate
// limits, so attempts stay bounded.
type Sender struct {
	api BotAPI
	log *zap.Logger

	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewSender creates a Sender with the default retry policy.
func NewSender(api BotAPI, log *zap.Logger) *Sender {
	return &Sender{
		api:             api,
		log:             log,
		initialInterval: 500 * time.Millisecond,
		maxElapsed:      15 * time.Second,
	}
}

// SendText sends a plain text message to the given chat.
// Transient failures (rate limit, server errors) are retried; permanent
// ones (blocked or invalid chat) are returned immediately.
func (s *Sender) SendText(chatID int64, text string) error {
	op := func() error {
		_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		s.log.Warn("send retrying", zap.Int64("chatID", chatID), zap.Error(err))
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.initialInterval
	bo.MaxElapsedTime = s.maxElapsed
	return backoff.Retry(op, bo)
}

// isTransient reports whether a transport error is worth retrying.
// 429 (rate limit) and 5xx are transient; 4xx like 403 (bot blocked) or
// 400 (bad chat id) are not. Network-level errors carry no code and are
// retried.
func isTransient(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return tgErr.Code == 429 || tgErr.Code >= 500
	}
	return true
}
