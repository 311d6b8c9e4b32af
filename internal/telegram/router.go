package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Zweer/pill-bot/internal/domain"
	"github.com/Zweer/pill-bot/internal/metrics"
	"github.com/Zweer/pill-bot/internal/store"
)

// UserStore is the slice of storage the router needs.
type UserStore interface {
	Get(ctx context.Context, chatID int64) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// Router wires Telegram updates into the registration state machine.
type Router struct {
	api   BotAPI
	log   *zap.Logger
	users UserStore
}

// NewRouter creates a new Telegram router.
func NewRouter(api BotAPI, log *zap.Logger, users UserStore) *Router {
	return &Router{api: api, log: log, users: users}
}

// HandleUpdate routes a single update. Only text messages participate in
// registration; everything else is ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Text == "" {
		return
	}
	r.handleText(ctx, upd.Message)
}

// handleText runs one step of the registration state machine: state is
// computed once, the decision's write (if any) is persisted first, and
// the reply is only sent after a successful write.
func (r *Router) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	u, err := r.users.Get(ctx, chatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		r.log.Error("get user failed", zap.Int64("chatID", chatID), zap.Error(err))
		return
	}

	state := domain.StateOf(u)
	metrics.UpdatesHandled.WithLabelValues(state.String()).Inc()

	d := domain.Decide(state, u, chatID, senderName(msg), text, time.Now())

	if d.Write != nil {
		if err := r.users.Put(ctx, d.Write); err != nil {
			// Do not confirm a state that was not persisted.
			r.log.Error("put user failed", zap.Int64("chatID", chatID), zap.Error(err))
			return
		}
	}

	if d.Reply != "" {
		reply := tgbotapi.NewMessage(chatID, d.Reply)
		if d.ShowKeyboard {
			reply.ReplyMarkup = hourKeyboard()
		}
		if _, err := r.api.Send(reply); err != nil {
			// Reply is best-effort after the write.
			r.log.Warn("reply failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
	}

	// d.Continue would hand over to a next stage; there is none here.
}

// senderName picks the display name for a first contact.
func senderName(msg *tgbotapi.Message) string {
	if msg.From != nil && msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	return msg.Chat.FirstName
}
