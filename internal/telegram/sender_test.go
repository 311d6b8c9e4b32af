package telegram

import (
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyAPI fails the first n sends with the given error.
type flakyAPI struct {
	failures int
	err      error
	calls    int
}

func (f *flakyAPI) Send(tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	if f.calls <= f.failures {
		return tgbotapi.Message{}, f.err
	}
	return tgbotapi.Message{}, nil
}

func (f *flakyAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func newTestSender(api BotAPI) *Sender {
	s := NewSender(api, zap.NewNop())
	s.initialInterval = time.Millisecond
	s.maxElapsed = 100 * time.Millisecond
	return s
}

func TestSender_RetriesRateLimit(t *testing.T) {
	api := &flakyAPI{failures: 2, err: &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}}
	s := newTestSender(api)

	require.NoError(t, s.SendText(1, "hi"))
	assert.Equal(t, 3, api.calls)
}

func TestSender_PermanentFailureNotRetried(t *testing.T) {
	api := &flakyAPI{failures: 10, err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}
	s := newTestSender(api)

	err := s.SendText(1, "hi")
	require.Error(t, err)
	assert.Equal(t, 1, api.calls, "blocked chat must not be retried")
}

func TestSender_NetworkErrorRetriedUntilExhausted(t *testing.T) {
	api := &flakyAPI{failures: 1000, err: errors.New("connection reset")}
	s := newTestSender(api)

	err := s.SendText(1, "hi")
	require.Error(t, err)
	assert.Greater(t, api.calls, 1, "network errors are transient")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&tgbotapi.Error{Code: 429}))
	assert.True(t, isTransient(&tgbotapi.Error{Code: 502}))
	assert.True(t, isTransient(errors.New("timeout")))
	assert.False(t, isTransient(&tgbotapi.Error{Code: 403}))
	assert.False(t, isTransient(&tgbotapi.Error{Code: 400}))
}
