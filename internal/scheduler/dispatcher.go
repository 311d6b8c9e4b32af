package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zweer/pill-bot/internal/domain"
	"github.com/Zweer/pill-bot/internal/metrics"
)

// UserSource yields the users due for notification at a given hour.
type UserSource interface {
	ScanEligible(ctx context.Context, hour int) ([]domain.User, error)
}

// QuoteSource yields one quote per seed from a cyclic collection.
type QuoteSource interface {
	PickOne(ctx context.Context, seed string) (*domain.Quote, error)
}

// Sender is the minimal interface the dispatcher needs to deliver a text.
type Sender interface {
	SendText(chatID int64, text string) error
}

// Summary aggregates per-user outcomes of one tick.
type Summary struct {
	Eligible   int
	Dispatched int
	Failed     int
	Skipped    int // left unprocessed because the context was canceled
}

// Dispatcher fans one tick out to every eligible user. Per-user work is
// independent; one failure never aborts the others.
type Dispatcher struct {
	users   UserSource
	quotes  QuoteSource
	sender  Sender
	log     *zap.Logger
	workers int
}

// NewDispatcher creates a Dispatcher with the given concurrency bound.
func NewDispatcher(users UserSource, quotes QuoteSource, sender Sender, log *zap.Logger, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		users:   users,
		quotes:  quotes,
		sender:  sender,
		log:     log,
		workers: workers,
	}
}

// Dispatch runs one fan-out for the given tick and returns its summary.
func (d *Dispatcher) Dispatch(ctx context.Context, tick time.Time) Summary {
	start := time.Now()
	defer func() { metrics.TickDuration.Observe(time.Since(start).Seconds()) }()

	log := d.log.With(
		zap.String("runID", uuid.NewString()),
		zap.Time("tick", tick.UTC()),
	)

	hour := tick.UTC().Hour()
	users, err := d.users.ScanEligible(ctx, hour)
	if err != nil {
		log.Error("eligibility scan failed", zap.Int("hour", hour), zap.Error(err))
		return Summary{}
	}

	// One seed per tick: an idempotent retry of the whole tick picks the
	// same quote for everyone.
	seed := domain.TickSeed(tick)

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, d.workers)
		mu  sync.Mutex
	)
	sum := Summary{Eligible: len(users)}

	for _, u := range users {
		if ctx.Err() != nil {
			mu.Lock()
			sum.Skipped++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(u domain.User) {
			defer wg.Done()
			defer func() { <-sem }()

			err := d.dispatchOne(ctx, seed, u)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Failed++
				log.Error("dispatch failed", zap.Int64("chatID", u.ChatID), zap.Error(err))
				return
			}
			sum.Dispatched++
		}(u)
	}
	wg.Wait()

	log.Info("tick complete",
		zap.Int("eligible", sum.Eligible),
		zap.Int("dispatched", sum.Dispatched),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
	)
	return sum
}

// dispatchOne handles a single user: pick quote, compose, deliver.
func (d *Dispatcher) dispatchOne(ctx context.Context, seed string, u domain.User) error {
	quote, err := d.quotes.PickOne(ctx, seed)
	if err != nil {
		metrics.NotificationsFailed.WithLabelValues("quote").Inc()
		return fmt.Errorf("pick quote: %w", err)
	}

	text := domain.RenderMessage(domain.ComposeReminder(u.Name, quote.Text))
	if err := d.sender.SendText(u.ChatID, text); err != nil {
		metrics.NotificationsFailed.WithLabelValues("send").Inc()
		return fmt.Errorf("send: %w", err)
	}

	metrics.NotificationsDispatched.Inc()
	return nil
}
