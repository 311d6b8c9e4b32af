package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Zweer/pill-bot/internal/config"
	"github.com/Zweer/pill-bot/internal/scheduler"
	"github.com/Zweer/pill-bot/internal/store"
	"github.com/Zweer/pill-bot/internal/telegram"
)

// App owns every long-lived handle: transport client, store, HTTP server.
// All of them are constructed once per process start and injected into the
// components that need them.
type App struct {
	cfg config.Config
	log *zap.Logger
	bot *tgbotapi.BotAPI

	repo    *store.SQLiteRepo
	router  *telegram.Router
	sched   *scheduler.Scheduler
	httpSrv *http.Server
}

// New constructs the application and authenticates the bot.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &App{cfg: cfg, log: log, bot: bot}, nil
}

// Run wires the components together and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting pill-bot",
		zap.String("mode", a.cfg.RunMode),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	a.router = telegram.NewRouter(a.bot, a.log, repo)

	sender := telegram.NewSender(a.bot, a.log)
	dispatcher := scheduler.NewDispatcher(repo, repo, sender, a.log, a.cfg.Workers)
	a.sched = scheduler.New(dispatcher, a.log)

	a.httpSrv = &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      a.routes(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()
	go a.sched.Run(ctx)

	if a.cfg.RunMode == config.ModePolling {
		a.pollUpdates(ctx)
	} else {
		<-ctx.Done()
	}

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// routes builds the HTTP surface: health, metrics and (in webhook mode)
// the inbound update endpoint.
func (a *App) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if a.cfg.RunMode == config.ModeWebhook {
		r.HandleFunc(a.cfg.WebhookPath, a.router.WebhookHandler()).Methods(http.MethodPost)
	}
	return r
}

// pollUpdates consumes long-polling updates until ctx is canceled.
func (a *App) pollUpdates(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) shutdown() error {
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()

	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
	return nil
}
