package main

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zweer/pill-bot/assets"
	"github.com/Zweer/pill-bot/internal/app"
	"github.com/Zweer/pill-bot/internal/config"
	"github.com/Zweer/pill-bot/internal/logger"
	"github.com/Zweer/pill-bot/internal/store"
	"github.com/Zweer/pill-bot/internal/telegram"
)

// bootstrap loads configuration and builds the shared logger.
func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return cfg, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot: inbound updates plus the hourly notification fan-out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			application, err := app.New(cfg, log)
			if err != nil {
				log.Error("app init failed", zap.Error(err))
				return err
			}
			return application.Run(cmd.Context())
		},
	}
}

func loadQuotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load-quotes",
		Short: "Load the embedded quote corpus into the store (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			texts, err := assets.Quotes(cfg.QuoteCategory)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, err := store.OpenSQLite(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = repo.Close() }()

			n, err := repo.LoadAll(ctx, cfg.QuoteCategory, texts)
			if err != nil {
				return fmt.Errorf("load quotes: %w", err)
			}
			log.Info("quotes loaded", zap.String("category", cfg.QuoteCategory), zap.Int("count", n))
			return nil
		},
	}
}

func webhookCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
	}

	root.AddCommand(&cobra.Command{
		Use:   "set URL",
		Short: "Register URL as the webhook target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setWebhook(args[0])
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Unregister the webhook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setWebhook("")
		},
	})
	return root
}

func setWebhook(url string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("bot auth: %w", err)
	}
	if err := telegram.SetWebhook(bot, url); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	if url == "" {
		log.Info("webhook unregistered")
	} else {
		log.Info("webhook registered", zap.String("url", url))
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pill-bot",
		Short: "Daily pill reminder bot with a quote on top",
	}
	rootCmd.AddCommand(serveCmd(), loadQuotesCmd(), webhookCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
