package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tc "github.com/Roma7-7-7/telegram"

	"github.com/Roma7-7-7/homework-notifier/internal/config"
	"github.com/Roma7-7-7/homework-notifier/internal/providers"
	"github.com/Roma7-7-7/homework-notifier/internal/service"
	"github.com/Roma7-7-7/homework-notifier/internal/telegram"
	"github.com/Roma7-7-7/homework-notifier/pkg/clock"
)

const LevelCritical = slog.Level(12)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.NewConfig(ctx)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := mustLogger(conf.Dev)

	if !conf.CheckTokens() {
		log.Log(ctx, LevelCritical, "Отсутствует, как минимум, одна переменная окружения")
		os.Exit(1)
	}

	if conf.TelegramVerify {
		info, err := telegram.Verify("", conf.TelegramToken, conf.TelegramChatID, http.DefaultClient)
		if err != nil {
			log.Log(ctx, LevelCritical, "Failed to verify telegram bot", "error", err)
			os.Exit(1)
		}
		log.InfoContext(ctx, "Telegram bot verified", "bot", info.Username, "chat", info.Chat)
	}

	sender := tc.NewClient(http.DefaultClient, conf.TelegramToken)
	notifier := service.NewNotifier(sender, conf.TelegramChatID, log)

	provider, err := providers.NewPracticumProvider(conf.Endpoint, conf.PracticumToken, http.DefaultClient, notifier, log)
	if err != nil {
		log.Log(ctx, LevelCritical, "Failed to create homework statuses provider", "error", err)
		os.Exit(1)
	}

	watcher := service.NewWatcher(provider, notifier, clock.New(), conf.RetryPeriod, conf.RequestTimeout, log)
	watcher.Run(ctx)
}

func mustLogger(dev bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: replaceLevel,
	}

	if dev {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}
