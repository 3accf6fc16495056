package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Roma7-7-7/telegram"
)

//go:generate mockgen -package mocks -destination mocks/telegram.go . TelegramClient

type TelegramClient interface {
	SendMessage(context.Context, string, string) error
}

// Notifier sends messages to a single chat. Delivery is best effort:
// failures are logged and never returned to the caller.
type Notifier struct {
	telegram TelegramClient
	chatID   string

	log *slog.Logger
}

func NewNotifier(telegram TelegramClient, chatID string, log *slog.Logger) *Notifier {
	return &Notifier{
		telegram: telegram,
		chatID:   chatID,
		log:      log.With("component", "service").With("service", "notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, text string) {
	if err := n.telegram.SendMessage(ctx, n.chatID, text); err != nil {
		if errors.Is(err, telegram.ErrForbidden) {
			n.log.WarnContext(ctx, "bot is blocked in chat", "chatID", n.chatID, "error", err)
			return
		}
		n.log.ErrorContext(ctx, "failed to send message", "chatID", n.chatID, "error", err)
		return
	}

	n.log.DebugContext(ctx, "message sent", "chatID", n.chatID)
}
