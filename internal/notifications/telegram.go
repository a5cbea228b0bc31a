package notifications

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/albapepper/comeback-scout/internal/model"
)

// chatSender is the subset of *tgbotapi.BotAPI the sender uses.
type chatSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts a formatted alert message to a single chat.
type TelegramSender struct {
	bot    chatSender
	chatID int64
}

// NewTelegramSender connects to the Bot API. Returns nil, nil when token is
// empty (Telegram disabled).
func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

func (t *TelegramSender) Name() string { return "telegram" }

// Send ignores ctx: the Bot API client has no context support.
func (t *TelegramSender) Send(_ context.Context, alert model.ComebackAlert) error {
	msg := tgbotapi.NewMessage(t.chatID, buildMessage(alert))
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (t *TelegramSender) Close() error { return nil }
