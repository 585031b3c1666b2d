package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

// Telegram posts every confirmed order to the staff chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, tgbotapi.APIEndpoint, chatID)
}

// NewTelegramWithEndpoint targets a custom bot API endpoint, formatted like
// tgbotapi.APIEndpoint.
func NewTelegramWithEndpoint(token, endpoint string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, newHTTPClient())
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) OrderConfirmed(_ context.Context, o *order.Order) error {
	msg := tgbotapi.NewMessage(t.chatID, summary(o))
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
