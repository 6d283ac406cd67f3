package telegram

import (
	"fmt"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/output"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TelegramClientAdapter implements the MessengerClient port
var _ output.MessengerClient = (*TelegramClientAdapter)(nil)

// TelegramClientAdapter struct - Output adapter for the Telegram Bot API
type TelegramClientAdapter struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramClientAdapter func - Creates new Telegram client adapter
func NewTelegramClientAdapter(token string, debug bool) (*TelegramClientAdapter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API client: %w", err)
	}
	bot.Debug = debug

	logrus.Infof("Authorized on Telegram account: %s", bot.Self.UserName)

	return &TelegramClientAdapter{
		bot: bot,
	}, nil
}

// SendMessage - Sends a text message to the given chat
func (a *TelegramClientAdapter) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := a.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// Bot - Exposes the underlying API client so the update listener can share
// the same connection
func (a *TelegramClientAdapter) Bot() *tgbotapi.BotAPI {
	return a.bot
}
