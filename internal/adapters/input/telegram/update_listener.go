package telegram

import (
	"context"
	"strconv"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/input"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const pollTimeoutSeconds = 30

// UpdateListener struct - Primary/Driving adapter for Telegram updates.
// Long-polls the Bot API and dispatches each text update to the application
// service. Updates are handled in separate goroutines so users do not block
// each other; per-user ordering is enforced inside the service.
type UpdateListener struct {
	bot     *tgbotapi.BotAPI
	service input.ChatService
}

// NewUpdateListener func - Creates new Telegram update listener
func NewUpdateListener(bot *tgbotapi.BotAPI, service input.ChatService) *UpdateListener {
	return &UpdateListener{
		bot:     bot,
		service: service,
	}
}

// Run starts the long-polling loop and blocks until the context is cancelled
func (l *UpdateListener) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds

	updates := l.bot.GetUpdatesChan(updateConfig)

	logrus.Info("Telegram update listener started")

	for {
		select {
		case <-ctx.Done():
			l.bot.StopReceivingUpdates()
			logrus.Info("Telegram update listener stopped")
			return nil
		case update := <-updates:
			go l.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate - Converts one Telegram update into a use-case call
func (l *UpdateListener) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	userID := strconv.FormatInt(update.Message.From.ID, 10)
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if update.Message.IsCommand() {
		if update.Message.Command() != "start" {
			logrus.Infof("Ignoring unknown command: /%s", update.Message.Command())
			return
		}
		if err := l.service.HandleStart(ctx, userID, chatID); err != nil {
			logrus.Errorf("Failed to handle /start: %v", err)
		}
		return
	}

	if text == "" {
		logrus.Debugf("Ignoring non-text message from user %s", userID)
		return
	}

	if err := l.service.HandleMessage(ctx, userID, chatID, text); err != nil {
		logrus.Errorf("Failed to handle message: %v", err)
	}
}
