package input

import "context"

// ChatService interface - Input port (use case)
// Defines what the application can do with incoming Telegram updates
type ChatService interface {
	// HandleStart processes the /start command: authorizes the sender,
	// lazily creates a session and replies with the fixed greeting
	HandleStart(ctx context.Context, userID string, chatID int64) error

	// HandleMessage processes a free-text message: authorizes the sender,
	// runs one conversation turn through the model and replies
	HandleMessage(ctx context.Context, userID string, chatID int64, text string) error
}
