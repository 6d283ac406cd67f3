package output

// MessengerClient interface - Output port
// Defines what the application needs from the Telegram messaging platform
type MessengerClient interface {
	// SendMessage sends a text message to the given chat
	SendMessage(chatID int64, text string) error
}
