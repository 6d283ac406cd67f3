package domain

// ChatRole represents the speaker of a message in a conversation.
// The values match the role tags the Gemini API expects in request contents,
// so transcripts can be replayed into the model without translation.
type ChatRole string

const (
	// ChatRoleUser - Message sent by the Telegram user
	ChatRoleUser ChatRole = "user"
	// ChatRoleModel - Message generated by the model
	ChatRoleModel ChatRole = "model"
)

// ChatMessage represents one message unit in a conversation transcript.
// Messages are immutable once created; ordering within a transcript is
// significant because the full history is replayed on every model call.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Valid reports whether the message carries a known role tag.
// Used when loading persisted transcripts to detect structurally
// invalid documents.
func (m ChatMessage) Valid() bool {
	return m.Role == ChatRoleUser || m.Role == ChatRoleModel
}
