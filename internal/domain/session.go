package domain

import "sync"

// ConversationSession represents the conversation transcript for one Telegram user
type ConversationSession struct {
	UserID string // Telegram user identifier, stored as a string key

	mu       sync.RWMutex
	messages []ChatMessage // Ordered conversation history, oldest first
}

// NewConversationSession creates a new empty conversation session for a user.
// Sessions are never expired or deleted in normal operation; history grows
// without bound until a retention policy is introduced here.
func NewConversationSession(userID string) *ConversationSession {
	return &ConversationSession{
		UserID:   userID,
		messages: make([]ChatMessage, 0),
	}
}

// NewConversationSessionWithHistory creates a session pre-populated with a
// persisted transcript, preserving message order. The slice is copied.
func NewConversationSessionWithHistory(userID string, history []ChatMessage) *ConversationSession {
	messages := make([]ChatMessage, len(history))
	copy(messages, history)
	return &ConversationSession{
		UserID:   userID,
		messages: messages,
	}
}

// Append adds a single message at the end of the transcript
func (s *ConversationSession) Append(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// AppendTurn adds one completed exchange: the user message followed by
// the model reply. Both messages are committed together so a transcript
// never ends on an unanswered user message.
func (s *ConversationSession) AppendTurn(userMsg, modelMsg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, userMsg, modelMsg)
}

// History returns a copy of the conversation transcript, oldest first
func (s *ConversationSession) History() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	history := make([]ChatMessage, len(s.messages))
	copy(history, s.messages)
	return history
}

// Len returns the number of messages in the transcript
func (s *ConversationSession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
