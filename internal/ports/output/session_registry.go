package output

import "github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"

// SessionRegistry interface - Output port
// Defines what the application needs for managing live conversation sessions.
// The registry owns one session per user for the process lifetime.
// Implementations must be safe for concurrent access: the transport may
// deliver updates for different users at the same time.
type SessionRegistry interface {
	// GetOrCreate returns the existing session for the user or creates,
	// registers and returns a new empty one. Idempotent: repeated calls for
	// the same user ID return the same session.
	GetOrCreate(userID string) *domain.ConversationSession

	// Snapshot produces the full current state for persistence: every
	// registered user mapped to a copy of its ordered message history.
	Snapshot() map[string][]domain.ChatMessage

	// LoadSnapshot materializes a session per entry of a persisted snapshot,
	// preserving message order. Called once at process start before any
	// updates are handled.
	LoadSnapshot(snapshot map[string][]domain.ChatMessage)

	// LockUser acquires the per-user serialization lock and returns the
	// release function. At most one model call plus persist is in flight per
	// user at a time; different users never block each other here.
	LockUser(userID string) func()
}
