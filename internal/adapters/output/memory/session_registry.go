package memory

import (
	"sync"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/output"
)

// Compile-time check to ensure SessionRegistry implements the SessionRegistry port
var _ output.SessionRegistry = (*SessionRegistry)(nil)

// SessionRegistry struct - Output adapter for in-memory session state.
// Maps user IDs to their live conversation sessions for the process lifetime.
// Sessions are created lazily and never deleted in normal operation.
// A separate per-user mutex set serializes turn handling per user while
// leaving different users fully parallel.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ConversationSession

	userLocks sync.Map // userID -> *sync.Mutex
}

// NewSessionRegistry creates a new empty session registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*domain.ConversationSession),
	}
}

// GetOrCreate returns the existing session for the user, or creates and
// registers a new empty one. Idempotent for a given user ID.
func (r *SessionRegistry) GetOrCreate(userID string) *domain.ConversationSession {
	r.mu.RLock()
	session, exists := r.sessions[userID]
	r.mu.RUnlock()
	if exists {
		return session
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check after acquiring the write lock
	if session, exists := r.sessions[userID]; exists {
		return session
	}

	session = domain.NewConversationSession(userID)
	r.sessions[userID] = session
	return session
}

// Snapshot returns the full current state for persistence: every registered
// user mapped to a copy of its ordered history
func (r *SessionRegistry) Snapshot() map[string][]domain.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string][]domain.ChatMessage, len(r.sessions))
	for userID, session := range r.sessions {
		snapshot[userID] = session.History()
	}
	return snapshot
}

// LoadSnapshot materializes a session per persisted entry, preserving
// message order. Replaces any sessions registered so far.
func (r *SessionRegistry) LoadSnapshot(snapshot map[string][]domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = make(map[string]*domain.ConversationSession, len(snapshot))
	for userID, history := range snapshot {
		r.sessions[userID] = domain.NewConversationSessionWithHistory(userID, history)
	}
}

// Len returns the number of registered sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// LockUser acquires the serialization lock for one user and returns the
// release function. Lock instances are created lazily and kept for the
// process lifetime, matching the sessions themselves.
func (r *SessionRegistry) LockUser(userID string) func() {
	value, _ := r.userLocks.LoadOrStore(userID, &sync.Mutex{})
	lock := value.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}
