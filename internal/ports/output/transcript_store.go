package output

import "github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"

// TranscriptStore interface - Output port
// Defines what the application needs for durable transcript persistence.
// The persisted document is always a complete snapshot of every user's
// transcript at the last successful save, not an append log.
type TranscriptStore interface {
	// Load reads the persisted transcript document and returns a mapping
	// from user ID to that user's ordered message history.
	// An absent document is not an error: an empty mapping is returned.
	// A document that is present but unparsable or structurally invalid is
	// discarded with a warning and an empty mapping is returned; corruption
	// never propagates to the caller. Returns an error only for storage
	// access failures other than the file not existing.
	Load() (map[string][]domain.ChatMessage, error)

	// Save overwrites the persisted document with the given full snapshot.
	// The write is best-effort atomic. A returned error means durability of
	// the latest turns is at risk; callers log it and continue, the
	// in-memory state is not rolled back.
	Save(snapshot map[string][]domain.ChatMessage) error
}
