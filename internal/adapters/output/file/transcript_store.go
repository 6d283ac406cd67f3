package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure TranscriptStore implements the TranscriptStore port
var _ output.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore struct - Output adapter persisting transcripts as a single
// JSON document at a fixed path. Every save rewrites the whole document with
// the current snapshot; the file is human-readable UTF-8 and maps user-id
// strings to ordered arrays of {role, content} records.
type TranscriptStore struct {
	path string
	mu   sync.Mutex
}

// NewTranscriptStore creates a transcript store backed by the given file path
func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

// Load reads the persisted transcript document.
// An absent file yields an empty mapping. A present but unparsable or
// structurally invalid document is discarded with a warning and also yields
// an empty mapping; the on-disk state is not repaired or backed up.
func (s *TranscriptStore) Load() (map[string][]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Infof("No transcript file found at %s, starting with empty history", s.path)
			return make(map[string][]domain.ChatMessage), nil
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var transcripts map[string][]domain.ChatMessage
	if err := json.Unmarshal(data, &transcripts); err != nil {
		logrus.Warnf("%v: %v, starting with empty history", domain.ErrTranscriptCorrupt, err)
		return make(map[string][]domain.ChatMessage), nil
	}

	// The whole document is discarded when any record carries an unknown
	// role tag: a partially valid transcript would replay wrong context.
	for userID, messages := range transcripts {
		for _, msg := range messages {
			if !msg.Valid() {
				logrus.Warnf("%v: unknown role %q for user %s, starting with empty history",
					domain.ErrTranscriptCorrupt, msg.Role, userID)
				return make(map[string][]domain.ChatMessage), nil
			}
		}
	}

	if transcripts == nil {
		transcripts = make(map[string][]domain.ChatMessage)
	}

	logrus.Infof("Loaded transcripts for %d users from %s", len(transcripts), s.path)
	return transcripts, nil
}

// Save overwrites the persisted document with the given full snapshot.
// The snapshot is written to a temporary file and renamed into place so a
// crash mid-write never leaves a truncated document behind.
func (s *TranscriptStore) Save(snapshot map[string][]domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot == nil {
		snapshot = make(map[string][]domain.ChatMessage)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal snapshot: %v", domain.ErrTranscriptWriteFailed, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("%w: failed to create directory: %v", domain.ErrTranscriptWriteFailed, err)
		}
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write temp file: %v", domain.ErrTranscriptWriteFailed, err)
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("%w: failed to replace transcript file: %v", domain.ErrTranscriptWriteFailed, err)
	}

	return nil
}
