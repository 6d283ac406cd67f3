package application

import (
	"context"
	"fmt"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChatService struct - Application service implementing the per-message use cases.
// Orchestrates one conversation turn: authorize, resolve the session, call the
// model, commit both messages, persist the full registry snapshot, reply.
type ChatService struct {
	messenger  output.MessengerClient
	model      output.ModelClient
	registry   output.SessionRegistry
	store      output.TranscriptStore
	authorized map[string]struct{}
	greeting   string
	fallback   string
}

// NewChatService func - Creates new chat service
func NewChatService(
	messenger output.MessengerClient,
	model output.ModelClient,
	registry output.SessionRegistry,
	store output.TranscriptStore,
	authorizedUsers []string,
	greeting string,
	fallback string,
) *ChatService {
	authorized := make(map[string]struct{}, len(authorizedUsers))
	for _, id := range authorizedUsers {
		authorized[id] = struct{}{}
	}

	return &ChatService{
		messenger:  messenger,
		model:      model,
		registry:   registry,
		store:      store,
		authorized: authorized,
		greeting:   greeting,
		fallback:   fallback,
	}
}

// HandleStart func - Use case: Handle the /start command.
// Unauthorized senders are dropped without a reply, so the bot never
// acknowledges its presence to strangers.
func (s *ChatService) HandleStart(ctx context.Context, userID string, chatID int64) error {
	if !s.isAuthorized(userID) {
		logrus.Debugf("Dropping /start from unauthorized user: %s", userID)
		return nil
	}

	s.registry.GetOrCreate(userID)

	if err := s.messenger.SendMessage(chatID, s.greeting); err != nil {
		return fmt.Errorf("failed to send greeting: %w", err)
	}

	logrus.Infof("Sent greeting to user %s", userID)
	return nil
}

// HandleMessage func - Use case: Handle one free-text message as a conversation turn.
// Turns for a single user are serialized: the per-user lock is held across the
// model call, the append and the persist, so concurrent deliveries for the
// same user can never interleave or reorder the transcript. Different users
// proceed in parallel.
func (s *ChatService) HandleMessage(ctx context.Context, userID string, chatID int64, text string) error {
	if !s.isAuthorized(userID) {
		logrus.Debugf("Dropping message from unauthorized user: %s", userID)
		return nil
	}

	turnID := uuid.NewString()

	unlock := s.registry.LockUser(userID)
	defer unlock()

	session := s.registry.GetOrCreate(userID)

	reply, err := s.model.GenerateReply(ctx, session.History(), text)
	if err != nil {
		// The session is not mutated and nothing is persisted: the user's
		// message is dropped from history rather than retried or queued.
		logrus.Errorf("Turn %s: model call failed for user %s: %v", turnID, userID, err)
		if sendErr := s.messenger.SendMessage(chatID, s.fallback); sendErr != nil {
			return fmt.Errorf("failed to send fallback reply: %w", sendErr)
		}
		return nil
	}

	session.AppendTurn(
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: text},
		domain.ChatMessage{Role: domain.ChatRoleModel, Content: reply},
	)

	s.persist(turnID, userID)

	if err := s.messenger.SendMessage(chatID, reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	logrus.Infof("Turn %s: completed for user %s, history length %d", turnID, userID, session.Len())
	return nil
}

// persist writes the full registry snapshot through the transcript store.
// A failed save leaves the appended turn in memory only; it is carried by the
// next successful save, but is lost silently if the process dies first.
func (s *ChatService) persist(turnID, userID string) {
	if err := s.store.Save(s.registry.Snapshot()); err != nil {
		logrus.Errorf("Turn %s: failed to persist transcripts after turn for user %s: %v", turnID, userID, err)
	}
}

func (s *ChatService) isAuthorized(userID string) bool {
	_, ok := s.authorized[userID]
	return ok
}
