package domain

import (
	"fmt"
	"sync"
	"testing"
)

// TestNewConversationSession tests session creation and initialization
func TestNewConversationSession(t *testing.T) {
	userID := "7052089274"
	session := NewConversationSession(userID)

	if session.UserID != userID {
		t.Errorf("expected UserID %s, got %s", userID, session.UserID)
	}

	if session.Len() != 0 {
		t.Errorf("expected empty history, got %d messages", session.Len())
	}
}

// TestNewConversationSessionWithHistory tests that a persisted transcript is
// restored in exact order and that the input slice is copied
func TestNewConversationSessionWithHistory(t *testing.T) {
	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "Hello"},
		{Role: ChatRoleModel, Content: "Welcome"},
		{Role: ChatRoleUser, Content: "How are you?"},
		{Role: ChatRoleModel, Content: "Well, thank you"},
	}

	session := NewConversationSessionWithHistory("42", history)

	got := session.History()
	if len(got) != len(history) {
		t.Fatalf("expected %d messages, got %d", len(history), len(got))
	}
	for i := range history {
		if got[i] != history[i] {
			t.Errorf("message %d: expected %v, got %v", i, history[i], got[i])
		}
	}

	// Mutating the original slice must not affect the session
	history[0].Content = "mutated"
	if session.History()[0].Content != "Hello" {
		t.Error("expected session history to be independent of the input slice")
	}
}

// TestConversationSessionAppendTurn tests that a turn commits the user
// message followed by the model reply
func TestConversationSessionAppendTurn(t *testing.T) {
	session := NewConversationSession("42")

	userMsg := ChatMessage{Role: ChatRoleUser, Content: "Hello"}
	modelMsg := ChatMessage{Role: ChatRoleModel, Content: "Welcome"}
	session.AppendTurn(userMsg, modelMsg)

	history := session.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages after adding 1 turn, got %d", len(history))
	}

	if history[0].Role != ChatRoleUser || history[0].Content != "Hello" {
		t.Errorf("expected first message to be user message 'Hello', got %v", history[0])
	}

	if history[1].Role != ChatRoleModel || history[1].Content != "Welcome" {
		t.Errorf("expected second message to be model message 'Welcome', got %v", history[1])
	}
}

// TestConversationSessionOrderPreservation tests that many turns come back
// in exactly the order submitted, alternating user/model starting with user
func TestConversationSessionOrderPreservation(t *testing.T) {
	session := NewConversationSession("42")

	const turns = 25
	for i := 0; i < turns; i++ {
		session.AppendTurn(
			ChatMessage{Role: ChatRoleUser, Content: fmt.Sprintf("question %d", i)},
			ChatMessage{Role: ChatRoleModel, Content: fmt.Sprintf("answer %d", i)},
		)
	}

	history := session.History()
	if len(history) != turns*2 {
		t.Fatalf("expected %d messages, got %d", turns*2, len(history))
	}

	for i := 0; i < turns; i++ {
		user := history[i*2]
		model := history[i*2+1]
		if user.Role != ChatRoleUser || user.Content != fmt.Sprintf("question %d", i) {
			t.Errorf("turn %d: expected user message 'question %d', got %v", i, i, user)
		}
		if model.Role != ChatRoleModel || model.Content != fmt.Sprintf("answer %d", i) {
			t.Errorf("turn %d: expected model message 'answer %d', got %v", i, i, model)
		}
	}
}

// TestConversationSessionHistoryReturnsCopy tests that mutating a returned
// history does not affect the session
func TestConversationSessionHistoryReturnsCopy(t *testing.T) {
	session := NewConversationSession("42")
	session.AppendTurn(
		ChatMessage{Role: ChatRoleUser, Content: "Hello"},
		ChatMessage{Role: ChatRoleModel, Content: "Welcome"},
	)

	history := session.History()
	history[0].Content = "mutated"

	if session.History()[0].Content != "Hello" {
		t.Error("expected session history to be unaffected by external modification")
	}
}

// TestConversationSessionNoPruning tests that history grows without bound
func TestConversationSessionNoPruning(t *testing.T) {
	session := NewConversationSession("42")

	const turns = 500
	for i := 0; i < turns; i++ {
		session.AppendTurn(
			ChatMessage{Role: ChatRoleUser, Content: "user message"},
			ChatMessage{Role: ChatRoleModel, Content: "model message"},
		)
	}

	if session.Len() != turns*2 {
		t.Errorf("expected %d messages with no pruning, got %d", turns*2, session.Len())
	}
}

// TestConversationSessionConcurrentReads tests that History can be called
// concurrently with appends without corrupting the transcript
func TestConversationSessionConcurrentReads(t *testing.T) {
	session := NewConversationSession("42")

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			session.AppendTurn(
				ChatMessage{Role: ChatRoleUser, Content: "q"},
				ChatMessage{Role: ChatRoleModel, Content: "a"},
			)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			history := session.History()
			if len(history)%2 != 0 {
				t.Error("expected history length to always be even: turns commit atomically")
				return
			}
		}
	}()

	wg.Wait()

	if session.Len() != 200 {
		t.Errorf("expected 200 messages, got %d", session.Len())
	}
}

// TestChatMessageValid tests role validation used by the transcript store
func TestChatMessageValid(t *testing.T) {
	valid := []ChatMessage{
		{Role: ChatRoleUser, Content: "hi"},
		{Role: ChatRoleModel, Content: ""},
	}
	for _, msg := range valid {
		if !msg.Valid() {
			t.Errorf("expected message %v to be valid", msg)
		}
	}

	invalid := []ChatMessage{
		{Role: "assistant", Content: "hi"},
		{Role: "", Content: "hi"},
	}
	for _, msg := range invalid {
		if msg.Valid() {
			t.Errorf("expected message %v to be invalid", msg)
		}
	}
}
