package output

import (
	"context"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"
)

// ModelClient interface - Output port
// Defines what the application needs from the generative model API.
// The persona (system instruction) is fixed at construction for the process
// lifetime; it is not passed per call.
type ModelClient interface {
	// GenerateReply presents the full ordered history plus the new user
	// message to the model and returns the reply text.
	// The call is bounded by a finite timeout. Any failure (transport error,
	// non-success status, malformed response, timeout) is reported as
	// domain.ErrModelUnavailable; the client does not retry and never
	// mutates the session.
	GenerateReply(ctx context.Context, history []domain.ChatMessage, userMessage string) (string, error)
}
