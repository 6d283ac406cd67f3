package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/configs"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/domain"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure GeminiClientAdapter implements the ModelClient port
var _ output.ModelClient = (*GeminiClientAdapter)(nil)

const defaultTimeout = 60 * time.Second

// GeminiClientAdapter struct - Output adapter for the Google Generative
// Language API. The persona is set once at construction and sent as the
// system instruction on every call; it never varies per user or per call.
// Failures are not retried here: the orchestrator surfaces each one to the
// user as the fixed fallback message.
type GeminiClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	persona    string
	timeout    time.Duration
}

// NewGeminiClientAdapter func - Creates new Gemini client adapter
func NewGeminiClientAdapter(config configs.Gemini, persona string) (*GeminiClientAdapter, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if config.Model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &GeminiClientAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		model:      config.Model,
		persona:    persona,
		timeout:    timeout,
	}

	logrus.Infof("Gemini client adapter initialized with model: %s, timeout: %v", config.Model, timeout)

	return adapter, nil
}

// Wire types for the generateContent endpoint

type generateContentAPIRequest struct {
	SystemInstruction *contentAPI  `json:"system_instruction,omitempty"`
	Contents          []contentAPI `json:"contents"`
}

type contentAPI struct {
	Role  string    `json:"role,omitempty"`
	Parts []partAPI `json:"parts"`
}

type partAPI struct {
	Text string `json:"text"`
}

type generateContentAPIResponse struct {
	Candidates []struct {
		Content contentAPI `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// GenerateReply sends the full ordered history plus the new user message to
// the model under the fixed persona and returns the reply text.
// Every failure mode maps to domain.ErrModelUnavailable so the caller has a
// single recovery path.
func (a *GeminiClientAdapter) GenerateReply(ctx context.Context, history []domain.ChatMessage, userMessage string) (string, error) {
	reqBody := generateContentAPIRequest{
		Contents: make([]contentAPI, 0, len(history)+1),
	}

	if a.persona != "" {
		reqBody.SystemInstruction = &contentAPI{
			Parts: []partAPI{{Text: a.persona}},
		}
	}

	for _, msg := range history {
		reqBody.Contents = append(reqBody.Contents, contentAPI{
			Role:  string(msg.Role),
			Parts: []partAPI{{Text: msg.Content}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, contentAPI{
		Role:  string(domain.ChatRoleUser),
		Parts: []partAPI{{Text: userMessage}},
	})

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", domain.ErrModelUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", domain.ErrModelUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d - %s", domain.ErrModelUnavailable, resp.StatusCode, string(body))
	}

	var apiResp generateContentAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", domain.ErrModelUnavailable, err)
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", domain.ErrModelUnavailable)
	}

	var sb strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	reply := sb.String()

	if reply == "" {
		return "", fmt.Errorf("%w: empty reply text", domain.ErrModelUnavailable)
	}

	logrus.Infof("Gemini reply generated, model: %s, tokens: %d", a.model, apiResp.UsageMetadata.TotalTokenCount)

	return reply, nil
}
