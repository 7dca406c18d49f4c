package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrAssistantNotConfigured = errors.New("assistant API key is not configured")
	ErrAssistantPromptMissing = errors.New("assistant prompt is required")
)

// assistantSystemPrompt pins the output contract: a Spanish HTML
// fragment the editor can append verbatim, nothing else.
const assistantSystemPrompt = `Eres un asistente de redacción para un blog en español sobre desarrollo y mantenimiento web.
Responde ÚNICAMENTE con un fragmento de HTML listo para insertar en un editor.
Usa solo estas etiquetas: h2, h3, h4, p, ul, li, code, strong, em.
No uses bloques de código markdown, ni las etiquetas html, head o body.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AssistantService turns a topic prompt into a draft HTML fragment via
// a chat-completions API, trying each configured model in order until
// one answers.
type AssistantService struct {
	http    httpDoer
	baseURL string
	apiKey  string
	models  []string
}

func NewAssistantService(baseURL, apiKey string, models []string) *AssistantService {
	return &AssistantService{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		models:  models,
	}
}

// SetHTTPClient swaps the outbound client, mainly for tests.
func (s *AssistantService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 60 * time.Second}
		return
	}
	s.http = client
}

// Configured reports whether drafting can work at all.
func (s *AssistantService) Configured() bool {
	return s.apiKey != "" && s.baseURL != "" && len(s.models) > 0
}

// Draft asks the models in order for a fragment on the given topic and
// returns the first successful answer.
func (s *AssistantService) Draft(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrAssistantPromptMissing
	}
	if !s.Configured() {
		return "", ErrAssistantNotConfigured
	}

	var lastErr error
	for _, model := range s.models {
		content, err := s.complete(ctx, model, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func (s *AssistantService) complete(ctx context.Context, model, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: assistantSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("no se pudo construir la petición: %w", err)
	}

	endpoint := s.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("no se pudo crear la petición: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fallo llamando al modelo %s: %w", model, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("no se pudo leer la respuesta de %s: %w", model, err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("respuesta inválida de %s: %w", model, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(completion.Error.Message)
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("el modelo %s respondió con error: %s", model, msg)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("el modelo %s no devolvió contenido", model)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
