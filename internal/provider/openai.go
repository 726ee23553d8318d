// Package provider abstracts ingredient detection and recipe suggestion
// behind a single capability interface with two interchangeable backing
// implementations, selected once at startup.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

const (
	roleSystem = "system"
	roleUser   = "user"
)

// chatMessage is a single chat-completion message.
type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

// chatContent is a polymorphic content block (text or image_url).
type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

func textMessage(role, text string) chatMessage {
	return chatMessage{
		Role:    role,
		Content: []chatContent{{Type: "text", Text: text}},
	}
}

// chatPayload is the request body sent to the chat-completions endpoint.
type chatPayload struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Model       string        `json:"model,omitempty"`
}

// chatResponse is the top-level response envelope.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ── Provider ─────────────────────────────────────────────────────

// OpenAIOption configures the OpenAI provider.
type OpenAIOption func(*OpenAI)

// WithModel overrides the default model name.
func WithModel(model string) OpenAIOption {
	return func(p *OpenAI) { p.model = model }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) OpenAIOption {
	return func(p *OpenAI) { p.http.Timeout = d }
}

// Compile-time interface check.
var _ domain.Provider = (*OpenAI)(nil)

// OpenAI is the default backing implementation, speaking the
// chat-completions wire shape. Works against OpenAI itself and
// API-compatible deployments.
type OpenAI struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	locale      string
	http        *http.Client
	log         *logger.Logger
}

// NewOpenAI creates the default provider.
//   - endpoint: full URL to the chat/completions resource
//   - apiKey:   the API key; sent both as a Bearer token and an api-key
//     header so Azure-style deployments work unchanged
func NewOpenAI(endpoint, apiKey, locale string, log *logger.Logger, opts ...OpenAIOption) *OpenAI {
	p := &OpenAI{
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       "gpt-4o-mini",
		temperature: 0.4,
		maxTokens:   1500,
		locale:      locale,
		http:        &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Name identifies this backing implementation.
func (p *OpenAI) Name() string { return "openai" }

// DetectIngredients submits all images in one batched vision request and
// returns the merged, deduplicated name list.
func (p *OpenAI) DetectIngredients(ctx context.Context, images []domain.EncodedImage) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: empty image batch", domain.ErrDetectionFailed)
	}

	content := []chatContent{{Type: "text", Text: detectionInstruction(p.locale)}}
	for _, img := range images {
		content = append(content, chatContent{
			Type:     "image_url",
			ImageURL: &chatImageURL{URL: fmt.Sprintf("data:%s;base64,%s", domain.ImageMIMEType, img)},
		})
	}

	reply, err := p.chat(ctx, []chatMessage{{Role: roleUser, Content: content}})
	if err != nil {
		p.log.Error("openai: detect request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectionFailed, err)
	}

	names, err := ingredientNames(reply)
	if err != nil {
		p.log.Error("openai: malformed detect reply: %v\nraw: %s", err, truncate(reply, 200))
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectionFailed, err)
	}

	p.log.Info("openai: detected %d ingredients from %d images", len(names), len(images))
	return names, nil
}

// SuggestRecipes sends the roster brief and validates the reply into a
// fresh recipe batch.
func (p *OpenAI) SuggestRecipes(ctx context.Context, roster []domain.Ingredient, pref domain.DietaryPreference) ([]domain.Recipe, error) {
	messages := []chatMessage{
		textMessage(roleSystem, "You respond with strict JSON only. No markdown, no commentary."),
		textMessage(roleUser, suggestionBrief(roster, pref)),
	}

	reply, err := p.chat(ctx, messages)
	if err != nil {
		p.log.Error("openai: suggest request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionFailed, err)
	}

	recipes, err := decodeRecipes(reply, p.Name())
	if err != nil {
		p.log.Error("openai: malformed suggest reply: %v\nraw: %s", err, truncate(reply, 200))
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionFailed, err)
	}

	p.log.Info("openai: suggested %d recipes", len(recipes))
	return recipes, nil
}

// chat sends a chat-completion request and returns the assistant's reply.
func (p *OpenAI) chat(ctx context.Context, messages []chatMessage) (string, error) {
	body := chatPayload{
		Messages:    messages,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Model:       p.model,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("api-key", p.apiKey)

	p.log.Debug("openai: POST %s (%d bytes)", p.endpoint, len(jsonData))

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API %s: %s", resp.Status, truncate(string(respBody), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty response (no choices)")
	}

	reply := result.Choices[0].Message.Content
	p.log.Debug("openai: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
