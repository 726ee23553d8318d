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

// geminiPart is a polymorphic content part (text or inline image data).
type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobData `json:"inlineData,omitempty"`
}

type geminiBlobData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPayload is the generateContent request body.
type geminiPayload struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// geminiResponse is the top-level response envelope.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ── Provider ─────────────────────────────────────────────────────

// GeminiOption configures the Gemini provider.
type GeminiOption func(*Gemini)

// WithGeminiModel overrides the default model name.
func WithGeminiModel(model string) GeminiOption {
	return func(p *Gemini) { p.model = model }
}

// WithGeminiHTTPTimeout sets the HTTP client timeout.
func WithGeminiHTTPTimeout(d time.Duration) GeminiOption {
	return func(p *Gemini) { p.http.Timeout = d }
}

// Compile-time interface check.
var _ domain.Provider = (*Gemini)(nil)

// Gemini is the alternate backing implementation, speaking the
// generateContent wire shape. Behaviorally equivalent to OpenAI at the
// gateway boundary: same input constraints, same output shape, same
// failure signaling.
type Gemini struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	locale      string
	http        *http.Client
	log         *logger.Logger
}

// NewGemini creates the alternate provider. baseURL points at the
// generative-language API root (e.g. ".../v1beta").
func NewGemini(baseURL, apiKey, locale string, log *logger.Logger, opts ...GeminiOption) *Gemini {
	p := &Gemini{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       "gemini-2.0-flash",
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
func (p *Gemini) Name() string { return "gemini" }

// DetectIngredients submits all images in one batched vision request and
// returns the merged, deduplicated name list.
func (p *Gemini) DetectIngredients(ctx context.Context, images []domain.EncodedImage) ([]string, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: empty image batch", domain.ErrDetectionFailed)
	}

	parts := []geminiPart{{Text: detectionInstruction(p.locale)}}
	for _, img := range images {
		parts = append(parts, geminiPart{
			InlineData: &geminiBlobData{MIMEType: domain.ImageMIMEType, Data: string(img)},
		})
	}

	reply, err := p.generate(ctx, parts)
	if err != nil {
		p.log.Error("gemini: detect request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectionFailed, err)
	}

	names, err := ingredientNames(reply)
	if err != nil {
		p.log.Error("gemini: malformed detect reply: %v\nraw: %s", err, truncate(reply, 200))
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectionFailed, err)
	}

	p.log.Info("gemini: detected %d ingredients from %d images", len(names), len(images))
	return names, nil
}

// SuggestRecipes sends the roster brief and validates the reply into a
// fresh recipe batch.
func (p *Gemini) SuggestRecipes(ctx context.Context, roster []domain.Ingredient, pref domain.DietaryPreference) ([]domain.Recipe, error) {
	parts := []geminiPart{{Text: suggestionBrief(roster, pref)}}

	reply, err := p.generate(ctx, parts)
	if err != nil {
		p.log.Error("gemini: suggest request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionFailed, err)
	}

	recipes, err := decodeRecipes(reply, p.Name())
	if err != nil {
		p.log.Error("gemini: malformed suggest reply: %v\nraw: %s", err, truncate(reply, 200))
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionFailed, err)
	}

	p.log.Info("gemini: suggested %d recipes", len(recipes))
	return recipes, nil
}

// generate sends one generateContent request and returns the first
// candidate's text.
func (p *Gemini) generate(ctx context.Context, parts []geminiPart) (string, error) {
	body := geminiPayload{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenConfig{
			Temperature:      p.temperature,
			MaxOutputTokens:  p.maxTokens,
			ResponseMIMEType: "application/json",
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	p.log.Debug("gemini: POST %s/models/%s:generateContent (%d bytes)", p.baseURL, p.model, len(jsonData))

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

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response (no candidates)")
	}

	reply := result.Candidates[0].Content.Parts[0].Text
	p.log.Debug("gemini: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}
