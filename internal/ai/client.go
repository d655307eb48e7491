package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nurpe/rumbos-envios/internal/config"
)

var (
	ErrAIService    = errors.New("AI service error")
	ErrInvalidInput = errors.New("invalid input")
)

// Completer sends a rendered prompt and returns the raw JSON answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewCompleter returns a Gemini-backed completer, or one that always fails
// with ErrAIService when no API key is configured.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return disabled{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model, temperature: cfg.Temperature}, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	content := &genai.Content{
		Parts: []*genai.Part{{Text: prompt}},
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated")
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return stripFence(text.String()), nil
}

type disabled struct{}

func (disabled) Complete(context.Context, string) (string, error) {
	return "", errors.New("GEMINI_API_KEY is not configured")
}

// stripFence removes a markdown code fence around a JSON answer.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}
	text = strings.TrimSuffix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
	}
	return strings.TrimSpace(text)
}
