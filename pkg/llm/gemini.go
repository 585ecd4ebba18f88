// Package llm adapts the Gemini text generation API to the narrow
// prompt-in, text-out contract the assistant uses.
package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/noah-isme/courseconnect-api/pkg/config"
)

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("gemini api key not configured")

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior message in a conversation.
type Turn struct {
	Role string
	Text string
}

// ChatRequest carries a system instruction, the prior turns and the new message.
type ChatRequest struct {
	SystemInstruction string
	History           []Turn
	Message           string
}

// Gemini implements text generation against google.golang.org/genai.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini builds the adapter. An empty API key yields an adapter that always fails with ErrNotConfigured.
func NewGemini(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gemini{model: cfg.Model, logger: logger}
	if cfg.APIKey == "" {
		logger.Warn("gemini api key missing, assistant will answer with fallbacks")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// GenerateText sends a single prompt and returns the response text.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// Chat opens a chat seeded with the history and sends the new message.
func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}
	var cfg *genai.GenerateContentConfig
	if req.SystemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		}
	}

	chat, err := g.client.Chats.Create(ctx, g.model, cfg, toContents(req.History))
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.Message})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return resp.Text(), nil
}

func toContents(turns []Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(t.Text, role))
	}
	return out
}
