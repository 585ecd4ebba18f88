package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/courseconnect-api/pkg/config"
)

func TestGeminiWithoutKey(t *testing.T) {
	g, err := NewGemini(context.Background(), config.GeminiConfig{Model: "gemini-2.5-flash"}, nil)
	require.NoError(t, err)

	_, err = g.GenerateText(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = g.Chat(context.Background(), ChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestToContentsKeepsOrderAndRoles(t *testing.T) {
	contents := toContents([]Turn{
		{Role: RoleModel, Text: "Hi!"},
		{Role: RoleUser, Text: "Any math courses?"},
	})
	require.Len(t, contents, 2)
	assert.Equal(t, "model", contents[0].Role)
	assert.Equal(t, "Hi!", contents[0].Parts[0].Text)
	assert.Equal(t, "user", contents[1].Role)
}
