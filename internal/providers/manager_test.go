package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gradeflow/internal/config"
)

func TestNewManagerMock(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock"})
	require.NoError(t, err)
	require.Equal(t, 1, m.LLMCount())

	resp, info, err := m.FirstLLMProvider().Generate(context.Background(), GenerateRequest{Operation: "rubric_parse"})
	require.NoError(t, err)
	require.Equal(t, "mock", info.Name)
	require.True(t, strings.HasPrefix(strings.TrimSpace(resp.Text), "["))
}

func TestNewManagerMissingOpenAIKeyFailsStartup(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewManager(config.Config{LLMProviders: "openai"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewManagerUnsupportedProvider(t *testing.T) {
	_, err := NewManager(config.Config{LLMProviders: "palm"})
	require.Error(t, err)
}
