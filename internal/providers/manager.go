package providers

import (
	"fmt"
	"strings"

	"gradeflow/internal/config"
)

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

type Manager struct {
	llmProviders []NamedLLMProvider
}

// NewManager builds the configured provider chain. A real provider whose API
// key cannot be resolved is a construction error: the process must not start
// without its credential.
func NewManager(cfg config.Config) (*Manager, error) {
	refs := ParseProviderList(cfg.LLMProviders)

	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	if len(m.llmProviders) == 0 {
		m.llmProviders = []NamedLLMProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func (m *Manager) FirstLLMProvider() LLMProvider {
	return m.llmProviders[0].Provider
}

func (m *Manager) LLMCount() int {
	return len(m.llmProviders)
}

func (m *Manager) Refs() []ProviderRef {
	out := make([]ProviderRef, 0, len(m.llmProviders))
	for i := range m.llmProviders {
		out = append(out, m.llmProviders[i].Ref)
	}
	return out
}

func buildProvider(ref ProviderRef, openAIModel string) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "openai":
		p := NewOpenAIProvider(ref.KeyAlias, openAIModel)
		if !p.HasKey() {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set (provider %q)", ref.Raw)
		}
		return p, nil
	case "groq":
		p := NewGroqProvider(ref.KeyAlias)
		if !p.HasKey() {
			return nil, fmt.Errorf("GROQ_API_KEY is not set (provider %q)", ref.Raw)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
