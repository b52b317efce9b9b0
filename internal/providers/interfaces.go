package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

// GenerateRequest is a single text-completion call: one system instruction
// plus one user prompt. Operation labels the call for logging and lets the
// mock provider pick a deterministic canned answer.
type GenerateRequest struct {
	Operation string `json:"operation"`
	System    string `json:"system"`
	Prompt    string `json:"prompt"`
	Model     string `json:"model,omitempty"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}
