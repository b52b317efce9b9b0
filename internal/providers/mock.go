package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic output keyed on the request operation.
// It backs tests and lets the server run without any upstream credentials.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

const mockRubricJSON = `[
  {"criterion": "Content", "description": "Quality and depth of ideas", "points": 60, "requirements": ["clear thesis", "supporting evidence"]},
  {"criterion": "Mechanics", "description": "Grammar, spelling, and style", "points": 40, "requirements": ["few grammatical errors"]}
]`

const mockFeedback = `Criterion: Content (60 points)
Score: 45/60
Explanation:
The submission presents a clear central idea and supports it with relevant examples. Some sections would benefit from deeper analysis of the evidence offered.

Criterion: Mechanics (40 points)
Score: 30/40
Explanation:
The writing is generally clean and readable. A handful of run-on sentences and comma errors slightly interrupt the flow.

Overall Teacher Comment:
This is solid work that shows real engagement with the material. The argument is coherent and the structure is easy to follow. The main growth area is pushing the analysis one level deeper rather than summarizing sources. Mechanics are close to polished and a careful proofreading pass would close the gap. This student is on a good trajectory.

Student Summary:
You put real effort into this piece and it shows in how clearly your main idea comes through. Your examples are well chosen and connected to your argument. For your next draft, spend more time explaining why your evidence matters, and read your work aloud to catch sentence-level slips.`

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}
	op := strings.ToLower(req.Operation)
	switch {
	case strings.Contains(op, "rubric"):
		return GenerateResponse{Text: mockRubricJSON}, info, nil
	case strings.Contains(op, "grade"):
		return GenerateResponse{Text: mockFeedback}, info, nil
	default:
		return GenerateResponse{Text: "Mock response."}, info, nil
	}
}
