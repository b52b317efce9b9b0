package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gradeflow/internal/providers"
	"gradeflow/internal/rubric"
)

type captureLLM struct {
	last providers.GenerateRequest
}

func (c *captureLLM) Generate(_ context.Context, req providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	c.last = req
	return providers.GenerateResponse{Text: "raw feedback"}, providers.ProviderInfo{Name: "capture"}, nil
}

func TestEngineGradePromptContract(t *testing.T) {
	llm := &captureLLM{}
	e := NewEngine(llm, "test-model", nil)

	criteria := []rubric.Criterion{
		{Criterion: "Clarity", Points: 10, Requirements: []string{"clear writing"}},
	}
	out, err := e.Grade(context.Background(), criteria, "student work here")
	require.NoError(t, err)
	require.Equal(t, "raw feedback", out)

	require.Equal(t, "grade_submission", llm.last.Operation)
	require.Equal(t, "test-model", llm.last.Model)
	require.Contains(t, llm.last.System, "supportive computer science teacher")
	require.Contains(t, llm.last.Prompt, `"criterion": "Clarity"`)
	require.Contains(t, llm.last.Prompt, "student work here")
	require.Contains(t, llm.last.Prompt, TeacherCommentMarker)
	require.Contains(t, llm.last.Prompt, StudentSummaryMarker)
}
