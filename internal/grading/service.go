package grading

import (
	"context"
	"log/slog"
	"strings"

	"gradeflow/internal/providers"
	"gradeflow/internal/rubric"
)

// Result is one finished grading pass, split into the teacher-facing report
// and the student-facing summary block.
type Result struct {
	TeacherReport string
	SummaryText   string
	Tally         Tally
}

// Service runs the full pipeline: rubric normalization, the grading call,
// then score and summary extraction. The two model calls are sequential;
// the second depends on the first's output.
type Service struct {
	normalizer *rubric.Normalizer
	engine     *Engine
}

func NewService(llm providers.LLMProvider, model string, log *slog.Logger) *Service {
	return &Service{
		normalizer: rubric.NewNormalizer(llm, model, log),
		engine:     NewEngine(llm, model, log),
	}
}

func (s *Service) Grade(ctx context.Context, rubricText, studentText string) (Result, error) {
	criteria := s.normalizer.Normalize(ctx, rubricText)
	feedback, err := s.engine.Grade(ctx, criteria, studentText)
	if err != nil {
		return Result{}, err
	}

	tally := ExtractScores(feedback)
	summary := StudentSummary(feedback)
	return Result{
		TeacherReport: StripStudentSummary(feedback),
		SummaryText:   strings.TrimSpace(tally.ScoreLine() + "\n\n" + summary),
		Tally:         tally,
	}, nil
}
