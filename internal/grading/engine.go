package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gradeflow/internal/providers"
	"gradeflow/internal/rubric"
)

const gradeSystemPrompt = "You are an encouraging, supportive computer science teacher who grades fairly " +
	"using a structured rubric. Your tone is positive, balanced, and growth-oriented. " +
	"You award partial credit with medium generosity when there is clear evidence of " +
	"partial understanding or effort. You still respect the rubric and do not give " +
	"full credit when requirements are missing, but you avoid harsh language. " +
	"You always highlight strengths first, then gently suggest improvements. " +
	"Write in clear paragraphs only. Do NOT use bullet points, dashes, asterisks, " +
	"or numbered lists. Do NOT use markdown formatting. " +
	"You must keep the student-facing summary separate from the teacher report."

// Engine produces the raw structured feedback text for one submission with
// a single model call. The output-format contract lives entirely in the
// prompt; conformance is not enforced here, downstream parsing is defensive.
type Engine struct {
	llm   providers.LLMProvider
	model string
	log   *slog.Logger
}

func NewEngine(llm providers.LLMProvider, model string, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{llm: llm, model: model, log: log}
}

func (e *Engine) Grade(ctx context.Context, criteria []rubric.Criterion, studentText string) (string, error) {
	rubricJSON, err := json.MarshalIndent(criteria, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal rubric: %w", err)
	}

	rid := uuid.New().String()
	start := time.Now()
	e.log.Info("grade.start",
		"req_id", rid,
		"criteria", len(criteria),
		"max_points", rubric.TotalPoints(criteria),
		"student_len", len(studentText))

	resp, info, err := e.llm.Generate(ctx, providers.GenerateRequest{
		Operation: "grade_submission",
		System:    gradeSystemPrompt,
		Prompt:    buildGradePrompt(string(rubricJSON), studentText),
		Model:     e.model,
	})
	if err != nil {
		e.log.Error("grade.generate_error",
			"req_id", rid,
			"class", string(providers.ClassifyError(err)),
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("grading call failed: %w", err)
	}

	e.log.Info("grade.ok",
		"req_id", rid,
		"provider", info.Name,
		"model", info.Model,
		"chars", len(resp.Text),
		"elapsed_ms", time.Since(start).Milliseconds())
	return resp.Text, nil
}

func buildGradePrompt(rubricJSON, studentText string) string {
	return "RUBRIC (JSON)\n" +
		"----------------\n" +
		rubricJSON + "\n\n" +
		"STUDENT SUBMISSION\n" +
		"------------------\n" +
		studentText + "\n\n" +
		"YOUR TASK\n" +
		"---------\n" +
		"1. For EACH rubric item:\n" +
		"   Write a block in this exact structure:\n\n" +
		"   Criterion: <criterion name> (X points)\n" +
		"   Score: Y/X\n" +
		"   Explanation:\n" +
		"   <one or more sentences that first describe what the student did well, then gently describe what can be improved, in a supportive tone>\n\n" +
		"2. After you have graded all rubric items, write an overall teacher-only evaluation paragraph in this format:\n\n" +
		TeacherCommentMarker + "\n" +
		"<four to six sentences written for the teacher, with an encouraging but honest evaluation of the work. Mention strengths and specific areas to develop.>\n\n" +
		"3. Finally, at the very end, write a student-facing summary in this format:\n\n" +
		StudentSummaryMarker + "\n" +
		"<three to five sentences written directly to the student in a neutral, encouraging tone. Focus on effort, progress, and one or two clear next steps.>\n\n" +
		"FORMAT RULES\n" +
		"------------\n" +
		"- Use only plain text.\n" +
		"- Do not use bullet points, hyphens, or numbered lists.\n" +
		"- Do not include the Student Summary text anywhere except after the '" + StudentSummaryMarker + "' label at the very end.\n" +
		"- Do not restate the score line inside the Student Summary."
}
