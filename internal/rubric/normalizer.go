package rubric

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"gradeflow/internal/providers"
	"gradeflow/internal/util"
)

const normalizeSystemPrompt = "You are an expert at transforming teacher rubrics into structured JSON. " +
	"You must ONLY return valid JSON with NO extra commentary. " +
	"Follow this schema strictly: a list of objects with keys: " +
	"'criterion', 'description', 'points', 'requirements'. " +
	"If the rubric does not have explicit points, infer a reasonable point " +
	"value for each."

// Normalizer turns free-text rubrics into structured criteria via a single
// model call. It never fails: any oracle or parse problem degrades to one
// catch-all criterion covering the whole rubric.
type Normalizer struct {
	llm   providers.LLMProvider
	model string
	log   *slog.Logger
}

func NewNormalizer(llm providers.LLMProvider, model string, log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{llm: llm, model: model, log: log}
}

func (n *Normalizer) Normalize(ctx context.Context, rubricText string) []Criterion {
	resp, info, err := n.llm.Generate(ctx, providers.GenerateRequest{
		Operation: "rubric_parse",
		System:    normalizeSystemPrompt,
		Prompt:    buildNormalizePrompt(rubricText),
		Model:     n.model,
	})
	if err != nil {
		n.log.Warn("rubric.parse_fallback",
			"reason", "generate_error",
			"class", string(providers.ClassifyError(err)),
			"error", err)
		return FallbackCriteria(rubricText)
	}
	criteria, ok := parseCriteria(resp.Text)
	if !ok {
		n.log.Warn("rubric.parse_fallback",
			"reason", "malformed_json",
			"provider", info.Name,
			"raw_len", len(resp.Text))
		return FallbackCriteria(rubricText)
	}
	n.log.Info("rubric.parse_ok", "provider", info.Name, "criteria", len(criteria))
	return criteria
}

func buildNormalizePrompt(rubricText string) string {
	return "RUBRIC TEXT:\n" + rubricText + "\n\n" +
		"TASK:\n" +
		"1. Read the rubric.\n" +
		"2. Break it into criteria.\n" +
		"3. For each criterion, create:\n" +
		"   - \"criterion\": short title\n" +
		"   - \"description\": longer explanation (if available)\n" +
		"   - \"points\": integer points for this criterion\n" +
		"   - \"requirements\": list of expectations\n" +
		"4. Return ONLY a JSON array (no markdown, no backticks, no explanation)."
}

// parseCriteria decodes the model output leniently: a JSON array of objects,
// or a single object treated as a one-element array. Field types are coerced
// rather than rejected.
func parseCriteria(raw string) ([]Criterion, bool) {
	raw = stripCodeFence(strings.TrimSpace(raw))
	if raw == "" {
		return nil, false
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		var single map[string]any
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, false
		}
		items = []map[string]any{single}
	}
	out := make([]Criterion, 0, len(items))
	for _, m := range items {
		out = append(out, coerceCriterion(m))
	}
	return out, true
}

// FallbackCriteria is the terminal error boundary for rubric structuring:
// the entire rubric text becomes a single 100-point criterion.
func FallbackCriteria(rubricText string) []Criterion {
	return []Criterion{{
		Criterion:    "Overall Rubric",
		Description:  "Entire rubric treated as one criterion.",
		Points:       100,
		Requirements: []string{util.TruncateRunes(strings.TrimSpace(rubricText), 1000)},
	}}
}

func coerceCriterion(m map[string]any) Criterion {
	c := Criterion{
		Criterion:   stringField(m, "criterion"),
		Description: stringField(m, "description"),
		Points:      intField(m, "points"),
	}
	if reqs, ok := m["requirements"].([]any); ok {
		for _, r := range reqs {
			if s, ok := r.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					c.Requirements = append(c.Requirements, s)
				}
			}
		}
	}
	if c.Points < 0 {
		c.Points = 0
	}
	return c
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func intField(m map[string]any, key string) int {
	switch t := m[key].(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
