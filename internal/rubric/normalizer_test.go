package rubric

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"gradeflow/internal/providers"
)

type stubLLM struct {
	text string
	err  error
}

func (s stubLLM) Generate(_ context.Context, _ providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	return providers.GenerateResponse{Text: s.text}, providers.ProviderInfo{Name: "stub"}, s.err
}

func TestNormalizeArray(t *testing.T) {
	n := NewNormalizer(stubLLM{text: `[
		{"criterion":"Clarity","description":"","points":10,"requirements":["clear writing"]},
		{"criterion":"Correctness","description":"","points":20,"requirements":["correct logic"]}
	]`}, "", nil)
	got := n.Normalize(context.Background(), "ignored")
	require.Len(t, got, 2)
	require.Equal(t, "Clarity", got[0].Criterion)
	require.Equal(t, 10, got[0].Points)
	require.Equal(t, []string{"correct logic"}, got[1].Requirements)
	require.Equal(t, 30, TotalPoints(got))
}

func TestNormalizeSingleObjectWrapped(t *testing.T) {
	n := NewNormalizer(stubLLM{text: `{"criterion":"Style","points":15,"requirements":["consistent voice"]}`}, "", nil)
	got := n.Normalize(context.Background(), "ignored")
	require.Len(t, got, 1)
	require.Equal(t, "Style", got[0].Criterion)
	require.Equal(t, 15, got[0].Points)
}

func TestNormalizeInvalidJSONFallsBack(t *testing.T) {
	n := NewNormalizer(stubLLM{text: "Sure! Here is your rubric:"}, "", nil)
	got := n.Normalize(context.Background(), "  Write clearly. ")
	require.Len(t, got, 1)
	require.Equal(t, "Overall Rubric", got[0].Criterion)
	require.Equal(t, 100, got[0].Points)
	require.Equal(t, []string{"Write clearly."}, got[0].Requirements)
}

func TestNormalizeGenerateErrorFallsBack(t *testing.T) {
	n := NewNormalizer(stubLLM{err: errors.New("timeout")}, "", nil)
	got := n.Normalize(context.Background(), "rubric body")
	require.Len(t, got, 1)
	require.Equal(t, "Overall Rubric", got[0].Criterion)
}

func TestFallbackTruncatesRequirementTo1000Runes(t *testing.T) {
	long := strings.Repeat("é", 2500)
	got := FallbackCriteria(long)
	require.Len(t, got, 1)
	require.Len(t, got[0].Requirements, 1)
	require.Equal(t, 1000, utf8.RuneCountInString(got[0].Requirements[0]))
}

func TestParseCriteriaCodeFence(t *testing.T) {
	fenced := "```json\n[{\"criterion\":\"A\",\"points\":5}]\n```"
	got, ok := parseCriteria(fenced)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, 5, got[0].Points)
}

func TestParseCriteriaLenientTypes(t *testing.T) {
	got, ok := parseCriteria(`[{"criterion":"A","points":"12","requirements":["x", 3, ""]},{"criterion":"B","points":7.9},{"criterion":"C","points":-4}]`)
	require.True(t, ok)
	require.Len(t, got, 3)
	require.Equal(t, 12, got[0].Points)
	require.Equal(t, []string{"x"}, got[0].Requirements)
	require.Equal(t, 7, got[1].Points)
	require.Empty(t, got[1].Requirements)
	require.Equal(t, 0, got[2].Points)
}
