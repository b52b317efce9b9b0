package grading

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Literal markers the grading prompt asks the model to emit. The
// postprocessor splits on them; their absence is tolerated.
const (
	TeacherCommentMarker = "Overall Teacher Comment:"
	StudentSummaryMarker = "Student Summary:"
)

var scoreLinePattern = regexp.MustCompile(`Score:\s*(\d+)\s*/\s*(\d+)`)

// Tally accumulates earned and possible points across every score line in
// the feedback. The number of score lines is deliberately not checked
// against the number of rubric criteria, and per-line overshoot is not
// clamped; tallying stays as permissive as the scoring prompt.
type Tally struct {
	Earned   int
	Possible int
}

// ExtractScores sums all "Score: X/Y" occurrences in order of appearance.
// Zero matches yields a zero tally.
func ExtractScores(feedback string) Tally {
	var t Tally
	for _, m := range scoreLinePattern.FindAllStringSubmatch(feedback, -1) {
		earned, _ := strconv.Atoi(m[1])
		possible, _ := strconv.Atoi(m[2])
		t.Earned += earned
		t.Possible += possible
	}
	return t
}

// Percent reports the rounded score percentage and whether it is defined.
func (t Tally) Percent() (int, bool) {
	if t.Possible <= 0 {
		return 0, false
	}
	return int(math.Round(float64(t.Earned) / float64(t.Possible) * 100)), true
}

// ScoreLine renders the student-visible score heading.
func (t Tally) ScoreLine() string {
	if pct, ok := t.Percent(); ok {
		return fmt.Sprintf("Your Score: %d / %d (%d%%)", t.Earned, t.Possible, pct)
	}
	return "Your Score: N/A"
}

const summaryFallback = "You completed meaningful work and demonstrated growing skill. " +
	"Keep practicing and refining your logic, and use this feedback as a guide " +
	"for your next draft."

// StudentSummary returns the trimmed text after the first summary marker,
// or a fixed encouraging sentence when the model omitted the marker.
func StudentSummary(feedback string) string {
	idx := strings.Index(feedback, StudentSummaryMarker)
	if idx == -1 {
		return summaryFallback
	}
	return strings.TrimSpace(feedback[idx+len(StudentSummaryMarker):])
}

// StripStudentSummary returns the trimmed text before the first summary
// marker, excising the student-facing part from the teacher report.
func StripStudentSummary(feedback string) string {
	idx := strings.Index(feedback, StudentSummaryMarker)
	if idx == -1 {
		return strings.TrimSpace(feedback)
	}
	return strings.TrimSpace(feedback[:idx])
}
