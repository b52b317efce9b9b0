package rubric

// Criterion is one grading criterion as structured by the language model.
type Criterion struct {
	Criterion    string   `json:"criterion"`
	Description  string   `json:"description"`
	Points       int      `json:"points"`
	Requirements []string `json:"requirements"`
}

// TotalPoints sums the point values across criteria.
func TotalPoints(criteria []Criterion) int {
	total := 0
	for _, c := range criteria {
		total += c.Points
	}
	return total
}
