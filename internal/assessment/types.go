// Package assessment scores yes/no questionnaires and buckets the result by severity.
package assessment

// Result is the outcome of one assessment run. It is built by Evaluate and not modified afterwards.
type Result struct {
	Answers     []bool
	Score       int
	Percentage  float64
	Severity    Severity
	Explanation string
}

// Total returns the number of questions answered.
func (r Result) Total() int {
	return len(r.Answers)
}

// Evaluate runs the full pipeline: score, classify, explain.
func Evaluate(total int, answers []bool) (Result, error) {
	score, pct, err := Score(answers, total)
	if err != nil {
		return Result{}, err
	}
	sev, err := Classify(pct)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Answers:     append([]bool(nil), answers...),
		Score:       score,
		Percentage:  pct,
		Severity:    sev,
		Explanation: Explain(sev),
	}, nil
}
