// Package record serializes assessment results to timestamped JSON files.
package record

import (
	"time"

	"github.com/dshills/prtassess/internal/assessment"
)

// TimestampLayout is the layout of Record.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
)

// Record is the persisted form of one assessment run.
type Record struct {
	Timestamp       string   `json:"timestamp"`
	Questions       []string `json:"questions"`
	Answers         []string `json:"answers"`
	Score           int      `json:"score"`
	ScorePercentage float64  `json:"score_percentage"`
	SeverityLevel   string   `json:"severity_level"`
	Explanation     string   `json:"explanation"`
}

// New builds a record from a result and the question texts it answered.
func New(questions []string, r assessment.Result, now time.Time) Record {
	answers := make([]string, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = answerText(a)
	}
	return Record{
		Timestamp:       now.Format(TimestampLayout),
		Questions:       append([]string(nil), questions...),
		Answers:         answers,
		Score:           r.Score,
		ScorePercentage: r.Percentage,
		SeverityLevel:   string(r.Severity),
		Explanation:     r.Explanation,
	}
}

func answerText(a bool) string {
	if a {
		return AnswerYes
	}
	return AnswerNo
}

// Severity returns the record's bucket. It is only meaningful for a validated record.
func (r Record) Severity() assessment.Severity {
	return assessment.Severity(r.SeverityLevel)
}

// Time parses Timestamp in the local zone.
func (r Record) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, r.Timestamp, time.Local)
}

// Result reconstructs the assessment result the record was built from.
func (r Record) Result() assessment.Result {
	answers := make([]bool, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = a == AnswerYes
	}
	return assessment.Result{
		Answers:     answers,
		Score:       r.Score,
		Percentage:  r.ScorePercentage,
		Severity:    r.Severity(),
		Explanation: r.Explanation,
	}
}
