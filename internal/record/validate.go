package record

import (
	"fmt"
	"math"

	"github.com/dshills/prtassess/internal/assessment"
)

// ValidationError describes a single record inconsistency.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks that a record is internally consistent: the score,
// percentage, bucket and explanation must all follow from the answers.
func Validate(r *Record) []ValidationError {
	var errs []ValidationError

	if r.Timestamp == "" {
		errs = append(errs, ValidationError{"timestamp", "required"})
	} else if _, err := r.Time(); err != nil {
		errs = append(errs, ValidationError{"timestamp", fmt.Sprintf("want layout %q: %v", TimestampLayout, err)})
	}

	if len(r.Questions) == 0 {
		errs = append(errs, ValidationError{"questions", "at least one question required"})
	}
	for i, q := range r.Questions {
		if q == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("questions[%d]", i), "required"})
		}
	}
	if len(r.Answers) != len(r.Questions) {
		errs = append(errs, ValidationError{"answers", fmt.Sprintf("expected %d answers, got %d", len(r.Questions), len(r.Answers))})
	}

	yes := 0
	for i, a := range r.Answers {
		switch a {
		case AnswerYes:
			yes++
		case AnswerNo:
		default:
			errs = append(errs, ValidationError{fmt.Sprintf("answers[%d]", i), fmt.Sprintf("must be %q or %q, got %q", AnswerYes, AnswerNo, a)})
		}
	}
	if r.Score != yes {
		errs = append(errs, ValidationError{"score", fmt.Sprintf("score %d does not match %d affirmative answers", r.Score, yes)})
	}

	if len(r.Questions) > 0 {
		expected := assessment.Percentage(r.Score, len(r.Questions))
		if math.Abs(r.ScorePercentage-expected) > 1e-9 {
			errs = append(errs, ValidationError{"score_percentage", fmt.Sprintf("%v does not match computed %v", r.ScorePercentage, expected)})
		}
	}

	sev := r.Severity()
	if !sev.Valid() {
		errs = append(errs, ValidationError{"severity_level", fmt.Sprintf("invalid: %q", r.SeverityLevel)})
		return errs
	}
	if want, err := assessment.Classify(r.ScorePercentage); err != nil {
		errs = append(errs, ValidationError{"score_percentage", err.Error()})
	} else if want != sev {
		errs = append(errs, ValidationError{"severity_level", fmt.Sprintf("%q does not match computed %q", sev, want)})
	}
	if r.Explanation != assessment.Explain(sev) {
		errs = append(errs, ValidationError{"explanation", fmt.Sprintf("does not match %s explanation", sev)})
	}

	return errs
}
