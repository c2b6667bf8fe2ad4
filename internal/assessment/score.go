package assessment

import (
	"errors"
	"fmt"
	"math"
)

// Thresholds are inclusive lower bounds, in percent.
const (
	MediumThreshold = 50.0
	HighThreshold   = 80.0
)

var (
	ErrNoQuestions       = errors.New("question set is empty")
	ErrAnswerCount       = errors.New("answer count does not match question count")
	ErrPercentOutOfRange = errors.New("percentage outside [0,100]")
	ErrInvalidSeverity   = errors.New("invalid severity")
)

func invalidSeverity(v string) error {
	return fmt.Errorf("%w: %q", ErrInvalidSeverity, v)
}

// Score counts affirmative answers and converts the count to a percentage of total.
func Score(answers []bool, total int) (int, float64, error) {
	if total <= 0 {
		return 0, 0, ErrNoQuestions
	}
	if len(answers) != total {
		return 0, 0, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), total)
	}
	count := 0
	for _, a := range answers {
		if a {
			count++
		}
	}
	return count, Percentage(count, total), nil
}

// Percentage returns 100*count/total. total must be positive.
// Multiplying before dividing keeps whole-number results exact (3 of 5 is 60, not 60.00000000000001).
func Percentage(count, total int) float64 {
	return float64(100*count) / float64(total)
}

// Classify maps a percentage to its bucket: [0,50) low, [50,80) medium, [80,100] high.
func Classify(pct float64) (Severity, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return "", fmt.Errorf("%w: %v", ErrPercentOutOfRange, pct)
	}
	switch {
	case pct < MediumThreshold:
		return SeverityLow, nil
	case pct < HighThreshold:
		return SeverityMedium, nil
	default:
		return SeverityHigh, nil
	}
}
