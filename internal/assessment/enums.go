package assessment

import "strings"

// Severity is the three-tier rating derived from a score percentage.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists every bucket in ascending threshold order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Upper returns the bucket name as shown in headlines ("HIGH").
func (s Severity) Upper() string {
	return strings.ToUpper(string(s))
}

// order returns a sort key (higher = more severe).
func (s Severity) order() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	default:
		return -1
	}
}

// Less reports whether s ranks below other.
func (s Severity) Less(other Severity) bool {
	return s.order() < other.order()
}

// ParseSeverity accepts a bucket name in any case.
func ParseSeverity(v string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", invalidSeverity(v)
	}
	return s, nil
}

// ParseAnswer accepts "yes" or "no" in any case, ignoring surrounding space.
func ParseAnswer(s string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}
