package assessment

var explanations = map[Severity]string{
	SeverityLow: "LOW SEVERITY (0-49%): The property issue appears to be minor and localized. " +
		"It likely doesn't pose immediate risks to tenants or significant financial impact. " +
		"Standard maintenance procedures should be sufficient to address the problem.",
	SeverityMedium: "MODERATE SEVERITY (50-79%): The property issue requires attention within a reasonable timeframe. " +
		"While not an emergency, this level of severity could escalate if left unaddressed. " +
		"Consider allocating resources to resolve these issues within the next 1-2 weeks.",
	SeverityHigh: "HIGH SEVERITY (80-100%): The property issue demands immediate attention. " +
		"These problems likely affect multiple tenants, pose safety risks, or cause financial damage. " +
		"Prioritize these issues and consider engaging specialized contractors or services to resolve them promptly.",
}

// Explain returns the guidance text for a bucket, or "" for an invalid one.
func Explain(s Severity) string {
	return explanations[s]
}

// Explanation pairs a bucket with its guidance text.
type Explanation struct {
	Severity Severity
	Text     string
}

// Explanations returns every bucket's guidance, most severe first (legend order).
func Explanations() []Explanation {
	out := make([]Explanation, 0, len(Severities))
	for i := len(Severities) - 1; i >= 0; i-- {
		s := Severities[i]
		out = append(out, Explanation{Severity: s, Text: explanations[s]})
	}
	return out
}

// Excerpt returns the first n runes of text followed by "...".
func Excerpt(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
