package report

import "github.com/Octopus30/health-analysis/internal/llm"

// PlaceholderNarrative is shown when no analysis text could be produced.
const PlaceholderNarrative = "No content found."

// Narrative extracts displayable text from the first analysis response:
// the top-level text field when present, else the first content
// segment's text. Missing or empty input yields the placeholder, never
// an error or an empty string.
func Narrative(responses []*llm.Response) string {
	if len(responses) == 0 || responses[0] == nil {
		return PlaceholderNarrative
	}

	first := responses[0]
	if first.Text != "" {
		return first.Text
	}
	if txt := first.FirstText(); txt != "" {
		return txt
	}
	return PlaceholderNarrative
}
