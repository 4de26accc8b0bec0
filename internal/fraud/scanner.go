package fraud

import "strings"

// fraudKeywords is the fixed indicator list. Order is fixed and is the
// order indicators are reported in. Matching is a bare substring search;
// adding word boundaries would change routing outcomes.
var fraudKeywords = []string{
	"fraud",
	"inconsistent",
	"staged",
	"suspicious",
	"falsified",
}

// Scanner checks document text for fraud indicator keywords
type Scanner struct{}

// NewScanner creates a new fraud scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the keywords present in the text, case-insensitively, in
// keyword-list order. Occurrence counts and positions are not tracked.
func (s *Scanner) Scan(text string) []string {
	lower := strings.ToLower(text)

	var indicators []string
	for _, keyword := range fraudKeywords {
		if strings.Contains(lower, keyword) {
			indicators = append(indicators, keyword)
		}
	}

	return indicators
}

// Keywords returns the fixed indicator list
func Keywords() []string {
	out := make([]string, len(fraudKeywords))
	copy(out, fraudKeywords)
	return out
}
