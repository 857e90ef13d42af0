package rag

import "strings"

// Label is the intent assigned to a query. Exactly one label is chosen per query.
type Label string

const (
	LabelGreeting       Label = "greeting"
	LabelUnrelated      Label = "unrelated"
	LabelNeedsWebSearch Label = "needs_web_search"
	LabelFollowUp       Label = "follow_up"
	LabelDirectAnswer   Label = "direct_answer"
)

// labelPriority is checked top to bottom; the first hit wins.
var labelPriority = []struct {
	label    Label
	keywords []string
}{
	{LabelUnrelated, []string{"unrelated"}},
	{LabelGreeting, []string{"greeting"}},
	{LabelNeedsWebSearch, []string{"needs web search"}},
	{LabelFollowUp, []string{"follow up", "followup"}},
}

// ParseLabel maps free classifier text onto a label. Text that matches nothing
// is a direct answer.
func ParseLabel(text string) Label {
	normalized := strings.ToLower(text)
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)

	for _, candidate := range labelPriority {
		if containsAny(normalized, candidate.keywords) {
			return candidate.label
		}
	}
	return LabelDirectAnswer
}

func (l Label) String() string {
	return string(l)
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
