// Package extract turns natural-language signal into structured lead fields.
//
// Every function here is pure and stateless. Both execution paths (the
// tool-calling agent and the fallback dialogue policy) go through this package,
// so the two produce consistent lead state regardless of which one runs.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dealsmart/concierge/internal/domain"
)

// highValueBudget marks a lead medium-hot even without a stated timeline.
const highValueBudget = 70000

var serviceKeywords = []string{"service", "oil", "appointment", "repair"}

// Keyword match, first hit wins, no scoring. Priority: service > trade > sales.
func DetectIntent(message string) domain.Intent {
	lower := strings.ToLower(message)
	for _, word := range serviceKeywords {
		if strings.Contains(lower, word) {
			return domain.IntentService
		}
	}
	if strings.Contains(lower, "trade") {
		return domain.IntentTradeIn
	}
	return domain.IntentSales
}

// budgetPattern matches a 2-3 digit group with an optional thousands group,
// e.g. "45", "$60,000".
var budgetPattern = regexp.MustCompile(`\$?\s?(\d{2,3})(?:,(\d{3}))?`)

// ExtractBudget pulls a budget figure out of a message. Bare values below 1000
// are thousands shorthand ("45" means 45000); values at or above 1000 pass
// through unchanged. Returns 0 when no positive figure is found.
func ExtractBudget(message string) int {
	m := budgetPattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	digits := m[1] + m[2]
	value, err := strconv.Atoi(digits)
	if err != nil || value <= 0 {
		return 0
	}
	if value < 1000 {
		return value * 1000
	}
	return value
}

// knownModels is the fixed vocabulary for vehicle interest detection.
var knownModels = []string{"x5", "x3", "x7", "3 series", "5 series", "m3", "m5"}

// ExtractVehicle returns the first known model mentioned in the message,
// upper-cased, or "" when none matches.
func ExtractVehicle(message string) string {
	lower := strings.ToLower(message)
	for _, model := range knownModels {
		if strings.Contains(lower, model) {
			return strings.ToUpper(model)
		}
	}
	return ""
}

// ExtractContactPreference maps channel keywords to a contact preference.
func ExtractContactPreference(message string) domain.ContactPreference {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "text") || strings.Contains(lower, "sms"):
		return domain.ContactSMS
	case strings.Contains(lower, "email"):
		return domain.ContactEmail
	case strings.Contains(lower, "call") || strings.Contains(lower, "phone"):
		return domain.ContactPhone
	}
	return ""
}

// NormalizeIntent maps free-form agent-tool input to the canonical enum.
// Unrecognized values default to sales rather than failing.
func NormalizeIntent(raw string) domain.Intent {
	text := strings.ToLower(raw)
	if strings.Contains(text, "service") {
		return domain.IntentService
	}
	if strings.Contains(text, "trade") {
		return domain.IntentTradeIn
	}
	return domain.IntentSales
}

var timelineBuckets = []struct {
	timeline domain.Timeline
	keywords []string
}{
	{domain.TimelineASAP, []string{"asap", "now", "today", "this week", "next week"}},
	{domain.TimelineSoon, []string{"1-3", "few months", "next month"}},
	{domain.TimelineMedium, []string{"3-6", "quarter"}},
	{domain.TimelineLater, []string{"later", "not sure", "someday"}},
}

// NormalizeTimeline maps free-form phrasing to one of the four canonical
// timeline buckets. Unmatched input yields "" rather than a guess.
func NormalizeTimeline(raw string) domain.Timeline {
	if raw == "" {
		return ""
	}
	text := strings.ToLower(raw)
	for _, bucket := range timelineBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(text, kw) {
				return bucket.timeline
			}
		}
	}
	return ""
}

// LeadHotness grades a lead. Evaluated in priority order: asap is always
// urgent, a near-term timeline is medium, a high budget is medium, everything
// else is cold.
func LeadHotness(timeline domain.Timeline, budgetMax int) domain.LeadType {
	if timeline == domain.TimelineASAP {
		return domain.LeadUrgent
	}
	if timeline == domain.TimelineSoon || timeline == domain.TimelineMedium {
		return domain.LeadMedium
	}
	if budgetMax >= highValueBudget {
		return domain.LeadMedium
	}
	return domain.LeadCold
}
