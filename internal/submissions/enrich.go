package submissions

import (
	"strings"
	"time"
)

// Lead-temperature thresholds used by the admin console and email templates.
const (
	LeadScoreHot  = 80
	LeadScoreWarm = 60
	LeadScoreCold = 40
)

// Segment, value, urgency and priority labels. These are persisted strings,
// so renaming one is a data-format change.
const (
	SegmentBusiness   = "business"
	SegmentIndividual = "individual"

	ValueHigh   = "high"
	ValueMedium = "medium"
	ValueLow    = "low"

	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyNormal = "normal"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityNormal = "normal"
)

// ResponseTimeByUrgency is the response commitment quoted in the admin email.
var ResponseTimeByUrgency = map[string]string{
	UrgencyHigh:   "2 hours",
	UrgencyMedium: "12 hours",
	UrgencyNormal: "24 hours",
}

// Scoring signals. The exact numbers are load-bearing: the admin console's
// hot/warm/cold buckets assume this scale.
const (
	baseLeadScore          = 50
	companyScoreBonus      = 20
	highValueSubjectBonus  = 30
	detailedMessageBonus   = 10
	phoneScoreBonus        = 15
	professionalMailBonus  = 10
	detailedMessageMinimum = 100
	maxLeadScore           = 100
)

var highValueSubjects = []string{
	"web development",
	"app development",
	"digital marketing",
	"e-commerce",
}

var businessKeywords = []string{
	"startup",
	"company",
	"business",
	"enterprise",
	"organization",
	"firm",
	"agency",
}

var urgentKeywords = []string{
	"urgent",
	"asap",
	"immediately",
	"emergency",
	"critical",
	"deadline",
}

// projectValueBySubject maps subject keywords to estimated project value.
// Checked in order so the high-value keys win when a subject matches several.
var projectValueBySubject = []struct {
	keyword string
	value   string
}{
	{"web development", ValueHigh},
	{"app development", ValueHigh},
	{"e-commerce", ValueHigh},
	{"digital marketing", ValueMedium},
	{"seo", ValueMedium},
	{"analytics", ValueLow},
	{"consultation", ValueLow},
	{"maintenance", ValueLow},
}

// categoryBySubject maps subject keywords to an inquiry category.
var categoryBySubject = []struct {
	keyword  string
	category string
}{
	{"web development", "development"},
	{"app development", "development"},
	{"mobile", "development"},
	{"seo", "marketing"},
	{"digital marketing", "marketing"},
	{"analytics", "analytics"},
	{"consultation", "consultation"},
	{"support", "support"},
	{"maintenance", "support"},
}

func hasCompany(form FormData) bool {
	return strings.TrimSpace(form.Company) != ""
}

// CalculateLeadScore estimates sales-worthiness on a 0-100 scale. Each signal
// is independent and additive; the total is capped at 100.
func CalculateLeadScore(form FormData) int {
	score := baseLeadScore

	if hasCompany(form) {
		score += companyScoreBonus
	}

	subject := strings.ToLower(form.Subject)
	for _, s := range highValueSubjects {
		if strings.Contains(subject, s) {
			score += highValueSubjectBonus
			break
		}
	}

	if len(form.Message) > detailedMessageMinimum {
		score += detailedMessageBonus
	}

	if strings.TrimSpace(form.Phone) != "" {
		score += phoneScoreBonus
	}

	email := strings.ToLower(form.Email)
	if email != "" && !strings.Contains(email, "@gmail.") && !strings.Contains(email, "@yahoo.") {
		score += professionalMailBonus
	}

	if score > maxLeadScore {
		score = maxLeadScore
	}
	return score
}

// DetermineCustomerSegment classifies the submitter as business or individual.
func DetermineCustomerSegment(form FormData) string {
	if hasCompany(form) {
		return SegmentBusiness
	}
	message := strings.ToLower(form.Message)
	for _, kw := range businessKeywords {
		if strings.Contains(message, kw) {
			return SegmentBusiness
		}
	}
	return SegmentIndividual
}

// EstimateProjectValue buckets the inquiry by subject keyword.
func EstimateProjectValue(subject string) string {
	subjectLower := strings.ToLower(subject)
	for _, entry := range projectValueBySubject {
		if strings.Contains(subjectLower, entry.keyword) {
			return entry.value
		}
	}
	return ValueMedium
}

// DetermineUrgency classifies how fast a response is expected.
func DetermineUrgency(form FormData) string {
	message := strings.ToLower(form.Message)
	for _, kw := range urgentKeywords {
		if strings.Contains(message, kw) {
			return UrgencyHigh
		}
	}
	if hasCompany(form) {
		return UrgencyMedium
	}
	return UrgencyNormal
}

// DeterminePriority combines urgency and lead score.
func DeterminePriority(form FormData) string {
	urgency := DetermineUrgency(form)
	score := CalculateLeadScore(form)

	if urgency == UrgencyHigh || score >= LeadScoreHot {
		return PriorityHigh
	}
	if urgency == UrgencyMedium || score >= LeadScoreWarm {
		return PriorityMedium
	}
	return PriorityNormal
}

// DetermineCategory buckets the inquiry for routing in the admin console.
func DetermineCategory(subject string) string {
	subjectLower := strings.ToLower(subject)
	for _, entry := range categoryBySubject {
		if strings.Contains(subjectLower, entry.keyword) {
			return entry.category
		}
	}
	return "general"
}

// GenerateTags builds the submission's tag set: source, form marker, subject
// slug, segment, urgency, and a company marker when one was given.
func GenerateTags(form FormData) []string {
	tags := []string{DefaultSource, "contact_form"}

	slug := strings.Join(strings.Fields(strings.ToLower(form.Subject)), "_")
	if slug != "" {
		tags = append(tags, slug)
	}

	tags = append(tags, DetermineCustomerSegment(form), DetermineUrgency(form))

	if hasCompany(form) {
		tags = append(tags, "has_company")
	}
	return tags
}

// RetentionDate returns the GDPR data-retention deadline (7 years from now)
// as a unix timestamp.
func RetentionDate(now time.Time) int64 {
	return now.AddDate(RetentionPeriodYears, 0, 0).Unix()
}
