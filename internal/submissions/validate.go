package submissions

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is a single user-correctable validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult reports every violated rule, not just the first.
type ValidationResult struct {
	IsValid bool         `json:"isValid"`
	Errors  []FieldError `json:"errors"`
}

// RuleSet is a named validation-policy variant. The required-field and
// message-minimum rules have changed across deployments, so the active rule
// set is selected by configuration rather than hardcoded.
type RuleSet struct {
	Name             string
	RequireLastName  bool
	EnforceWordCount bool
}

var (
	// DefaultRuleSet is the canonical policy: lastName optional, word-count
	// minimum enforced.
	DefaultRuleSet = RuleSet{Name: "default", EnforceWordCount: true}

	// StrictRuleSet additionally requires lastName.
	StrictRuleSet = RuleSet{Name: "strict", RequireLastName: true, EnforceWordCount: true}

	// LegacyRuleSet matches the earliest deployed form: no word-count rule.
	LegacyRuleSet = RuleSet{Name: "legacy"}
)

// RuleSetByName resolves a configured rule-set name.
func RuleSetByName(name string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultRuleSet, nil
	case "strict":
		return StrictRuleSet, nil
	case "legacy":
		return LegacyRuleSet, nil
	default:
		return RuleSet{}, fmt.Errorf("submissions: unknown validation rule set %q", name)
	}
}

const (
	minMessageLength = 10
	minMessageWords  = 4
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// requiredFields lists presence checks in report order.
var requiredFields = []struct {
	field   string
	message string
	value   func(FormData) string
}{
	{"firstName", "First name is required", func(f FormData) string { return f.FirstName }},
	{"email", "Email is required", func(f FormData) string { return f.Email }},
	{"phone", "Phone number is required", func(f FormData) string { return f.Phone }},
	{"subject", "Subject is required", func(f FormData) string { return f.Subject }},
	{"message", "Message is required", func(f FormData) string { return f.Message }},
	{"bestTime", "Best time to contact is required", func(f FormData) string { return f.BestTime }},
}

// Validate checks the raw form against the rule set. All rules are evaluated;
// the result collects every violation. Pure, no side effects.
func Validate(form FormData, rules RuleSet) ValidationResult {
	var errs []FieldError

	for _, rf := range requiredFields {
		if strings.TrimSpace(rf.value(form)) == "" {
			errs = append(errs, FieldError{Field: rf.field, Message: rf.message})
		}
	}

	if rules.RequireLastName && strings.TrimSpace(form.LastName) == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name is required"})
	}

	if form.Email != "" && !emailPattern.MatchString(form.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}

	if form.Phone != "" {
		stripped := strings.Join(strings.Fields(form.Phone), "")
		if !phonePattern.MatchString(stripped) {
			errs = append(errs, FieldError{Field: "phone", Message: "Please enter a valid phone number (10-15 digits)"})
		}
	}

	message := strings.TrimSpace(form.Message)
	if message != "" && len(message) < minMessageLength {
		errs = append(errs, FieldError{Field: "message", Message: "Message must be at least 10 characters long"})
	}
	if rules.EnforceWordCount && message != "" && len(strings.Fields(message)) < minMessageWords {
		errs = append(errs, FieldError{Field: "message", Message: "Message must contain at least 4 words"})
	}

	if !form.GDPRConsent {
		errs = append(errs, FieldError{Field: "gdprConsent", Message: "You must agree to the privacy policy"})
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
