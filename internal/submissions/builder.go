package submissions

import (
	"strings"
	"time"
)

// ClientContext carries the per-visitor ambient state that would otherwise
// live in browser globals: the resolved session id plus request metadata.
// Constructing it explicitly keeps the builder pure and testable.
type ClientContext struct {
	SessionID        string
	UserAgent        string
	Referrer         string
	PageURL          string
	UTMSource        string
	UTMMedium        string
	UTMCampaign      string
	ScreenResolution *ScreenResolution
	Timezone         string
}

// Builder composes validation and enrichment into canonical records.
type Builder struct {
	companyID string
	rules     RuleSet
	now       func() time.Time
	newID     func() string
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides submission-id generation, for tests.
func WithIDGenerator(newID func() string) BuilderOption {
	return func(b *Builder) { b.newID = newID }
}

// NewBuilder creates a submission builder scoped to one company deployment.
func NewBuilder(companyID string, rules RuleSet, opts ...BuilderOption) *Builder {
	b := &Builder{
		companyID: companyID,
		rules:     rules,
		now:       time.Now,
		newID:     NewSubmissionID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the form and, when it passes, produces the fully-populated
// persistence record. On validation failure the result is returned and no
// record is built; nothing is persisted by this path.
func (b *Builder) Build(form FormData, cctx ClientContext) (*Submission, *ValidationResult) {
	result := Validate(form, b.rules)
	if !result.IsValid {
		return nil, &result
	}

	firstName := strings.TrimSpace(form.FirstName)
	lastName := strings.TrimSpace(form.LastName)
	fullName := firstName
	if lastName != "" {
		fullName = firstName + " " + lastName
	}

	countryCode := form.CountryCode
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	contactMethod := form.ContactMethod
	if contactMethod == "" {
		contactMethod = DefaultContactMethod
	}

	sub := &Submission{
		SubmissionID: b.newID(),
		CompanyID:    b.companyID,
		SessionID:    cctx.SessionID,

		FirstName:   firstName,
		LastName:    lastName,
		FullName:    fullName,
		Email:       strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:       strings.TrimSpace(form.Phone),
		CountryCode: countryCode,
		Company:     strings.TrimSpace(form.Company),

		Subject:       form.Subject,
		Message:       strings.TrimSpace(form.Message),
		ContactMethod: contactMethod,
		BestTime:      form.BestTime,

		LeadScore:       CalculateLeadScore(form),
		CustomerSegment: DetermineCustomerSegment(form),
		EstimatedValue:  EstimateProjectValue(form.Subject),
		UrgencyLevel:    DetermineUrgency(form),
		Priority:        DeterminePriority(form),
		Category:        DetermineCategory(form.Subject),
		Tags:            GenerateTags(form),

		GDPRConsent:          form.GDPRConsent,
		PrivacyPolicyVersion: PrivacyPolicyVersion,
		TermsAccepted:        true,
		DataRetentionDate:    RetentionDate(b.now()),

		UserAgent:        cctx.UserAgent,
		Referrer:         cctx.Referrer,
		PageURL:          cctx.PageURL,
		UTMSource:        cctx.UTMSource,
		UTMMedium:        cctx.UTMMedium,
		UTMCampaign:      cctx.UTMCampaign,
		ScreenResolution: cctx.ScreenResolution,
		Timezone:         cctx.Timezone,

		Source: DefaultSource,
		Status: StatusNew,

		CustomFields: CustomFields{
			ContactPreferences: ContactPreferences{
				Method:   contactMethod,
				BestTime: form.BestTime,
			},
			FormVersion: FormVersion,
			Platform:    Platform,
		},
	}

	return sub, nil
}
