package submissions

import (
	"regexp"
	"testing"
	"time"
)

func testBuilder(opts ...BuilderOption) *Builder {
	return NewBuilder("Xaq4HIl4v4uD1rIMpUmD", DefaultRuleSet, opts...)
}

func testClientContext() ClientContext {
	return ClientContext{
		SessionID:   "session_1700000000000_abc123",
		UserAgent:   "Mozilla/5.0",
		Referrer:    "https://google.com",
		PageURL:     "https://presq.co.in/contact?utm_source=google",
		UTMSource:   "google",
		UTMMedium:   "cpc",
		UTMCampaign: "spring",
		Timezone:    "Asia/Kolkata",
		ScreenResolution: &ScreenResolution{
			Width:  1920,
			Height: 1080,
		},
	}
}

func TestBuildValidForm(t *testing.T) {
	fixedNow := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	b := testBuilder(WithClock(func() time.Time { return fixedNow }))

	form := validForm()
	form.LastName = "Doe"
	form.Company = "Acme Inc"
	form.Email = "Jane@Acme.COM"

	sub, verr := b.Build(form, testClientContext())
	if verr != nil {
		t.Fatalf("expected successful build, got validation errors: %v", verr.Errors)
	}

	if !regexp.MustCompile(`^SUB_\d+_[a-z0-9]{6}$`).MatchString(sub.SubmissionID) {
		t.Errorf("unexpected submission id format: %s", sub.SubmissionID)
	}
	if sub.CompanyID != "Xaq4HIl4v4uD1rIMpUmD" {
		t.Errorf("expected tenant company id, got %s", sub.CompanyID)
	}
	if sub.SessionID != "session_1700000000000_abc123" {
		t.Errorf("expected session id from client context, got %s", sub.SessionID)
	}
	if sub.FullName != "Jane Doe" {
		t.Errorf("expected concatenated full name, got %s", sub.FullName)
	}
	if sub.Email != "jane@acme.com" {
		t.Errorf("expected lowercased email, got %s", sub.Email)
	}
	if sub.CountryCode != DefaultCountryCode {
		t.Errorf("expected default country code, got %s", sub.CountryCode)
	}
	if sub.ContactMethod != DefaultContactMethod {
		t.Errorf("expected default contact method, got %s", sub.ContactMethod)
	}
	if sub.Status != StatusNew {
		t.Errorf("expected status new, got %s", sub.Status)
	}
	if sub.Source != DefaultSource {
		t.Errorf("expected source website, got %s", sub.Source)
	}
	if sub.CreatedAt != "" || sub.UpdatedAt != "" {
		t.Error("createdAt/updatedAt must be server-assigned on write, not by the builder")
	}
	if sub.DataRetentionDate != fixedNow.AddDate(7, 0, 0).Unix() {
		t.Errorf("expected 7-year retention date, got %d", sub.DataRetentionDate)
	}
	if !sub.TermsAccepted || sub.PrivacyPolicyVersion != "1.0" {
		t.Error("expected compliance defaults")
	}
	if sub.CustomFields.FormVersion != "2.0" || sub.CustomFields.Platform != "website" {
		t.Errorf("unexpected custom fields: %+v", sub.CustomFields)
	}
	if sub.CustomFields.ContactPreferences.Method != "email" || sub.CustomFields.ContactPreferences.BestTime != form.BestTime {
		t.Errorf("unexpected contact preferences: %+v", sub.CustomFields.ContactPreferences)
	}
	if sub.UTMSource != "google" || sub.Timezone != "Asia/Kolkata" {
		t.Error("expected ambient metadata carried onto the record")
	}
}

func TestBuildScenarioBusinessLead(t *testing.T) {
	b := testBuilder()
	form := FormData{
		FirstName:   "Jane",
		Email:       "jane@acme.com",
		Phone:       "9876543210",
		Subject:     "Web Development",
		Message:     "We need a new company website soon",
		BestTime:    "Morning (9 AM - 12 PM)",
		GDPRConsent: true,
		Company:     "Acme Inc",
	}

	sub, verr := b.Build(form, ClientContext{})
	if verr != nil {
		t.Fatalf("expected valid build, got %v", verr.Errors)
	}
	if sub.CustomerSegment != SegmentBusiness {
		t.Errorf("expected business segment, got %s", sub.CustomerSegment)
	}
	if sub.EstimatedValue != ValueHigh {
		t.Errorf("expected high estimated value, got %s", sub.EstimatedValue)
	}
	if sub.Category != "development" {
		t.Errorf("expected development category, got %s", sub.Category)
	}
	if sub.LeadScore < LeadScoreHot {
		t.Errorf("expected lead score >= %d, got %d", LeadScoreHot, sub.LeadScore)
	}
	if sub.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", sub.Priority)
	}
}

func TestBuildInvalidFormReturnsErrors(t *testing.T) {
	b := testBuilder()
	form := validForm()
	form.Email = "not-an-email"

	sub, verr := b.Build(form, testClientContext())
	if sub != nil {
		t.Fatal("expected no record on validation failure")
	}
	if verr == nil || verr.IsValid {
		t.Fatal("expected validation failure result")
	}
	if len(verr.Errors) != 1 || verr.Errors[0].Field != "email" {
		t.Fatalf("expected single email error, got %v", verr.Errors)
	}
}

func TestBuildRoundTripRevalidates(t *testing.T) {
	b := testBuilder()
	sub, verr := b.Build(validForm(), testClientContext())
	if verr != nil {
		t.Fatalf("expected valid build, got %v", verr.Errors)
	}

	rebuilt := FormData{
		FirstName:   sub.FirstName,
		LastName:    sub.LastName,
		Email:       sub.Email,
		Phone:       sub.Phone,
		Subject:     sub.Subject,
		Message:     sub.Message,
		BestTime:    sub.BestTime,
		GDPRConsent: sub.GDPRConsent,
		Company:     sub.Company,
	}
	if result := Validate(rebuilt, DefaultRuleSet); !result.IsValid {
		t.Fatalf("built record should re-pass validation, got %v", result.Errors)
	}
}

func TestBuildTwiceProducesIndependentRecords(t *testing.T) {
	b := testBuilder()
	first, verr := b.Build(validForm(), testClientContext())
	if verr != nil {
		t.Fatalf("unexpected validation errors: %v", verr.Errors)
	}
	second, verr := b.Build(validForm(), testClientContext())
	if verr != nil {
		t.Fatalf("unexpected validation errors: %v", verr.Errors)
	}
	// Same logical form, distinct submissions; deduplication is out of scope.
	if first.SubmissionID == second.SubmissionID {
		t.Fatalf("expected distinct submission ids, both were %s", first.SubmissionID)
	}
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusNew, StatusInProgress, true},
		{StatusNew, StatusClosed, true},
		{StatusInProgress, StatusResponded, true},
		{StatusClosed, StatusClosed, true},
		{StatusClosed, StatusNew, false},
		{StatusResponded, StatusInProgress, false},
		{Status("bogus"), StatusNew, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.ok {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}
