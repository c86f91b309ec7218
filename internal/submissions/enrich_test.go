package submissions

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCalculateLeadScoreSignalsAreAdditive(t *testing.T) {
	base := FormData{
		FirstName: "Sam",
		Email:     "sam@gmail.com",
		Subject:   "Other",
		Message:   "short note here",
	}
	if got := CalculateLeadScore(base); got != 50 {
		t.Fatalf("expected base score 50, got %d", got)
	}

	signals := []struct {
		name   string
		mutate func(*FormData)
		bonus  int
	}{
		{"company", func(f *FormData) { f.Company = "Acme Inc" }, 20},
		{"high-value subject", func(f *FormData) { f.Subject = "Web Development" }, 30},
		{"detailed message", func(f *FormData) { f.Message = strings.Repeat("details ", 15) }, 10},
		{"phone", func(f *FormData) { f.Phone = "9876543210" }, 15},
		{"professional email", func(f *FormData) { f.Email = "sam@acme.com" }, 10},
	}

	for _, sig := range signals {
		t.Run(sig.name, func(t *testing.T) {
			form := base
			sig.mutate(&form)
			got := CalculateLeadScore(form)
			if got != 50+sig.bonus {
				t.Fatalf("expected %d with %s signal, got %d", 50+sig.bonus, sig.name, got)
			}
			// Monotonic: adding a signal never lowers the score.
			if got < CalculateLeadScore(base) {
				t.Fatalf("score decreased when adding %s", sig.name)
			}
		})
	}
}

func TestCalculateLeadScoreClampedAt100(t *testing.T) {
	form := FormData{
		FirstName: "Jane",
		Email:     "jane@acme.com",
		Phone:     "9876543210",
		Company:   "Acme Inc",
		Subject:   "Web Development",
		Message:   strings.Repeat("we need a large platform build ", 5),
	}
	// All five signals: 50+20+30+10+15+10 = 135, clamped.
	if got := CalculateLeadScore(form); got != 100 {
		t.Fatalf("expected clamped score 100, got %d", got)
	}
}

func TestDetermineCustomerSegment(t *testing.T) {
	tests := []struct {
		name string
		form FormData
		want string
	}{
		{"company provided", FormData{Company: "Acme Inc", Message: "hello there friend"}, SegmentBusiness},
		{"business keyword in message", FormData{Message: "Our startup needs a site"}, SegmentBusiness},
		{"keyword is case-insensitive", FormData{Message: "My ENTERPRISE requires help"}, SegmentBusiness},
		{"individual", FormData{Message: "I want a personal portfolio"}, SegmentIndividual},
		{"blank company ignored", FormData{Company: "   ", Message: "personal site please"}, SegmentIndividual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineCustomerSegment(tt.form); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEstimateProjectValue(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Web Development", ValueHigh},
		{"App Development", ValueHigh},
		{"E-Commerce", ValueHigh},
		{"Digital Marketing", ValueMedium},
		{"SEO Services", ValueMedium},
		{"Analytics & Reporting", ValueLow},
		{"Consultation", ValueLow},
		{"Support & Maintenance", ValueLow},
		{"Other", ValueMedium},
	}
	for _, tt := range tests {
		if got := EstimateProjectValue(tt.subject); got != tt.want {
			t.Errorf("EstimateProjectValue(%q) = %s, want %s", tt.subject, got, tt.want)
		}
	}
}

func TestDetermineUrgency(t *testing.T) {
	tests := []struct {
		name string
		form FormData
		want string
	}{
		{"urgent keyword", FormData{Message: "This is urgent, please help immediately", Company: ""}, UrgencyHigh},
		{"urgent beats company", FormData{Message: "deadline is friday", Company: "Acme"}, UrgencyHigh},
		{"company without urgency", FormData{Message: "looking for a redesign", Company: "Acme"}, UrgencyMedium},
		{"neither", FormData{Message: "looking for a redesign"}, UrgencyNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineUrgency(tt.form); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDeterminePriority(t *testing.T) {
	tests := []struct {
		name string
		form FormData
		want string
	}{
		{
			"high urgency wins",
			FormData{Message: "asap please", Email: "a@gmail.com"},
			PriorityHigh,
		},
		{
			"hot score without urgency",
			// 50 + 20 company + 30 subject = 100 >= 80, urgency medium.
			FormData{Company: "Acme", Subject: "Web Development", Message: "calm message here"},
			PriorityHigh,
		},
		{
			"medium from company urgency",
			FormData{Company: "Acme", Subject: "Other", Message: "calm message here", Email: "a@gmail.com"},
			PriorityMedium,
		},
		{
			"medium from warm score",
			// 50 + 30 subject = 80? no: subject Other. 50 + 15 phone = 65 >= 60.
			FormData{Subject: "Other", Message: "calm message here", Phone: "9876543210", Email: "a@gmail.com"},
			PriorityMedium,
		},
		{
			"normal otherwise",
			FormData{Subject: "Other", Message: "calm message here", Email: "a@gmail.com"},
			PriorityNormal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeterminePriority(tt.form); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDetermineCategory(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Web Development", "development"},
		{"App Development", "development"},
		{"Mobile App", "development"},
		{"SEO Services", "marketing"},
		{"Digital Marketing", "marketing"},
		{"Analytics & Reporting", "analytics"},
		{"Consultation", "consultation"},
		{"Support & Maintenance", "support"},
		{"Other", "general"},
	}
	for _, tt := range tests {
		if got := DetermineCategory(tt.subject); got != tt.want {
			t.Errorf("DetermineCategory(%q) = %s, want %s", tt.subject, got, tt.want)
		}
	}
}

func TestGenerateTags(t *testing.T) {
	form := FormData{
		Company: "Acme Inc",
		Subject: "Web Development",
		Message: "We need a new company website urgently",
	}
	got := GenerateTags(form)
	want := []string{"website", "contact_form", "web_development", "business", "high", "has_company"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected tags %v, got %v", want, got)
	}
}

func TestGenerateTagsWithoutCompany(t *testing.T) {
	form := FormData{
		Subject: "Consultation",
		Message: "I would like some personal advice",
	}
	got := GenerateTags(form)
	want := []string{"website", "contact_form", "consultation", "individual", "normal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected tags %v, got %v", want, got)
	}
}

func TestRetentionDateSevenYears(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	want := time.Date(2032, time.March, 10, 12, 0, 0, 0, time.UTC).Unix()
	if got := RetentionDate(now); got != want {
		t.Fatalf("expected retention %d, got %d", want, got)
	}
}

func TestEnrichmentIsDeterministic(t *testing.T) {
	form := FormData{
		FirstName: "Jane",
		Email:     "jane@acme.com",
		Phone:     "9876543210",
		Company:   "Acme Inc",
		Subject:   "Web Development",
		Message:   "We need a new company website soon",
	}

	first := struct {
		score    int
		segment  string
		value    string
		urgency  string
		priority string
		category string
		tags     []string
	}{
		CalculateLeadScore(form),
		DetermineCustomerSegment(form),
		EstimateProjectValue(form.Subject),
		DetermineUrgency(form),
		DeterminePriority(form),
		DetermineCategory(form.Subject),
		GenerateTags(form),
	}

	if first.score != CalculateLeadScore(form) ||
		first.segment != DetermineCustomerSegment(form) ||
		first.value != EstimateProjectValue(form.Subject) ||
		first.urgency != DetermineUrgency(form) ||
		first.priority != DeterminePriority(form) ||
		first.category != DetermineCategory(form.Subject) ||
		!reflect.DeepEqual(first.tags, GenerateTags(form)) {
		t.Fatal("expected identical derived fields on repeated enrichment")
	}
}
