package submissions

// Source identifier stamped onto every record and log entry.
const (
	DefaultSource        = "website"
	DefaultCountryCode   = "+91"
	DefaultContactMethod = "email"
	PrivacyPolicyVersion = "1.0"
	FormVersion          = "2.0"
	Platform             = "website"
	RetentionPeriodYears = 7
)

// Status tracks the lifecycle of a submission. Transitions are monotonic;
// administration past "new" happens in an external console.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResponded  Status = "responded"
	StatusClosed     Status = "closed"
)

var statusRank = map[Status]int{
	StatusNew:        0,
	StatusInProgress: 1,
	StatusResponded:  2,
	StatusClosed:     3,
}

// ValidTransition reports whether moving from one status to another respects
// the monotonic lifecycle (no regression, closed is terminal).
func ValidTransition(from, to Status) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// SubjectOptions is the fixed option list presented by the contact form.
var SubjectOptions = []string{
	"Web Development",
	"App Development",
	"E-Commerce",
	"Digital Marketing",
	"SEO Services",
	"Analytics & Reporting",
	"Consultation",
	"Support & Maintenance",
	"Other",
}

// BestTimeOptions is the fixed option list for preferred contact windows.
var BestTimeOptions = []string{
	"Morning (9 AM - 12 PM)",
	"Afternoon (12 PM - 4 PM)",
	"Evening (4 PM - 8 PM)",
	"Anytime",
}

// FormData is the raw contact-form input before validation and enrichment.
type FormData struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CountryCode   string `json:"countryCode,omitempty"`
	Company       string `json:"company,omitempty"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	ContactMethod string `json:"contactMethod,omitempty"`
	BestTime      string `json:"bestTime"`
	GDPRConsent   bool   `json:"gdprConsent"`
}

// ScreenResolution captures the visitor's display for analytics.
type ScreenResolution struct {
	Width       int `dynamodbav:"width" json:"width"`
	Height      int `dynamodbav:"height" json:"height"`
	AvailWidth  int `dynamodbav:"availWidth,omitempty" json:"availWidth,omitempty"`
	AvailHeight int `dynamodbav:"availHeight,omitempty" json:"availHeight,omitempty"`
	ColorDepth  int `dynamodbav:"colorDepth,omitempty" json:"colorDepth,omitempty"`
}

// ContactPreferences mirrors the visitor's stated contact choices.
type ContactPreferences struct {
	Method   string `dynamodbav:"method" json:"method"`
	BestTime string `dynamodbav:"bestTime" json:"bestTime"`
}

// CustomFields carries form metadata the admin console reads but this system
// never interprets.
type CustomFields struct {
	ContactPreferences ContactPreferences `dynamodbav:"contactPreferences" json:"contactPreferences"`
	FormVersion        string             `dynamodbav:"formVersion" json:"formVersion"`
	Platform           string             `dynamodbav:"platform" json:"platform"`
}

// EmailNotifications records the outcome of the automatic notification run.
// Written exactly once by the notification pipeline.
type EmailNotifications struct {
	AdminEmailSent    bool   `dynamodbav:"adminEmailSent" json:"adminEmailSent"`
	CustomerEmailSent bool   `dynamodbav:"customerEmailSent" json:"customerEmailSent"`
	AdminMessageID    string `dynamodbav:"adminMessageId,omitempty" json:"adminMessageId,omitempty"`
	CustomerMessageID string `dynamodbav:"customerMessageId,omitempty" json:"customerMessageId,omitempty"`
	AdminError        string `dynamodbav:"adminError,omitempty" json:"adminError,omitempty"`
	CustomerError     string `dynamodbav:"customerError,omitempty" json:"customerError,omitempty"`
	SentAt            string `dynamodbav:"sentAt" json:"sentAt"`
}

// Submission is the canonical persisted lead record.
type Submission struct {
	// Identity
	SubmissionID string `dynamodbav:"submissionId" json:"submissionId"`
	CompanyID    string `dynamodbav:"companyId" json:"companyId"`
	SessionID    string `dynamodbav:"sessionId,omitempty" json:"sessionId,omitempty"`

	// Contact attributes
	FirstName   string `dynamodbav:"firstName" json:"firstName"`
	LastName    string `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
	FullName    string `dynamodbav:"fullName" json:"fullName"`
	Email       string `dynamodbav:"email" json:"email"`
	Phone       string `dynamodbav:"phone" json:"phone"`
	CountryCode string `dynamodbav:"countryCode" json:"countryCode"`
	Company     string `dynamodbav:"company,omitempty" json:"company,omitempty"`

	// Inquiry attributes
	Subject       string `dynamodbav:"subject" json:"subject"`
	Message       string `dynamodbav:"message" json:"message"`
	ContactMethod string `dynamodbav:"contactMethod" json:"contactMethod"`
	BestTime      string `dynamodbav:"bestTime" json:"bestTime"`

	// Business intelligence
	LeadScore       int      `dynamodbav:"leadScore" json:"leadScore"`
	CustomerSegment string   `dynamodbav:"customerSegment" json:"customerSegment"`
	EstimatedValue  string   `dynamodbav:"estimatedValue" json:"estimatedValue"`
	UrgencyLevel    string   `dynamodbav:"urgencyLevel" json:"urgencyLevel"`
	Priority        string   `dynamodbav:"priority" json:"priority"`
	Category        string   `dynamodbav:"category" json:"category"`
	Tags            []string `dynamodbav:"tags" json:"tags"`

	// Compliance
	GDPRConsent          bool   `dynamodbav:"gdprConsent" json:"gdprConsent"`
	PrivacyPolicyVersion string `dynamodbav:"privacyPolicyVersion" json:"privacyPolicyVersion"`
	TermsAccepted        bool   `dynamodbav:"termsAccepted" json:"termsAccepted"`
	DataRetentionDate    int64  `dynamodbav:"dataRetentionDate" json:"dataRetentionDate"`

	// Ambient metadata
	UserAgent        string            `dynamodbav:"userAgent,omitempty" json:"userAgent,omitempty"`
	Referrer         string            `dynamodbav:"referrer,omitempty" json:"referrer,omitempty"`
	PageURL          string            `dynamodbav:"pageUrl,omitempty" json:"pageUrl,omitempty"`
	UTMSource        string            `dynamodbav:"utmSource,omitempty" json:"utmSource,omitempty"`
	UTMMedium        string            `dynamodbav:"utmMedium,omitempty" json:"utmMedium,omitempty"`
	UTMCampaign      string            `dynamodbav:"utmCampaign,omitempty" json:"utmCampaign,omitempty"`
	ScreenResolution *ScreenResolution `dynamodbav:"screenResolution,omitempty" json:"screenResolution,omitempty"`
	Timezone         string            `dynamodbav:"timezone,omitempty" json:"timezone,omitempty"`

	// Lifecycle
	Source             string              `dynamodbav:"source" json:"source"`
	Status             Status              `dynamodbav:"status" json:"status"`
	CreatedAt          string              `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt          string              `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	EmailNotifications *EmailNotifications `dynamodbav:"emailNotifications,omitempty" json:"emailNotifications,omitempty"`

	CustomFields CustomFields `dynamodbav:"customFields" json:"customFields"`
}

// AnalyticsEvent is an append-only, fire-and-forget tracking record. Never
// read back by this system.
type AnalyticsEvent struct {
	EventName string         `dynamodbav:"eventName" json:"eventName"`
	EventData map[string]any `dynamodbav:"eventData,omitempty" json:"eventData,omitempty"`
	CompanyID string         `dynamodbav:"companyId" json:"companyId"`
	Source    string         `dynamodbav:"source" json:"source"`
	SessionID string         `dynamodbav:"sessionId,omitempty" json:"sessionId,omitempty"`
	PageURL   string         `dynamodbav:"pageUrl,omitempty" json:"pageUrl,omitempty"`
	UserAgent string         `dynamodbav:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt string         `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ErrorLog is an append-only operator-facing error record.
type ErrorLog struct {
	ErrorType string         `dynamodbav:"errorType" json:"errorType"`
	Message   string         `dynamodbav:"message" json:"message"`
	Context   map[string]any `dynamodbav:"context,omitempty" json:"context,omitempty"`
	CompanyID string         `dynamodbav:"companyId" json:"companyId"`
	Source    string         `dynamodbav:"source" json:"source"`
	SessionID string         `dynamodbav:"sessionId,omitempty" json:"sessionId,omitempty"`
	CreatedAt string         `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}
