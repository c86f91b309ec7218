package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/presq/leadcapture/internal/submissions"
)

// Identity carries the company-facing details rendered into email documents.
type Identity struct {
	CompanyID     string
	CompanyName   string
	AdminEmail    string
	CCEmails      []string
	SupportEmail  string
	SupportPhone  string
	WebsiteURL    string
	AdminPanelURL string
}

// AdminSubject builds the admin alert subject line. The urgency marker keeps
// high-priority leads sortable in a crowded inbox.
func AdminSubject(sub *submissions.Submission, resent bool) string {
	if resent {
		return fmt.Sprintf("RESENT: %s Priority Lead - %s", strings.ToUpper(sub.UrgencyLevel), sub.Subject)
	}
	return fmt.Sprintf("New %s Priority Lead - %s", strings.ToUpper(sub.UrgencyLevel), sub.Subject)
}

// CustomerSubject builds the acknowledgment subject line.
func CustomerSubject(identity Identity) string {
	return fmt.Sprintf("Thank you for contacting %s - We'll respond within 24 hours", identity.CompanyName)
}

type adminTemplateData struct {
	Identity     Identity
	Sub          *submissions.Submission
	Urgency      string
	Value        string
	Segment      string
	ResponseTime string
	UTMSource    string
	UTMCampaign  string
	Company      string
	AdminLink    string
}

type customerTemplateData struct {
	Identity      Identity
	FirstName     string
	Subject       string
	ContactMethod string
}

var adminEmailTemplate = template.Must(template.New("admin_alert").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>New Contact Form Submission - {{.Identity.CompanyName}}</title></head>
<body style="font-family: sans-serif; color: #333;">
  <h1>New Contact Submission</h1>
  <p><strong>{{.Urgency}} PRIORITY</strong> &mdash; respond within {{.ResponseTime}}.</p>

  <h3>Contact Information</h3>
  <ul>
    <li>Full Name: {{.Sub.FullName}}</li>
    <li>Email: {{.Sub.Email}}</li>
    <li>Phone: {{.Sub.CountryCode}} {{.Sub.Phone}}</li>
    <li>Company: {{.Company}}</li>
  </ul>

  <h3>Inquiry Details</h3>
  <ul>
    <li>Subject: {{.Sub.Subject}}</li>
    <li>Preferred Contact: {{.Sub.ContactMethod}} ({{.Sub.BestTime}})</li>
  </ul>
  <blockquote>{{.Sub.Message}}</blockquote>

  <h3>Business Intelligence</h3>
  <ul>
    <li>Lead Score: {{.Sub.LeadScore}}</li>
    <li>Estimated Value: {{.Value}}</li>
    <li>Segment: {{.Segment}}</li>
    <li>Urgency: {{.Urgency}}</li>
  </ul>

  <h3>Tracking</h3>
  <ul>
    <li>Submission ID: {{.Sub.SubmissionID}}</li>
    <li>UTM Source: {{.UTMSource}}</li>
    <li>UTM Campaign: {{.UTMCampaign}}</li>
  </ul>

  <p><a href="{{.AdminLink}}">View in Admin Panel</a></p>
  <hr>
  <p>{{.Identity.CompanyName}} Admin Notification System</p>
</body>
</html>
`))

var customerEmailTemplate = template.Must(template.New("customer_ack").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Thank You - {{.Identity.CompanyName}}</title></head>
<body style="font-family: sans-serif; color: #333;">
  <h1>Thank You, {{.FirstName}}!</h1>
  <p>We've received your inquiry about <strong>{{.Subject}}</strong> and our team
  will respond within 24 hours during business days.</p>

  <h3>What Happens Next?</h3>
  <ol>
    <li><strong>Review &amp; Analysis</strong> &mdash; our team will carefully review your requirements and prepare a tailored response.</li>
    <li><strong>Personal Response</strong> &mdash; you'll receive a detailed response via {{.ContactMethod}} within 24 hours.</li>
    <li><strong>Consultation</strong> &mdash; we'll schedule a consultation to discuss your project in detail.</li>
  </ol>

  <h3>Need Immediate Assistance?</h3>
  <ul>
    <li>Call us: <a href="tel:{{.Identity.SupportPhone}}">{{.Identity.SupportPhone}}</a></li>
    <li>Email us: <a href="mailto:{{.Identity.SupportEmail}}">{{.Identity.SupportEmail}}</a></li>
  </ul>

  <hr>
  <p>{{.Identity.CompanyName}} &mdash; <a href="{{.Identity.WebsiteURL}}">{{.Identity.WebsiteURL}}</a></p>
</body>
</html>
`))

// RenderAdminEmail produces the HTML admin alert document for a submission.
func RenderAdminEmail(sub *submissions.Submission, identity Identity) (string, error) {
	if sub == nil {
		return "", fmt.Errorf("notify: submission required")
	}

	responseTime := submissions.ResponseTimeByUrgency[sub.UrgencyLevel]
	if responseTime == "" {
		responseTime = submissions.ResponseTimeByUrgency[submissions.UrgencyNormal]
	}
	company := sub.Company
	if company == "" {
		company = "Not provided"
	}
	utmSource := sub.UTMSource
	if utmSource == "" {
		utmSource = "Direct"
	}
	utmCampaign := sub.UTMCampaign
	if utmCampaign == "" {
		utmCampaign = "None"
	}

	data := adminTemplateData{
		Identity:     identity,
		Sub:          sub,
		Urgency:      strings.ToUpper(sub.UrgencyLevel),
		Value:        strings.ToUpper(sub.EstimatedValue),
		Segment:      strings.ToUpper(sub.CustomerSegment),
		ResponseTime: responseTime,
		UTMSource:    utmSource,
		UTMCampaign:  utmCampaign,
		Company:      company,
		AdminLink:    fmt.Sprintf("%s/contacts/%s", identity.AdminPanelURL, sub.SubmissionID),
	}

	var buf bytes.Buffer
	if err := adminEmailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render admin email: %w", err)
	}
	return buf.String(), nil
}

// RenderCustomerEmail produces the HTML acknowledgment document for a
// submission.
func RenderCustomerEmail(sub *submissions.Submission, identity Identity) (string, error) {
	if sub == nil {
		return "", fmt.Errorf("notify: submission required")
	}

	data := customerTemplateData{
		Identity:      identity,
		FirstName:     sub.FirstName,
		Subject:       sub.Subject,
		ContactMethod: sub.ContactMethod,
	}

	var buf bytes.Buffer
	if err := customerEmailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render customer email: %w", err)
	}
	return buf.String(), nil
}
