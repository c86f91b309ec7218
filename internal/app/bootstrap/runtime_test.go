package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	appconfig "github.com/presq/leadcapture/internal/config"
	"github.com/presq/leadcapture/pkg/logging"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: ""}
	if client := BuildRedisClient(context.Background(), cfg, nil, false); client != nil {
		t.Fatalf("expected nil client when redis is not configured")
	}
}

func TestBuildRedisClientNoVerify(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: "localhost:6379"}
	client := BuildRedisClient(context.Background(), cfg, nil, false)
	if client == nil {
		t.Fatalf("expected client without verification")
	}
	_ = client.Close()
}

func TestBuildSessionStore(t *testing.T) {
	if store := BuildSessionStore(nil, &appconfig.Config{SessionTTL: time.Hour}); store != nil {
		t.Fatalf("expected nil store without redis")
	}
}

func TestBuildIdentity(t *testing.T) {
	cfg := &appconfig.Config{
		CompanyID:     "company-1",
		CompanyName:   "PreSQ Innovation",
		AdminEmail:    "admin@presq.co.in",
		AdminCCEmails: "sales@presq.co.in, ops@presq.co.in,",
		SupportEmail:  "support@presq.co.in",
	}
	identity := BuildIdentity(cfg)
	if identity.CompanyName != "PreSQ Innovation" {
		t.Errorf("company name = %q", identity.CompanyName)
	}
	if len(identity.CCEmails) != 2 || identity.CCEmails[1] != "ops@presq.co.in" {
		t.Errorf("cc emails = %v", identity.CCEmails)
	}
}

func TestBuildEmailSenderStubFallback(t *testing.T) {
	logger := logging.New("error")
	cases := []struct {
		name string
		cfg  *appconfig.Config
	}{
		{"explicit stub", &appconfig.Config{EmailProvider: "stub"}},
		{"sendgrid without key", &appconfig.Config{EmailProvider: "sendgrid"}},
		{"unknown provider", &appconfig.Config{EmailProvider: "smoke-signals"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender, provider := BuildEmailSender(tc.cfg, aws.Config{}, logger)
			if sender == nil {
				t.Fatal("expected a sender")
			}
			if provider != "stub" {
				t.Errorf("provider = %q", provider)
			}
		})
	}
}

func TestBuildEmailSenderSendGrid(t *testing.T) {
	cfg := &appconfig.Config{
		EmailProvider:     "sendgrid",
		SendGridAPIKey:    "SG.test",
		SendGridFromEmail: "no-reply@presq.co.in",
	}
	sender, provider := BuildEmailSender(cfg, aws.Config{}, logging.New("error"))
	if sender == nil || provider != "sendgrid" {
		t.Fatalf("expected sendgrid sender, got %q", provider)
	}
}

func TestBuildEmailSenderSES(t *testing.T) {
	cfg := &appconfig.Config{
		EmailProvider: "ses",
		SESFromEmail:  "no-reply@presq.co.in",
		AWSRegion:     "us-east-1",
	}
	sender, provider := BuildEmailSender(cfg, aws.Config{Region: "us-east-1"}, logging.New("error"))
	if sender == nil || provider != "ses" {
		t.Fatalf("expected ses sender, got %q", provider)
	}
}
