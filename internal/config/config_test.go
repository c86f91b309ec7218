package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("VALIDATION_RULE_SET", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.EmailProvider != "stub" {
		t.Fatalf("expected stub email provider by default, got %s", cfg.EmailProvider)
	}
	if cfg.ValidationRuleSet != "default" {
		t.Fatalf("expected default rule set, got %s", cfg.ValidationRuleSet)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected default session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitBurst != 5 {
		t.Fatalf("expected default rate limit burst, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("VALIDATION_RULE_SET", "Strict")
	t.Setenv("SUBMISSIONS_TABLE", "leads-prod")
	t.Setenv("NOTIFY_QUEUE_URL", "https://sqs.us-east-1.amazonaws.com/1/notify")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://presq.co.in, https://www.presq.co.in")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected provider normalized to lowercase, got %s", cfg.EmailProvider)
	}
	if cfg.ValidationRuleSet != "strict" {
		t.Fatalf("expected rule set normalized, got %s", cfg.ValidationRuleSet)
	}
	if cfg.SubmissionsTable != "leads-prod" {
		t.Fatalf("expected table override, got %s", cfg.SubmissionsTable)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("expected session TTL override, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.presq.co.in" {
		t.Fatalf("expected trimmed origin list, got %v", cfg.CORSAllowedOrigins)
	}
}
