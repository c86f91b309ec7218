// Package bootstrap wires shared runtime pieces for the API and worker
// binaries.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/presq/leadcapture/internal/config"
	"github.com/presq/leadcapture/internal/notify"
	"github.com/presq/leadcapture/internal/sessions"
	"github.com/presq/leadcapture/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildSessionStore returns the visitor session store when Redis is available.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config) *sessions.Store {
	if redisClient == nil || cfg == nil {
		return nil
	}
	return sessions.NewStore(redisClient, cfg.SessionTTL)
}

// BuildIdentity assembles the company-facing email identity from config.
func BuildIdentity(cfg *appconfig.Config) notify.Identity {
	return notify.Identity{
		CompanyID:     cfg.CompanyID,
		CompanyName:   cfg.CompanyName,
		AdminEmail:    cfg.AdminEmail,
		CCEmails:      splitEmails(cfg.AdminCCEmails),
		SupportEmail:  cfg.SupportEmail,
		SupportPhone:  cfg.SupportPhone,
		WebsiteURL:    cfg.WebsiteURL,
		AdminPanelURL: cfg.AdminPanelURL,
	}
}

// BuildEmailSender selects the configured email gateway. Missing credentials
// fall back to the stub sender so the rest of the system keeps running.
func BuildEmailSender(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) (notify.EmailSender, string) {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender != nil {
			return sender, "sendgrid"
		}
		logger.Warn("sendgrid not configured, falling back to stub sender")
	case "ses":
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		if sender != nil {
			return sender, "ses"
		}
		logger.Warn("ses not configured, falling back to stub sender")
	case "stub":
	default:
		logger.Warn("unknown email provider, falling back to stub sender",
			"provider", cfg.EmailProvider)
	}
	return notify.NewStubEmailSender(logger), "stub"
}

func splitEmails(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
