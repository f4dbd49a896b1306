package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/cvvishnuu/portfolio/internal/config"
	"github.com/cvvishnuu/portfolio/internal/contact"
)

// FromConfig builds the relay selected by cfg together with the controller
// settings. ownerEmail is the notification recipient when SMTP has no To.
// The returned relay is nil when the provider lacks credentials, in which
// case the settings disable it and submissions are simulated.
func FromConfig(cfg *config.Config, ownerEmail string, logger *slog.Logger) (contact.Relay, contact.Settings) {
	settings := contact.Settings{
		Enabled:              cfg.RelayEnabled(),
		NotificationTemplate: cfg.Relay.NotificationTemplate,
		AutoReplyTemplate:    cfg.Relay.AutoReplyTemplate,
		SimulatedDelay:       cfg.SimulatedDelay(),
	}
	if !settings.Enabled {
		return nil, settings
	}

	var r contact.Relay
	switch cfg.Relay.Provider {
	case config.RelaySMTP:
		to := cfg.SMTP.To
		if to == "" {
			to = ownerEmail
		}
		r = NewSMTP(SMTPSettings{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   to,
		}, nil)
	default:
		r = NewEmailJS(cfg.Relay.ServiceID, cfg.Relay.PublicKey,
			WithEndpoint(cfg.Relay.Endpoint),
			WithPrivateKey(cfg.Relay.PrivateKey))
	}
	return Logged(r, logger.With("provider", string(cfg.Relay.Provider))), settings
}

// Logged wraps a relay so every send is logged with its duration.
func Logged(next contact.Relay, logger *slog.Logger) contact.Relay {
	return contact.RelayFunc(func(ctx context.Context, msg contact.Message) error {
		start := time.Now()
		err := next.Send(ctx, msg)
		attrs := []any{
			"kind", msg.Kind,
			"template", msg.Template,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			logger.Warn("relay send failed", append(attrs, "error", err)...)
			return err
		}
		logger.Debug("relay send ok", attrs...)
		return nil
	})
}
