package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: PORTFOLIO_RELAY__SERVICE_ID sets relay.service_id.
const EnvPrefix = "PORTFOLIO_"

// plainEnv maps the unprefixed variable names older deployments use.
var plainEnv = map[string]string{
	"PORT":                             "port",
	"GIN_MODE":                         "mode",
	"ADMIN_USERNAME":                   "admin.username",
	"ADMIN_PASSWORD":                   "admin.password",
	"EMAILJS_SERVICE_ID":               "relay.service_id",
	"EMAILJS_NOTIFICATION_TEMPLATE_ID": "relay.notification_template",
	"EMAILJS_TEMPLATE_ID":              "relay.auto_reply_template",
	"EMAILJS_PUBLIC_KEY":               "relay.public_key",
	"EMAILJS_PRIVATE_KEY":              "relay.private_key",
	"SMTP_HOST":                        "smtp.host",
	"SMTP_PORT":                        "smtp.port",
	"SMTP_USER":                        "smtp.user",
	"SMTP_PASS":                        "smtp.pass",
	"TO_EMAIL":                         "smtp.to",
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Port:     "8080",
		Mode:     "release",
		Database: "portfolio.db",
		Admin: AdminConfig{
			Username: "admin",
		},
		Relay: RelayConfig{
			Provider:         RelayEmailJS,
			Endpoint:         "https://api.emailjs.com/api/v1.0/email/send",
			SimulatedDelayMS: 1500,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays the plain
// environment names and finally the PORTFOLIO_* overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return plainEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[RelayProvider]bool{
	RelayEmailJS: true,
	RelaySMTP:    true,
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if !validProviders[c.Relay.Provider] {
		return fmt.Errorf("invalid relay provider %q: must be one of emailjs, smtp", c.Relay.Provider)
	}
	if c.Relay.SimulatedDelayMS < 0 {
		return fmt.Errorf("relay.simulated_delay_ms must be non-negative")
	}
	return nil
}

// RelayEnabled reports whether the configured provider has the credentials
// it needs. Without them the contact form falls back to a simulated send.
func (c *Config) RelayEnabled() bool {
	switch c.Relay.Provider {
	case RelayEmailJS:
		return c.Relay.ServiceID != "" && c.Relay.PublicKey != ""
	case RelaySMTP:
		return c.SMTP.User != "" && c.SMTP.Pass != ""
	}
	return false
}

// SimulatedDelay returns the fallback send duration.
func (c *Config) SimulatedDelay() time.Duration {
	return time.Duration(c.Relay.SimulatedDelayMS) * time.Millisecond
}

// AdminEnabled reports whether the stats dashboard may be served.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Password != ""
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
