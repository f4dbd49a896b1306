package config

// RelayProvider selects the email relay used by the contact form.
type RelayProvider string

const (
	RelayEmailJS RelayProvider = "emailjs"
	RelaySMTP    RelayProvider = "smtp"
)

// Config is the top-level configuration, corresponding to portfolio.yml.
type Config struct {
	Port     string      `yaml:"port" koanf:"port"`
	Mode     string      `yaml:"mode" koanf:"mode"`
	Database string      `yaml:"database" koanf:"database"`
	Admin    AdminConfig `yaml:"admin" koanf:"admin"`
	Relay    RelayConfig `yaml:"relay" koanf:"relay"`
	SMTP     SMTPConfig  `yaml:"smtp" koanf:"smtp"`
}

// AdminConfig holds the credentials for the stats dashboard. Admin routes
// are disabled while Password is empty.
type AdminConfig struct {
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
}

// RelayConfig describes the contact form's email relay.
type RelayConfig struct {
	Provider             RelayProvider `yaml:"provider" koanf:"provider"`
	Endpoint             string        `yaml:"endpoint" koanf:"endpoint"`
	ServiceID            string        `yaml:"service_id" koanf:"service_id"`
	NotificationTemplate string        `yaml:"notification_template" koanf:"notification_template"`
	AutoReplyTemplate    string        `yaml:"auto_reply_template" koanf:"auto_reply_template"`
	PublicKey            string        `yaml:"public_key" koanf:"public_key"`
	PrivateKey           string        `yaml:"private_key" koanf:"private_key"`
	SimulatedDelayMS     int           `yaml:"simulated_delay_ms" koanf:"simulated_delay_ms"`
}

// SMTPConfig is used when Relay.Provider is smtp.
type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
	To   string `yaml:"to" koanf:"to"`
}
