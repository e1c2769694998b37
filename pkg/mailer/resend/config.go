package resend

// Config holds Resend credentials. An empty APIKey disables delivery.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"no-reply@filevault.local"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"filevault"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// From formats the default sender address.
func (c Config) From() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return c.SenderName + " <" + c.SenderEmail + ">"
}
