package brevo

// Config represents the configuration for the Brevo client
type Config struct {
	// APIKey is the Brevo transactional API key. Empty enables dev mode:
	// emails are logged instead of sent.
	APIKey string

	// BaseURL is the Brevo API base URL
	BaseURL string

	// SenderEmail is the from-address on outgoing mail
	SenderEmail string

	// SenderName is the display name on outgoing mail
	SenderName string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.SenderEmail == "" {
		return ErrInvalidConfig
	}
	return nil
}
