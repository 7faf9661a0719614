package mail

// EmailSender holds the SMTP account for one regional provider.
type EmailSender struct {
	Provider string // region policy provider name ("outlook", "gmail")
	Host     string
	Port     int
	User     string
	Password string
}
