package config

import (
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddress string `envconfig:"SERVER_ADDRESS" default:":8080"`
	DatabaseURL   string `envconfig:"DATABASE_URL" required:"true"`

	RabbitUser string `envconfig:"RABBITMQ_USER" default:"guest"`
	RabbitPass string `envconfig:"RABBITMQ_PASS" default:"guest"`
	RabbitHost string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	RabbitPort string `envconfig:"RABBITMQ_PORT" default:"5672"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// US leads go out through Outlook, India leads through Gmail.
	OutlookHost string `envconfig:"OUTLOOK_SMTP_HOST" default:"smtp-mail.outlook.com"`
	OutlookPort int    `envconfig:"OUTLOOK_SMTP_PORT" default:"587"`
	OutlookUser string `envconfig:"OUTLOOK_EMAIL"`
	OutlookPass string `envconfig:"OUTLOOK_PASSWORD"`
	GmailHost   string `envconfig:"GMAIL_SMTP_HOST" default:"smtp.gmail.com"`
	GmailPort   int    `envconfig:"GMAIL_SMTP_PORT" default:"587"`
	GmailUser   string `envconfig:"GMAIL_USERNAME"`
	GmailPass   string `envconfig:"GMAIL_PASSWORD"`

	StripeAPIKey          string `envconfig:"STRIPE_API_KEY"`
	StripeURL             string `envconfig:"STRIPE_URL" default:"https://api.stripe.com"`
	StripeWebhookSecret   string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	RazorpayKeyID         string `envconfig:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `envconfig:"RAZORPAY_KEY_SECRET"`
	RazorpayURL           string `envconfig:"RAZORPAY_URL" default:"https://api.razorpay.com"`
	RazorpayWebhookSecret string `envconfig:"RAZORPAY_WEBHOOK_SECRET"`

	ApolloAPIKey string `envconfig:"APOLLO_API_KEY"`
	ApolloURL    string `envconfig:"APOLLO_URL" default:"https://api.apollo.io/v1"`

	CalendlyLink string `envconfig:"CALENDLY_LINK" default:"https://calendly.com/leadpilot/intro"`

	FollowUpDays Days `envconfig:"FOLLOW_UP_DAYS" default:"3"`
	MaxFollowUps int  `envconfig:"MAX_FOLLOW_UPS" default:"3"`
}

// Days decodes a whole number of days from the environment into a Duration.
type Days time.Duration

func (d *Days) Decode(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*d = Days(time.Duration(n) * 24 * time.Hour)
	return nil
}

func (d Days) Duration() time.Duration { return time.Duration(d) }

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
