package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	App struct {
		BaseURL            string `yaml:"base_url"` // frontend origin used in links
		FirstAdminEmail    string `yaml:"first_admin_email"`
		FirstAdminPassword string `yaml:"first_admin_password"`
	} `yaml:"app"`

	Email struct {
		SMTPHost      string `yaml:"smtp_host"`
		SMTPPort      int    `yaml:"smtp_port"`
		SMTPUsername  string `yaml:"smtp_user"`
		SMTPPassword  string `yaml:"smtp_password"`
		FromEmail     string `yaml:"from_email"`
		FromName      string `yaml:"from_name"`
		TemplatesDir  string `yaml:"templates_dir"`
		InboundDomain string `yaml:"inbound_domain"` // forwarding addresses live here
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"email"`

	JWT struct {
		Secret         string `yaml:"secret"`
		TTL            int    `yaml:"ttl"`              // minutes
		RefreshTTLDays int    `yaml:"refresh_ttl_days"` // days
		Issuer         string `yaml:"issuer"`
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // local only
		BaseURL    string `yaml:"base_url"`    // public URL prefix
		Bucket     string `yaml:"bucket"`      // s3/r2
		Region     string `yaml:"region"`      // s3
		AccessKey  string `yaml:"access_key"`  // s3/r2
		SecretKey  string `yaml:"secret_key"`  // s3/r2
		Endpoint   string `yaml:"endpoint"`    // r2 or custom s3
		UseSSL     bool   `yaml:"use_ssl"`     // s3/r2
		PublicRead bool   `yaml:"public_read"` // object ACL
	} `yaml:"storage"`

	Upload struct {
		MaxImageSize int64 `yaml:"max_image_size"`
		MaxPDFSize   int64 `yaml:"max_pdf_size"`
		MaxVideoSize int64 `yaml:"max_video_size"`
		ImageQuality int   `yaml:"image_quality"`
	} `yaml:"upload"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	RabbitMQ struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"rabbitmq"`

	Stripe struct {
		SecretKey           string `yaml:"secret_key"`
		WebhookSecret       string `yaml:"webhook_secret"`
		PremiumMonthlyPrice string `yaml:"premium_monthly_price"` // Stripe price id
		PremiumAnnualPrice  string `yaml:"premium_annual_price"`
		SuccessURL          string `yaml:"success_url"`
		CancelURL           string `yaml:"cancel_url"`
	} `yaml:"stripe"`

	Google struct {
		CredentialsFile string `yaml:"credentials_file"`
		CredentialsJSON string `yaml:"credentials_json"`
	} `yaml:"google"`

	Workers struct {
		Enabled                 bool `yaml:"enabled"`
		ReminderIntervalMin     int  `yaml:"reminder_interval_min"`
		SubscriptionIntervalMin int  `yaml:"subscription_interval_min"`
	} `yaml:"workers"`

	RateLimit struct {
		Requests      int `yaml:"requests"`
		WindowSeconds int `yaml:"window_seconds"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LoadConfig fills AppConfig from .env, CONFIG_PATH (default config/config.yaml)
// and environment overrides. A missing YAML file is not an error.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}
	AppConfig = cfg
}

// Load reads one YAML file (if present), then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			log.Printf("config file %s not found, using environment only", path)
		default:
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret (JWT_SECRET) is required")
	}
	return &cfg, nil
}

// Default returns a config suitable for tests and local runs.
func Default() *Config {
	var cfg Config
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "test-secret"
	cfg.Email.InboundDomain = "inbound.auditionhub.test"
	cfg.App.BaseURL = "http://localhost:3000"
	cfg.applyDefaults()
	return &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "test"
}

func (c *Config) applyEnv() {
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")
	setString(&c.Server.Env, "SERVER_ENV")
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_URL")
	setString(&c.App.BaseURL, "APP_BASE_URL")
	setString(&c.App.FirstAdminEmail, "FIRST_ADMIN_EMAIL")
	setString(&c.App.FirstAdminPassword, "FIRST_ADMIN_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setInt(&c.JWT.TTL, "JWT_TTL")
	setString(&c.Email.SMTPHost, "SMTP_HOST")
	setInt(&c.Email.SMTPPort, "SMTP_PORT")
	setString(&c.Email.SMTPUsername, "SMTP_USER")
	setString(&c.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.Email.FromEmail, "EMAIL_FROM")
	setString(&c.Email.InboundDomain, "EMAIL_INBOUND_DOMAIN")
	setString(&c.Email.WebhookSecret, "EMAIL_WEBHOOK_SECRET")
	setString(&c.Storage.Type, "STORAGE_TYPE")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&c.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&c.Stripe.PremiumMonthlyPrice, "STRIPE_PRICE_PREMIUM_MONTHLY")
	setString(&c.Stripe.PremiumAnnualPrice, "STRIPE_PRICE_PREMIUM_ANNUAL")
	setString(&c.Google.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setString(&c.Google.CredentialsJSON, "GOOGLE_CREDENTIALS_JSON")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("WORKERS_ENABLED"); v != "" {
		c.Workers.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 60
	}
	if c.JWT.RefreshTTLDays == 0 {
		c.JWT.RefreshTTLDays = 30
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "auditionhub"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Audition Hub"
	}
	if c.Email.InboundDomain == "" {
		c.Email.InboundDomain = "inbound.auditionhub.app"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = "./uploads"
	}
	if c.Storage.BaseURL == "" && c.Storage.Type == "local" {
		c.Storage.BaseURL = "/api/v1/files"
	}
	if c.Upload.MaxImageSize == 0 {
		c.Upload.MaxImageSize = 4 << 20
	}
	if c.Upload.MaxPDFSize == 0 {
		c.Upload.MaxPDFSize = 8 << 20
	}
	if c.Upload.MaxVideoSize == 0 {
		c.Upload.MaxVideoSize = 512 << 20
	}
	if c.Upload.ImageQuality == 0 {
		c.Upload.ImageQuality = 85
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "audition.events"
	}
	if c.Workers.ReminderIntervalMin == 0 {
		c.Workers.ReminderIntervalMin = 15
	}
	if c.Workers.SubscriptionIntervalMin == 0 {
		c.Workers.SubscriptionIntervalMin = 60
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 10
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.App.BaseURL == "" {
		c.App.BaseURL = "http://localhost:3000"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{c.App.BaseURL}
	}
	if c.Stripe.SuccessURL == "" {
		c.Stripe.SuccessURL = c.App.BaseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"
	}
	if c.Stripe.CancelURL == "" {
		c.Stripe.CancelURL = c.App.BaseURL + "/payment/canceled"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
