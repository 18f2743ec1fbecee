package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath       = "./dev.db"
	defaultPort         = "8080"
	defaultEnv          = "development"
	defaultStoreBackend = "sqlite"
	defaultSMTPPort     = "587"
	defaultMailFrom     = "estimate@paint-pro.io"
	defaultMailFromName = "Paint Pro Estimator"
	defaultGeocoderURL  = "https://nominatim.openstreetmap.org/search"
	defaultRegion       = "washington"
	defaultUserAgent    = "PaintPro Web Application"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env      string
	Port     string
	DBPath   string
	LogLevel string

	StoreBackend     string
	DynamoDBTable    string
	DynamoDBEndpoint string
	AWSRegion        string

	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	MailFrom             string
	MailFromName         string
	MailSandboxRecipient string

	GeocoderURL       string
	GeocoderRegion    string
	GeocoderUserAgent string
}

// Load reads .env from the working directory (if present) and then the environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom loads dotenv values from path before reading the environment.
// Variables already present in the environment are never overwritten.
// A missing file is not an error; production injects real variables.
func LoadFrom(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Env:      getenv("APP_ENV", defaultEnv),
		Port:     getenv("PORT", defaultPort),
		DBPath:   getenv("DB_PATH", defaultDBPath),
		LogLevel: os.Getenv("LOG_LEVEL"),

		StoreBackend:     strings.ToLower(getenv("STORE_BACKEND", defaultStoreBackend)),
		DynamoDBTable:    os.Getenv("DYNAMODB_TABLE"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		AWSRegion:        os.Getenv("AWS_REGION"),

		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getenv("SMTP_PORT", defaultSMTPPort),
		SMTPUsername:         os.Getenv("SMTP_USERNAME"),
		SMTPPassword:         os.Getenv("SMTP_PASSWORD"),
		MailFrom:             getenv("MAIL_FROM", defaultMailFrom),
		MailFromName:         getenv("MAIL_FROM_NAME", defaultMailFromName),
		MailSandboxRecipient: os.Getenv("MAIL_SANDBOX_RECIPIENT"),

		GeocoderURL:       getenv("GEOCODER_URL", defaultGeocoderURL),
		GeocoderRegion:    strings.ToLower(getenv("GEOCODER_REGION", defaultRegion)),
		GeocoderUserAgent: getenv("GEOCODER_USER_AGENT", defaultUserAgent),
	}

	return cfg, nil
}

// IsDev reports whether the server should migrate and seed its own database on boot.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

// Warnings lists missing settings the server can run without but probably should not.
func (c Config) Warnings() []string {
	var warnings []string
	if c.SMTPHost == "" {
		warnings = append(warnings, "SMTP_HOST is not set; estimate emails will not be delivered")
	}
	if c.StoreBackend == "dynamodb" && c.DynamoDBTable == "" {
		warnings = append(warnings, "DYNAMODB_TABLE is not set; falling back to the default table name")
	}
	if c.MailSandboxRecipient != "" {
		warnings = append(warnings, "MAIL_SANDBOX_RECIPIENT is set; every estimate email is redirected")
	}
	return warnings
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
