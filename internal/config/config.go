package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from the environment,
// optionally seeded from a .env file in the working directory. The movie
// API, SMTP, and object-storage integrations are optional; the features
// they back degrade when left unset.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	BcryptCost   int
	CookieSecure bool
	LogLevel     string

	MovieAPIKey     string
	MovieAPIBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailSender  string
	AdminEmail   string

	StorageURL        string
	StorageServiceKey string
	StorageBucket     string
	UploadDir         string
}

// Load reads the configuration from the environment. A missing .env file
// is not an error; real deployments set the environment directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              envOrDefault("PORT", "8080"),
		DatabasePath:      envOrDefault("DATABASE_PATH", "cinevibes.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CookieSecure:      os.Getenv("COOKIE_SECURE") == "true",
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		MovieAPIKey:       os.Getenv("OMDB_API_KEY"),
		MovieAPIBaseURL:   envOrDefault("OMDB_API_URL", "https://www.omdbapi.com/"),
		SMTPHost:          envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		EmailSender:       os.Getenv("EMAIL_SENDER"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		StorageURL:        os.Getenv("STORAGE_URL"),
		StorageServiceKey: os.Getenv("STORAGE_SERVICE_KEY"),
		StorageBucket:     envOrDefault("STORAGE_BUCKET", "profile-pics"),
		UploadDir:         envOrDefault("UPLOAD_DIR", "uploads"),
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be set to a value of at least 32 bytes")
	}

	cost, err := intEnv("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 4 || cost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
	}
	cfg.BcryptCost = cost

	port, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	cfg.SMTPPort = port

	// The SMTP login usually matches the sender address.
	if cfg.SMTPUsername == "" {
		cfg.SMTPUsername = cfg.EmailSender
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP is configured well enough to send.
func (c *Config) MailEnabled() bool {
	return c.EmailSender != "" && c.SMTPPassword != ""
}

// BucketEnabled reports whether the external object-storage bucket is
// configured; profile pictures fall back to local disk otherwise.
func (c *Config) BucketEnabled() bool {
	return c.StorageURL != "" && c.StorageServiceKey != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
