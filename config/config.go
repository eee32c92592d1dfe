// config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment
type Config struct {
	Port    string `env:"PORT,default=5000"`
	AppEnv  string `env:"APP_ENV,default=development"`
	LogFile string `env:"LOG_FILE"`

	TokenSecret string        `env:"TOKEN,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,default=1h"`

	StoreDriver string        `env:"STORE_DRIVER,default=mongo"`
	MongoURI    string        `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDB     string        `env:"MONGO_DB,default=bicycle_odyssey"`
	DBTimeout   time.Duration `env:"DB_TIMEOUT,default=5s"`

	StripeKey string `env:"SECRET_STRIP"`

	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	EmailSender    string `env:"EMAIL_SENDER,default=no-reply@bicycle-odyssey.com"`

	// AllowUnfilteredListing keeps GET /ordered and GET /profiles returning
	// the whole collection when no email is given.
	AllowUnfilteredListing bool `env:"ALLOW_UNFILTERED_LISTING,default=true"`
}

// Load reads an optional .env file and decodes the environment into a Config
func Load() (*Config, bool, error) {
	// A missing .env file is fine, the process environment is used as is
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, dotenv, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, dotenv, err
	}
	return &cfg, dotenv, nil
}

// Validate checks values envdecode cannot express as tags
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TokenSecret == "" {
		return errors.New("TOKEN must be set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.DBTimeout <= 0 {
		return errors.New("DB_TIMEOUT must be positive")
	}
	return nil
}
