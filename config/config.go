package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds every recognized environment option. Secrets are required so a
// misconfigured deployment fails at startup instead of at the first request.
type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	MongoURI string `env:"MONGODB_URI,required"`
	DBName   string `env:"MONGODB_DB" envDefault:"taskit_db"`

	CORSURL1 string `env:"CORS_URL1" envDefault:"http://localhost:5173"`
	CORSURL2 string `env:"CORS_URL2" envDefault:"http://localhost:3000"`

	AuthSecret string        `env:"AUTH_SECRET,required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"3h"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID,required"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET,required"`

	GCSBucket      string `env:"GCS_BUCKET" envDefault:"taskit-product-images"`
	GCSCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
