package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"ADDR,default=:8080"`

	Database struct {
		User     string `env:"DB_USER,default=root"`
		Password string `env:"DB_PASSWORD,required"`
		Host     string `env:"DB_HOST,default=127.0.0.1:3306"`
		Name     string `env:"DB_NAME,default=lingua_link"`
	}

	JWTSecret string `env:"JWT_SECRET,required"`

	Stream struct {
		APIKey    string `env:"STREAM_API_KEY,required"`
		APISecret string `env:"STREAM_API_SECRET,required"`
		BaseURL   string `env:"STREAM_BASE_URL,default=https://chat.stream-io-api.com"`
	}
}

// Load reads .env if present and decodes the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
