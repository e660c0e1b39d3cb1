package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
	Tax    TaxConfig
	Batch  BatchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TaxConfig holds tax settings.
type TaxConfig struct {
	// StandardRate is the GST rate as a decimal string, e.g. "0.10".
	StandardRate string `mapstructure:"standard_rate"`
}

// Rate parses the standard rate, falling back to 10% on a bad value.
func (t *TaxConfig) Rate() decimal.Decimal {
	d, err := decimal.NewFromString(t.StandardRate)
	if err != nil || d.IsNegative() {
		return decimal.New(1, -1)
	}
	return d
}

// BatchConfig holds batch-driver settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// Load reads configuration from environment variables with the INVREC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Tax defaults
	v.SetDefault("tax.standard_rate", "0.10")

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "INVREC_SERVER_PORT",
		"server.read_timeout":  "INVREC_SERVER_READ_TIMEOUT",
		"server.write_timeout": "INVREC_SERVER_WRITE_TIMEOUT",
		"server.environment":   "INVREC_SERVER_ENVIRONMENT",
		"log.level":            "INVREC_LOG_LEVEL",
		"log.format":           "INVREC_LOG_FORMAT",
		"cors.allowed_origins": "INVREC_CORS_ALLOWED_ORIGINS",
		"tax.standard_rate":    "INVREC_TAX_STANDARD_RATE",
		"batch.concurrency":    "INVREC_BATCH_CONCURRENCY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVREC_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVREC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Tax = TaxConfig{
		StandardRate: v.GetString("tax.standard_rate"),
	}
	if _, err := decimal.NewFromString(cfg.Tax.StandardRate); err != nil {
		return nil, fmt.Errorf("invalid tax.standard_rate %q: %w", cfg.Tax.StandardRate, err)
	}

	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
	}

	return cfg, nil
}
