package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	JWTSecret    string
	SnapshotPath string
	MongoDBURI   string
	CORSOrigins  []string

	// Spot prices per product type, used to render buy/sell quotes. The real
	// feed is an external collaborator; these are the fallback values.
	SpotPrices map[string]float64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnvWithDefault("PORT", "8080"),
		Environment:  getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SnapshotPath: getEnvWithDefault("SNAPSHOT_PATH", "data/state.json"),
		MongoDBURI:   os.Getenv("MONGODB_URI"),
		CORSOrigins:  strings.Split(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000"), ","),
		SpotPrices: map[string]float64{
			"gold":     getEnvFloat("SPOT_PRICE_GOLD", 2400),
			"silver":   getEnvFloat("SPOT_PRICE_SILVER", 29),
			"platinum": getEnvFloat("SPOT_PRICE_PLATINUM", 960),
		},
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UseMongo reports whether the snapshot should mirror to the remote document
// store instead of local disk.
func (c *Config) UseMongo() bool {
	return c.MongoDBURI != ""
}
