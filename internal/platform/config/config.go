package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Ledger policy
	ContributionServiceCode string
	GracePeriodDays         int
	FirstDueWindowDays      int

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CONTRIBUTION_SERVICE_CODE", "CONTRIBUTION")
	viper.SetDefault("GRACE_PERIOD_DAYS", 5)
	viper.SetDefault("FIRST_DUE_WINDOW_DAYS", 30)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ContributionServiceCode = viper.GetString("CONTRIBUTION_SERVICE_CODE")
	if cfg.ContributionServiceCode == "" {
		cfg.ContributionServiceCode = "CONTRIBUTION"
		log.Printf("Warning: CONTRIBUTION_SERVICE_CODE not set. Defaulting to %s.\n", cfg.ContributionServiceCode)
	}

	cfg.GracePeriodDays = viper.GetInt("GRACE_PERIOD_DAYS")
	if cfg.GracePeriodDays < 0 {
		log.Printf("Warning: GRACE_PERIOD_DAYS must not be negative ('%d'). Defaulting to 5.\n", cfg.GracePeriodDays)
		cfg.GracePeriodDays = 5
	}

	cfg.FirstDueWindowDays = viper.GetInt("FIRST_DUE_WINDOW_DAYS")
	if cfg.FirstDueWindowDays <= 0 {
		log.Printf("Warning: FIRST_DUE_WINDOW_DAYS must be positive ('%d'). Defaulting to 30.\n", cfg.FirstDueWindowDays)
		cfg.FirstDueWindowDays = 30
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	return cfg, nil
}
