package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// ElevatedApprovalThresholdHUF is the gross amount in HUF above which
	// non-invoice documents require elevated approval.
	ElevatedApprovalThresholdHUF int64

	// ArchiveMaxAttempts bounds archive number probing per allocation.
	ArchiveMaxAttempts int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "docuflow-app")
	viper.SetDefault("ELEVATED_APPROVAL_THRESHOLD_HUF", int64(500000))
	viper.SetDefault("ARCHIVE_MAX_ATTEMPTS", 1000)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.ElevatedApprovalThresholdHUF = viper.GetInt64("ELEVATED_APPROVAL_THRESHOLD_HUF")
	if cfg.ElevatedApprovalThresholdHUF <= 0 {
		cfg.ElevatedApprovalThresholdHUF = 500000
		log.Printf("Warning: Invalid ELEVATED_APPROVAL_THRESHOLD_HUF. Defaulting to %d.\n", cfg.ElevatedApprovalThresholdHUF)
	}

	cfg.ArchiveMaxAttempts = viper.GetInt("ARCHIVE_MAX_ATTEMPTS")
	if cfg.ArchiveMaxAttempts <= 0 {
		cfg.ArchiveMaxAttempts = 1000
	}

	return cfg, nil
}
