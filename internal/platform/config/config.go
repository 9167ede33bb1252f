package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	MigrationsURL string

	JWTSecret         string
	JWTExpiryDuration time.Duration

	CORSAllowedOrigins []string
	RateLimit          string // ulule format, e.g. "100-M"

	// Accounting bounds
	BalanceTolerance    decimal.Decimal
	MaxLineAmount       decimal.Decimal
	MaxEntryLines       int
	VATCollectedPrefix  string
	VATDeductiblePrefix string

	AccountCacheTTL     time.Duration
	UseBalanceProcedure bool
}

// Limits returns the entry and reconciliation bounds.
func (c *Config) Limits() accounting.Limits {
	return accounting.Limits{
		Tolerance: c.BalanceTolerance,
		MaxAmount: c.MaxLineAmount,
		MaxLines:  c.MaxEntryLines,
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("BALANCE_TOLERANCE", accounting.DefaultTolerance.String())
	v.SetDefault("MAX_LINE_AMOUNT", accounting.DefaultMaxAmount.String())
	v.SetDefault("MAX_ENTRY_LINES", accounting.DefaultMaxLines)
	v.SetDefault("VAT_COLLECTED_PREFIX", accounting.DefaultCollectedPrefix)
	v.SetDefault("VAT_DEDUCTIBLE_PREFIX", accounting.DefaultDeductiblePrefix)
	v.SetDefault("ACCOUNT_CACHE_TTL", "10m")
	v.SetDefault("USE_BALANCE_PROCEDURE", false)

	// Environment variables override .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		MigrationsURL:       v.GetString("MIGRATIONS_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		MaxEntryLines:       v.GetInt("MAX_ENTRY_LINES"),
		VATCollectedPrefix:  v.GetString("VAT_COLLECTED_PREFIX"),
		VATDeductiblePrefix: v.GetString("VAT_DEDUCTIBLE_PREFIX"),
		UseBalanceProcedure: v.GetBool("USE_BALANCE_PROCEDURE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.AccountCacheTTL, err = parseDuration(v, "ACCOUNT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BalanceTolerance, err = parseDecimal(v, "BALANCE_TOLERANCE"); err != nil {
		return nil, err
	}
	if cfg.MaxLineAmount, err = parseDecimal(v, "MAX_LINE_AMOUNT"); err != nil {
		return nil, err
	}

	if cfg.BalanceTolerance.IsNegative() {
		return nil, fmt.Errorf("BALANCE_TOLERANCE must not be negative, got %s", cfg.BalanceTolerance)
	}
	if !cfg.MaxLineAmount.IsPositive() {
		return nil, fmt.Errorf("MAX_LINE_AMOUNT must be positive, got %s", cfg.MaxLineAmount)
	}
	if cfg.MaxEntryLines < 2 {
		return nil, fmt.Errorf("MAX_ENTRY_LINES must be at least 2, got %d", cfg.MaxEntryLines)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		log.Printf("Warning: %s not set. Defaulting to %s.\n", key, fallback)
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func parseDecimal(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
