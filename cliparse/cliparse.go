package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string
	SessionTTL    time.Duration
	Timezone      string
	AuthRateLimit float64
	AuthRateBurst int
	BcryptCost    int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A missing .env is fine, real deployments use the environment directly
	_ = godotenv.Load()

	fs := flag.NewFlagSet("streakbreak", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token HMAC secret (prefer env)")

	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime")
	fs.StringVar(&cfg.Timezone, "tz", "", "IANA time zone used to derive calendar days")
	fs.Float64Var(&cfg.AuthRateLimit, "auth-rate", 0, "Auth requests per second per client")
	fs.IntVar(&cfg.AuthRateBurst, "auth-burst", 0, "Auth request burst per client")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 0, "bcrypt cost for password hashes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = 30 * 24 * time.Hour
		}
	}
	if cfg.SessionTTL < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	if cfg.Timezone == "" {
		cfg.Timezone = os.Getenv("LEDGER_TIMEZONE")
		if cfg.Timezone == "" {
			cfg.Timezone = "UTC"
		}
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, errors.New("invalid time zone: " + cfg.Timezone)
	}

	if cfg.AuthRateLimit == 0 {
		if s := os.Getenv("AUTH_RATE_LIMIT"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid AUTH_RATE_LIMIT env variable")
			}
			cfg.AuthRateLimit = v
		} else {
			cfg.AuthRateLimit = 5
		}
	}
	if cfg.AuthRateBurst == 0 {
		if s := os.Getenv("AUTH_RATE_BURST"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid AUTH_RATE_BURST env variable")
			}
			cfg.AuthRateBurst = v
		} else {
			cfg.AuthRateBurst = 30
		}
	}

	if cfg.BcryptCost == 0 {
		if s := os.Getenv("BCRYPT_COST"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid BCRYPT_COST env variable")
			}
			cfg.BcryptCost = v
		} else {
			cfg.BcryptCost = bcrypt.DefaultCost
		}
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, errors.New("bcrypt cost out of range")
	}

	return cfg, nil
}

// Location returns the time zone calendar days are computed in.
// ParseFlags has already validated the name.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
