package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBDatabase      string
	DBAdminUser     string
	DBAdminPassword string
	DBMaxConns      int32
	DBMinConns      int32

	AccessTokenSecret  []byte
	CORSAllowedOrigins []string

	// Per client limit on write routes; zero disables it.
	WriteRateLimit int
	WriteRateBurst int

	SeqURL   string
	LogLevel string
}

// Load reads the optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	cfg := &Config{
		DBAdminUser:     os.Getenv("DB_ADMIN_USER"),
		DBAdminPassword: os.Getenv("DB_ADMIN_PASSWORD"),
		SeqURL:          os.Getenv("SEQ_URL"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"DB_HOST", &cfg.DBHost},
		{"DB_PORT", &cfg.DBPort},
		{"DB_USERNAME", &cfg.DBUser},
		{"DB_PASSWORD", &cfg.DBPassword},
		{"DB_DATABASE", &cfg.DBDatabase},
	}
	for _, r := range required {
		v := os.Getenv(r.name)
		if v == "" {
			return nil, fmt.Errorf("%s environment variable is required", r.name)
		}
		*r.dst = v
	}

	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	maxConns, err := getInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}
	if minConns > maxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", minConns, maxConns)
	}
	cfg.DBMaxConns = int32(maxConns)
	cfg.DBMinConns = int32(minConns)

	if cfg.WriteRateLimit, err = getInt("WRITE_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.WriteRateBurst, err = getInt("WRITE_RATE_BURST", 20); err != nil {
		return nil, err
	}

	if secret := os.Getenv("ACCESS_TOKEN_SECRET"); secret != "" {
		cfg.AccessTokenSecret = []byte(secret)
	}

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// DSN builds the application connection string. Credentials are URL
// encoded so passwords with special characters survive.
func (c *Config) DSN() string {
	return buildDSN(c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBDatabase)
}

// AdminDSN points at the maintenance database with the admin credentials.
// It returns false when no admin user is configured.
func (c *Config) AdminDSN() (string, bool) {
	if c.DBAdminUser == "" {
		return "", false
	}
	return buildDSN(c.DBAdminUser, c.DBAdminPassword, c.DBHost, c.DBPort, "postgres"), true
}

// RedactedDSN is safe to log.
func (c *Config) RedactedDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s", c.DBUser, c.DBHost, c.DBPort, c.DBDatabase)
}

// AuthEnabled reports whether write routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return len(c.AccessTokenSecret) > 0
}

func buildDSN(user, password, host, port, database string) string {
	userInfo := url.UserPassword(user, password)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		host,
		port,
		url.PathEscape(database),
	)
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getInt(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return n, nil
}
