package config

import "os"

// Config holds everything the API needs from the environment.
// Loaded once in main after godotenv has populated the process env.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	AnthropicAPIKey string
	AnthropicModel  string

	JWTSecret []byte
	Passcode  string
}

func Load() *Config {
	return &Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     getenv("DATABASE_URL", "host=localhost user=postgres password=password dbname=jobtrail port=5432 sslmode=disable"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		JWTSecret:       []byte(getenv("JWT_SECRET", "fallback-secret-change-in-production")),
		Passcode:        getenv("PASSCODE", "8125380"),
	}
}

// SecureCookies reports whether session cookies should carry the Secure
// flag. Local development runs over plain http, so only production gets it.
func (c *Config) SecureCookies() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
