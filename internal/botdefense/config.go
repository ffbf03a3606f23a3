package botdefense

import (
	"os"
	"strings"
	"time"
)

// holds bot defense configuration
type Config struct {
	// whether bot defense is active
	Enabled bool

	// max requests per window before triggering
	RateLimit int

	// time window for rate limiting
	RateLimitWindow time.Duration

	// how long an IP stays trapped
	TrapTTL time.Duration

	// how long to slow-drip responses
	TarpitDuration time.Duration

	// delay between each chunk sent during tarpitting
	TarpitChunkDelay time.Duration

	// paths that only bots would access
	HoneypotPaths []string

	// paths that bypass bot defense (health checks, etc.)
	ExemptPaths []string
}

// returns sensible defaults; BOT_DEFENSE=off disables the whole layer
func DefaultConfig() *Config {
	return &Config{
		Enabled:          os.Getenv("BOT_DEFENSE") != "off",
		RateLimit:        200,
		RateLimitWindow:  time.Minute,
		TrapTTL:          24 * time.Hour,
		TarpitDuration:   60 * time.Second,
		TarpitChunkDelay: time.Second,
		HoneypotPaths: []string{
			// wordpress
			"/wp-admin",
			"/wp-login.php",
			"/wp-content",
			"/xmlrpc.php",

			// config/secrets
			"/.env",
			"/.git",
			"/.git/config",
			"/config.php",
			"/config.json",
			"/secrets.json",
			"/.aws/credentials",

			// admin panels
			"/admin",
			"/admin.php",
			"/administrator",
			"/phpmyadmin",
			"/cpanel",

			// backups
			"/backup",
			"/backup.zip",
			"/backup.sql",
			"/db.sql",

			// debug/internal
			"/debug",
			"/server-status",
			"/.htaccess",

			// api probing
			"/api/internal",
			"/api/admin",
			"/api/debug",
			"/api/v1/internal",
			"/api/v1/images/export-all",
			"/api/v1/users/dump",
		},
		ExemptPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/api/v1/health",
			"/api/v1/ping",
		},
	}
}

// checks if a path is a honeypot (prefix match)
func (c *Config) IsHoneypotPath(path string) bool {
	for _, hp := range c.HoneypotPaths {
		if path == hp || strings.HasPrefix(path, hp+"/") {
			return true
		}
	}

	return false
}

// checks if a path bypasses bot defense
func (c *Config) IsExemptPath(path string) bool {
	for _, ep := range c.ExemptPaths {
		if path == ep || strings.HasPrefix(path, ep+"/") {
			return true
		}
	}

	return false
}
