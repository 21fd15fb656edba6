package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Insecure fallbacks kept for local development only. Deployments must set
// JWT_SECRET and JWT_REFRESH_SECRET.
const (
	DefaultAccessSecret  = "your-super-secret-jwt-key-change-in-production"
	DefaultRefreshSecret = "your-super-secret-refresh-key-change-in-production"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// JWT
	JWTAccessSecret  string
	JWTRefreshSecret string

	// Flat JSON persistence
	DataDir    string
	UsersFile  string
	LoginsFile string

	// CORS
	CORSAllowedOrigins string // comma-separated, empty allows any origin

	// Redis (rate limiting). Empty address disables it.
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimitEnabled bool

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunSender  string
	MailgunAPIBase string // empty keeps the default (US) endpoint

	// Elasticsearch audit mirror. Empty addresses disable it.
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESLoginsIndex      string

	// Company/Links for emails
	CompanyName string
	SupportURL  string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "ipdr-auth-server"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3001"),
		GinMode: getenv("GIN_MODE", "release"),

		JWTAccessSecret:  getenv("JWT_SECRET", DefaultAccessSecret),
		JWTRefreshSecret: getenv("JWT_REFRESH_SECRET", DefaultRefreshSecret),

		DataDir:    getenv("DATA_DIR", "data"),
		UsersFile:  getenv("USERS_FILE", "users.json"),
		LoginsFile: getenv("LOGINS_FILE", "logins.json"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getint("REDIS_DB", 0),
		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", true),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain:  getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:  getenv("MAILGUN_API_KEY", ""),
		MailgunSender:  getenv("MAILGUN_SENDER", ""),
		MailgunAPIBase: getenv("MAILGUN_API_BASE", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESLoginsIndex:      getenv("ES_LOGINS_INDEX", "login-logs"),

		CompanyName: getenv("COMPANY_NAME", "IPDR Analysis"),
		SupportURL:  getenv("SUPPORT_URL", ""),

		// Lockout notifications are opt-in
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// Access log on by default
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", true),
	}
}

// UsersPath returns the location of the user collection document
func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir, c.UsersFile)
}

// LoginsPath returns the location of the login-log document
func (c *Config) LoginsPath() string {
	return filepath.Join(c.DataDir, c.LoginsFile)
}

// UsesDefaultSecrets reports whether either JWT secret is still the built-in fallback
func (c *Config) UsesDefaultSecrets() bool {
	return c.JWTAccessSecret == DefaultAccessSecret || c.JWTRefreshSecret == DefaultRefreshSecret
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitCSV(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitCSV(c.ElasticsearchAddrs)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
