// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProductionConfig holds all configuration for production environment
type ProductionConfig struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Security   SecurityConfig   `json:"security"`
	JWT        JWTConfig        `json:"jwt"`
	Sheets     SheetsConfig     `json:"sheets"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	Retention  RetentionConfig  `json:"retention"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Deployment DeploymentConfig `json:"deployment"`
	Admin      AdminConfig      `json:"admin"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryLog    bool          `json:"slow_query_log"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
}

type ServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
	BodyLimit         int           `json:"body_limit"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	ProxyHeader       string        `json:"proxy_header"`
	EnableCompression bool          `json:"enable_compression"`
	CompressionLevel  int           `json:"compression_level"`
}

type SecurityConfig struct {
	// TLS/HTTPS
	TLSEnabled    bool   `json:"tls_enabled"`
	TLSCertFile   string `json:"tls_cert_file"`
	TLSKeyFile    string `json:"tls_key_file"`
	TLSMinVersion string `json:"tls_min_version"`

	// CORS
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	CORSMaxAge       int      `json:"cors_max_age"`

	// Rate Limiting
	AuthRateLimit   int           `json:"auth_rate_limit"`   // requests per minute
	SearchRateLimit int           `json:"search_rate_limit"` // requests per minute
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per minute
	RateLimitWindow time.Duration `json:"rate_limit_window"`

	// Content Security
	CSPPolicy           string `json:"csp_policy"`
	XFrameOptions       string `json:"x_frame_options"`
	XContentTypeOptions string `json:"x_content_type_options"`
	ReferrerPolicy      string `json:"referrer_policy"`

	// Password & Auth
	BcryptCost int `json:"bcrypt_cost"`

	// Session Security
	SessionCookieSecure   bool          `json:"session_cookie_secure"`
	SessionCookieHTTPOnly bool          `json:"session_cookie_httponly"`
	SessionCookieSameSite string        `json:"session_cookie_samesite"`
	SessionTimeout        time.Duration `json:"session_timeout"`
}

type JWTConfig struct {
	SecretKey      string        `json:"secret_key"`
	AccessTokenTTL time.Duration `json:"access_token_ttl"`
	Issuer         string        `json:"issuer"`
	Audience       string        `json:"audience"`
	Algorithm      string        `json:"algorithm"`
}

// SheetsConfig names the spreadsheet sources the sync pipeline pulls from.
// Leaving the primary spreadsheet ID empty disables the scheduler entirely.
type SheetsConfig struct {
	APIKey               string        `json:"api_key"`
	SpreadsheetID        string        `json:"spreadsheet_id"`
	SheetRange           string        `json:"sheet_range"`
	PendingSpreadsheetID string        `json:"pending_spreadsheet_id"`
	PendingSheetRange    string        `json:"pending_sheet_range"`
	RequestTimeout       time.Duration `json:"request_timeout"`
}

type SchedulerConfig struct {
	SyncInterval time.Duration `json:"sync_interval"`
	InitialDelay time.Duration `json:"initial_delay"`
}

type RetentionConfig struct {
	SweepInterval time.Duration `json:"sweep_interval"`
	Days          int           `json:"days"`
}

type LoggingConfig struct {
	Level            string `json:"level"`  // debug, info, warn, error
	Format           string `json:"format"` // json, text
	Output           string `json:"output"` // stdout, file, both
	FilePath         string `json:"file_path"`
	MaxSize          int    `json:"max_size"` // MB
	MaxBackups       int    `json:"max_backups"`
	MaxAge           int    `json:"max_age"` // days
	Compress         bool   `json:"compress"`
	EnableCaller     bool   `json:"enable_caller"`
	EnableStacktrace bool   `json:"enable_stacktrace"`

	// Access Logs
	EnableAccessLog bool   `json:"enable_access_log"`
	AccessLogPath   string `json:"access_log_path"`
	AccessLogFormat string `json:"access_log_format"`
}

type MetricsConfig struct {
	Enabled          bool   `json:"enabled"`
	Port             int    `json:"port"`
	Path             string `json:"path"`
	EnablePrometheus bool   `json:"enable_prometheus"`
	CollectDBMetrics bool   `json:"collect_db_metrics"`
}

type CacheConfig struct {
	Enabled     bool          `json:"enabled"`
	Provider    string        `json:"provider"` // redis, memory
	RedisURL    string        `json:"redis_url"`
	RedisDB     int           `json:"redis_db"`
	RedisPrefix string        `json:"redis_prefix"`
	DefaultTTL  time.Duration `json:"default_ttl"`
}

type DeploymentConfig struct {
	Domain      string `json:"domain"`
	APIDomain   string `json:"api_domain"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	CommitHash  string `json:"commit_hash"`
	BuildTime   string `json:"build_time"`
}

// AdminConfig seeds the back-office login on first start
type AdminConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoadProductionConfig loads and validates configuration from environment variables
func LoadProductionConfig() (*ProductionConfig, error) {
	// Load environment variables from .env file
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "postgres"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryLog:    getEnvBool("DB_SLOW_QUERY_LOG", true),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
		},
		Server: ServerConfig{
			Host:              getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:              getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:         getEnvInt("SERVER_BODY_LIMIT", 16*1024*1024), // 16MB, spreadsheets included
			TrustedProxies:    getEnvStringSlice("SERVER_TRUSTED_PROXIES", []string{"127.0.0.1"}),
			ProxyHeader:       getEnvString("SERVER_PROXY_HEADER", "X-Real-IP"),
			EnableCompression: getEnvBool("SERVER_ENABLE_COMPRESSION", true),
			CompressionLevel:  getEnvInt("SERVER_COMPRESSION_LEVEL", 6),
		},
		Security: SecurityConfig{
			TLSEnabled:            getEnvBool("TLS_ENABLED", false),
			TLSCertFile:           getEnvString("TLS_CERT_FILE", ""),
			TLSKeyFile:            getEnvString("TLS_KEY_FILE", ""),
			TLSMinVersion:         getEnvString("TLS_MIN_VERSION", "1.2"),
			AllowedOrigins:        getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"https://ghanacargo.com", "https://www.ghanacargo.com", "https://admin.ghanacargo.com"}),
			AllowedMethods:        getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:        getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}),
			AllowCredentials:      getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			CORSMaxAge:            getEnvInt("CORS_MAX_AGE", 86400),
			AuthRateLimit:         getEnvInt("AUTH_RATE_LIMIT", 20),
			SearchRateLimit:       getEnvInt("SEARCH_RATE_LIMIT", 120),
			GlobalRateLimit:       getEnvInt("GLOBAL_RATE_LIMIT", 1000),
			RateLimitWindow:       getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			CSPPolicy:             getEnvString("CSP_POLICY", "default-src 'self'"),
			XFrameOptions:         getEnvString("X_FRAME_OPTIONS", "DENY"),
			XContentTypeOptions:   getEnvString("X_CONTENT_TYPE_OPTIONS", "nosniff"),
			ReferrerPolicy:        getEnvString("REFERRER_POLICY", "strict-origin-when-cross-origin"),
			BcryptCost:            getEnvInt("BCRYPT_COST", 12),
			SessionCookieSecure:   getEnvBool("SESSION_COOKIE_SECURE", true),
			SessionCookieHTTPOnly: getEnvBool("SESSION_COOKIE_HTTPONLY", true),
			SessionCookieSameSite: getEnvString("SESSION_COOKIE_SAMESITE", "Strict"),
			SessionTimeout:        getEnvDuration("SESSION_TIMEOUT", 24*time.Hour),
		},
		JWT: JWTConfig{
			SecretKey:      getEnvString("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
			Issuer:         getEnvString("JWT_ISSUER", "ghana-cargo-logistics"),
			Audience:       getEnvString("JWT_AUDIENCE", "ghana-cargo-admin"),
			Algorithm:      getEnvString("JWT_ALGORITHM", "HS256"),
		},
		Sheets: SheetsConfig{
			APIKey:               getEnvString("SHEETS_API_KEY", ""),
			SpreadsheetID:        getEnvString("SHEETS_SPREADSHEET_ID", ""),
			SheetRange:           getEnvString("SHEETS_RANGE", "A:Z"),
			PendingSpreadsheetID: getEnvString("SHEETS_PENDING_SPREADSHEET_ID", ""),
			PendingSheetRange:    getEnvString("SHEETS_PENDING_RANGE", "A:Z"),
			RequestTimeout:       getEnvDuration("SHEETS_REQUEST_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			SyncInterval: getEnvDuration("SYNC_INTERVAL", 15*time.Minute),
			InitialDelay: getEnvDuration("SYNC_INITIAL_DELAY", 5*time.Second),
		},
		Retention: RetentionConfig{
			SweepInterval: getEnvDuration("RETENTION_SWEEP_INTERVAL", 24*time.Hour),
			Days:          getEnvInt("RETENTION_DAYS", 90),
		},
		Logging: LoggingConfig{
			Level:            getEnvString("LOG_LEVEL", "info"),
			Format:           getEnvString("LOG_FORMAT", "json"),
			Output:           getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:         getEnvString("LOG_FILE_PATH", "/var/log/ghana-cargo/app.log"),
			MaxSize:          getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups:       getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:           getEnvInt("LOG_MAX_AGE", 30),
			Compress:         getEnvBool("LOG_COMPRESS", true),
			EnableCaller:     getEnvBool("LOG_ENABLE_CALLER", true),
			EnableStacktrace: getEnvBool("LOG_ENABLE_STACKTRACE", false),
			EnableAccessLog:  getEnvBool("LOG_ENABLE_ACCESS", true),
			AccessLogPath:    getEnvString("LOG_ACCESS_PATH", "/var/log/ghana-cargo/access.log"),
			AccessLogFormat:  getEnvString("LOG_ACCESS_FORMAT", "combined"),
		},
		Metrics: MetricsConfig{
			Enabled:          getEnvBool("METRICS_ENABLED", true),
			Port:             getEnvInt("METRICS_PORT", 9090),
			Path:             getEnvString("METRICS_PATH", "/metrics"),
			EnablePrometheus: getEnvBool("METRICS_ENABLE_PROMETHEUS", true),
			CollectDBMetrics: getEnvBool("METRICS_COLLECT_DB", true),
		},
		Cache: CacheConfig{
			Enabled:     getEnvBool("CACHE_ENABLED", false),
			Provider:    getEnvString("CACHE_PROVIDER", "redis"),
			RedisURL:    getEnvString("CACHE_REDIS_URL", "redis://localhost:6379"),
			RedisDB:     getEnvInt("CACHE_REDIS_DB", 0),
			RedisPrefix: getEnvString("CACHE_REDIS_PREFIX", "ghanacargo:"),
			DefaultTTL:  getEnvDuration("CACHE_DEFAULT_TTL", 1*time.Minute),
		},
		Deployment: DeploymentConfig{
			Domain:      getEnvString("DOMAIN", "ghanacargo.com"),
			APIDomain:   getEnvString("API_DOMAIN", "api.ghanacargo.com"),
			Environment: getEnvString("APP_ENV", "production"),
			Version:     getEnvString("VERSION", "1.0.0"),
			CommitHash:  getEnvString("COMMIT_HASH", "unknown"),
			BuildTime:   getEnvString("BUILD_TIME", "unknown"),
		},
		Admin: AdminConfig{
			Username: getEnvString("ADMIN_USERNAME", "admin"),
			Password: getEnvString("ADMIN_PASSWORD", ""),
		},
	}

	// Validate the loaded configuration
	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SyncConfigured reports whether the primary spreadsheet source is usable
func (c *SheetsConfig) SyncConfigured() bool {
	return c.APIKey != "" && c.SpreadsheetID != ""
}

// loadEnvFile loads environment variables from .env file if it exists
func loadEnvFile() error {
	envFile := ".env"

	// Check if .env file exists
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// .env file doesn't exist, continue with environment variables
		return nil
	}

	// Open .env file
	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	// Read file line by line
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse key=value pairs
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])

				// Remove quotes if present
				if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
					(strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`)) {
					value = value[1 : len(value)-1]
				}

				// Set environment variable if not already set
				if os.Getenv(key) == "" {
					os.Setenv(key, value)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// ValidateProductionConfig validates the production configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errors []string

	// Validate database configuration
	if cfg.Database.Host == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		errors = append(errors, "DB_PORT must be between 1 and 65535")
	}
	if cfg.Database.Name == "" {
		errors = append(errors, "DB_NAME is required")
	}
	if cfg.Database.User == "" {
		errors = append(errors, "DB_USER is required")
	}
	if cfg.Database.Password == "" {
		errors = append(errors, "DB_PASSWORD is required")
	}

	// Validate JWT configuration
	if cfg.JWT.SecretKey == "" {
		errors = append(errors, "JWT_SECRET_KEY is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		errors = append(errors, "JWT_SECRET_KEY must be at least 32 characters long")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		errors = append(errors, "JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.JWT.Issuer == "" {
		errors = append(errors, "JWT_ISSUER is required")
	}
	if cfg.JWT.Audience == "" {
		errors = append(errors, "JWT_AUDIENCE is required")
	}

	// Validate server configuration
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errors = append(errors, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 {
		errors = append(errors, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		errors = append(errors, "SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.IdleTimeout <= 0 {
		errors = append(errors, "SERVER_IDLE_TIMEOUT must be positive")
	}

	// Validate security configuration
	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		errors = append(errors, "BCRYPT_COST must be between 10 and 14")
	}

	// Validate TLS configuration if enabled
	if cfg.Security.TLSEnabled {
		if cfg.Security.TLSCertFile == "" {
			errors = append(errors, "TLS_CERT_FILE is required when TLS is enabled")
		}
		if cfg.Security.TLSKeyFile == "" {
			errors = append(errors, "TLS_KEY_FILE is required when TLS is enabled")
		}
	}

	// Validate sheet sync configuration: an API key without a spreadsheet
	// (or the reverse) is almost certainly a deployment mistake
	if cfg.Sheets.APIKey != "" && cfg.Sheets.SpreadsheetID == "" {
		errors = append(errors, "SHEETS_SPREADSHEET_ID is required when SHEETS_API_KEY is set")
	}
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.APIKey == "" {
		errors = append(errors, "SHEETS_API_KEY is required when SHEETS_SPREADSHEET_ID is set")
	}
	if cfg.Scheduler.SyncInterval < time.Minute {
		errors = append(errors, "SYNC_INTERVAL must be at least 1 minute")
	}
	if cfg.Retention.Days < 1 {
		errors = append(errors, "RETENTION_DAYS must be positive")
	}

	// Validate logging configuration
	if cfg.Logging.Level != "" {
		validLevels := []string{"debug", "info", "warn", "error"}
		valid := false
		for _, level := range validLevels {
			if cfg.Logging.Level == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %v", validLevels))
		}
	}

	// Validate cache configuration if enabled
	if cfg.Cache.Enabled {
		if cfg.Cache.Provider == "redis" && cfg.Cache.RedisURL == "" {
			errors = append(errors, "CACHE_REDIS_URL is required when cache is enabled with redis provider")
		}
	}

	// Validate admin seed configuration
	if cfg.Admin.Password != "" && len(cfg.Admin.Password) < 8 {
		errors = append(errors, "ADMIN_PASSWORD must be at least 8 characters long")
	}

	// Return validation errors if any
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
