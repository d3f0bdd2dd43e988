package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		CORS
		Media
		Images
		Purchase
		Logging
		Demo
	}

	HTTP struct {
		Port int32 `validate:"min=1,max=65535"`
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int `validate:"min=0"`
	}
	Database struct {
		Driver   DatabaseDriver `validate:"oneof=sqlite postgres"`
		Path     string         `validate:"required_if=Driver sqlite"`
		DSN      string         `validate:"required_if=Driver postgres"`
		LogLevel string         `validate:"oneof=silent error warn info"`
	}
	Auth struct {
		SecretKey       string
		AccessTokenTTL  time.Duration `validate:"gt=0"`
		RefreshTokenTTL time.Duration `validate:"gtfield=AccessTokenTTL"`
		BcryptCost      int           `validate:"min=4,max=31"`

		// Login rate limiting
		MaxLoginAttempts int `validate:"min=1"`
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration
	}
	CORS struct {
		AllowedOrigins []string
	}
	Media struct {
		Root           string `validate:"required"`
		MaxUploadBytes int64  `validate:"gt=0"`
	}
	Images struct {
		UnsplashAccessKey string
		UnsplashBaseURL   string        `validate:"url"`
		LookupTimeout     time.Duration `validate:"gt=0"`
		MaxRetries        int           `validate:"min=0,max=5"`
	}
	Purchase struct {
		Code string `validate:"required"` // simulated payment code
	}
	Logging struct {
		Level  string `validate:"oneof=debug info warn error"`
		Format string `validate:"oneof=json console"`
	}
	Demo struct {
		Enabled bool   // read-only public demo
		DBPath  string // database generated by cmd/generate_demo
	}
)

func NewConfig() *Config {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 30)

	v.SetDefault("db_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("db_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_secret_key", "")           // Auto-generated if empty
	v.SetDefault("auth_access_token_ttl", "60m")  // access token lifetime
	v.SetDefault("auth_refresh_token_ttl", "24h") // refresh token lifetime
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	v.SetDefault("cors_allowed_origins", "http://localhost:3000")

	v.SetDefault("media_root", DefaultMediaRoot)
	v.SetDefault("media_max_upload_bytes", DefaultMaxUploadBytes)

	v.SetDefault("unsplash_access_key", "")
	v.SetDefault("unsplash_base_url", "https://api.unsplash.com")
	v.SetDefault("image_lookup_timeout", "10s")
	v.SetDefault("image_lookup_max_retries", 2)

	v.SetDefault("purchase_code", DefaultPurchaseCode)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("demo_mode", false)
	v.SetDefault("demo_db_path", "./demo/demo.db")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(strings.ToLower(v.GetString("DB_DRIVER"))),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Auth: Auth{
			SecretKey:        v.GetString("AUTH_SECRET_KEY"),
			AccessTokenTTL:   v.GetDuration("AUTH_ACCESS_TOKEN_TTL"),
			RefreshTokenTTL:  v.GetDuration("AUTH_REFRESH_TOKEN_TTL"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Media: Media{
			Root:           v.GetString("MEDIA_ROOT"),
			MaxUploadBytes: v.GetInt64("MEDIA_MAX_UPLOAD_BYTES"),
		},
		Images: Images{
			UnsplashAccessKey: v.GetString("UNSPLASH_ACCESS_KEY"),
			UnsplashBaseURL:   v.GetString("UNSPLASH_BASE_URL"),
			LookupTimeout:     v.GetDuration("IMAGE_LOOKUP_TIMEOUT"),
			MaxRetries:        v.GetInt("IMAGE_LOOKUP_MAX_RETRIES"),
		},
		Purchase: Purchase{
			Code: v.GetString("PURCHASE_CODE"),
		},
		Logging: Logging{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
			DBPath:  v.GetString("DEMO_DB_PATH"),
		},
	}
}

// Validate checks the loaded configuration and reports every invalid
// setting in a single error.
func (c *Config) Validate() error {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return fmt.Errorf("failed to register default translations: %w", err)
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, e.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
