package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, TTLs, loyalty policy)
// -----------------------------------------------------------------------------

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Stripe      StripeConfig
	Loyalty     LoyaltyConfig
	Idempotency IdempotencyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Paris"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Idempotent-Replayed"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Paris"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

// Tokens are issued by the booking front-end; this service only verifies them.
type JWTConfig struct {
	Secret        string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer        string        `envconfig:"JWT_ISSUER" default:"salon-app"`
	TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"8h"`
}

type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	SettingsTTL time.Duration `envconfig:"REDIS_SETTINGS_TTL" default:"10m"`
}

type StripeConfig struct {
	SecretKey  string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	SuccessURL string `envconfig:"STRIPE_SUCCESS_URL" default:"http://localhost:3000/admin/reservations?payment=success"`
	CancelURL  string `envconfig:"STRIPE_CANCEL_URL" default:"http://localhost:3000/admin/reservations?payment=cancel"`
	Currency   string `envconfig:"STRIPE_CURRENCY" default:"eur"`
}

const (
	BirthdayWindowCalendarYear    = "calendar_year"
	BirthdayWindowRolling12Months = "rolling_12_months"
)

type LoyaltyConfig struct {
	// calendar_year | rolling_12_months
	BirthdayWindow string `envconfig:"LOYALTY_BIRTHDAY_WINDOW" default:"calendar_year"`
	TimeZone       string `envconfig:"LOYALTY_TIMEZONE" default:"Europe/Paris"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location falls back to UTC when the zone database lacks the configured name.
func (c LoyaltyConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c LoyaltyConfig) Validate() error {
	switch c.BirthdayWindow {
	case BirthdayWindowCalendarYear, BirthdayWindowRolling12Months:
		return nil
	default:
		return fmt.Errorf("unsupported LOYALTY_BIRTHDAY_WINDOW %q", c.BirthdayWindow)
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Loyalty.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Paris",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Paris",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret:        "test-secret-key-for-salon-backoffice",
			Issuer:        "salon-app",
			TokenDuration: time.Hour,
		},
		Redis: RedisConfig{
			Addr:        "localhost:16379",
			SettingsTTL: time.Minute,
		},
		Stripe: StripeConfig{
			SecretKey:  "sk_test_dummy",
			SuccessURL: "http://localhost:3000/success",
			CancelURL:  "http://localhost:3000/cancel",
			Currency:   "eur",
		},
		Loyalty: LoyaltyConfig{
			BirthdayWindow: BirthdayWindowCalendarYear,
			TimeZone:       "Europe/Paris",
		},
		Idempotency: IdempotencyConfig{
			TTL: 24 * time.Hour,
		},
	}
}
