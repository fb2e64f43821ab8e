package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Stripe    StripeConfig
	Resend    ResendConfig
	Commerce  CommerceConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Flags     FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Commerce.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ADORZIA_APP_ENV" required:"true"`
	Port         string `envconfig:"ADORZIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ADORZIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ADORZIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ADORZIA_DB_DSN"`
	Driver string `envconfig:"ADORZIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ADORZIA_DB_HOST"`
	LegacyPort     int    `envconfig:"ADORZIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ADORZIA_DB_USER"`
	LegacyPassword string `envconfig:"ADORZIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"ADORZIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"ADORZIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ADORZIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ADORZIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ADORZIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ADORZIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ADORZIA_REDIS_URL"`
	Address      string        `envconfig:"ADORZIA_REDIS_ADDRESS"`
	Password     string        `envconfig:"ADORZIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ADORZIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ADORZIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ADORZIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ADORZIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ADORZIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ADORZIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ADORZIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ADORZIA_JWT_ISSUER" default:"adorzia"`
	ExpirationMinutes int    `envconfig:"ADORZIA_JWT_EXPIRATION_MINUTES" default:"43200"`
}

type StripeConfig struct {
	APIKey string `envconfig:"ADORZIA_STRIPE_API_KEY"`
	Env    string `envconfig:"ADORZIA_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type ResendConfig struct {
	APIKey      string `envconfig:"ADORZIA_RESEND_API_KEY"`
	DefaultFrom string `envconfig:"ADORZIA_RESEND_FROM_EMAIL" default:"orders@adorzia.com"`
}

// CommerceConfig carries the marketplace pricing knobs. Monetary values are
// integer cents.
type CommerceConfig struct {
	MarkupMultiplier           float64 `envconfig:"ADORZIA_MARKUP_MULTIPLIER" default:"2.3"`
	CommissionRate             float64 `envconfig:"ADORZIA_COMMISSION_RATE" default:"0.10"`
	FreeShippingThresholdCents int     `envconfig:"ADORZIA_FREE_SHIPPING_THRESHOLD_CENTS" default:"20000"`
	StandardShippingCents      int     `envconfig:"ADORZIA_STANDARD_SHIPPING_CENTS" default:"1000"`
	ExpressShippingCents       int     `envconfig:"ADORZIA_EXPRESS_SHIPPING_CENTS" default:"2500"`
	OrderNumberPrefix          string  `envconfig:"ADORZIA_ORDER_NUMBER_PREFIX" default:"ADZ"`
}

func (c CommerceConfig) validate() error {
	if c.MarkupMultiplier <= 1 {
		return fmt.Errorf("markup multiplier must be greater than 1, got %v", c.MarkupMultiplier)
	}
	if c.CommissionRate < 0 || c.CommissionRate > 1 {
		return fmt.Errorf("commission rate must be within [0,1], got %v", c.CommissionRate)
	}
	if c.FreeShippingThresholdCents < 0 || c.StandardShippingCents < 0 || c.ExpressShippingCents < 0 {
		return fmt.Errorf("shipping amounts must be non-negative")
	}
	if strings.TrimSpace(c.OrderNumberPrefix) == "" {
		return fmt.Errorf("order number prefix is required")
	}
	return nil
}

type RateLimitConfig struct {
	CheckoutWindow       time.Duration `envconfig:"ADORZIA_RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	CheckoutIPLimit      int           `envconfig:"ADORZIA_RATE_LIMIT_CHECKOUT_IP_LIMIT" default:"30"`
	CheckoutShopperLimit int           `envconfig:"ADORZIA_RATE_LIMIT_CHECKOUT_SHOPPER_LIMIT" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ADORZIA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,https://adorzia.com,https://www.adorzia.com"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ADORZIA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
