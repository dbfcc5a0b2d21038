package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App            AppConfig
	DB             DBConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Password       PasswordConfig
	AdminRateLimit AdminRateLimitConfig
	FeatureFlags   FeatureFlagsConfig
	WhatsApp       WhatsAppConfig
	Promo          PromoConfig
	Chat           ChatConfig
	Cart           CartConfig
	Cron           CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUNAKIDS_APP_ENV" required:"true"`
	Port         string `envconfig:"LUNAKIDS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUNAKIDS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUNAKIDS_LOG_WARN_STACK" default:"false"`
	// AdminBootstrapPassword seeds the admin credential on first boot. A hash
	// already stored in settings always wins over this value.
	AdminBootstrapPassword string `envconfig:"LUNAKIDS_ADMIN_BOOTSTRAP_PASSWORD"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUNAKIDS_DB_DSN"`
	Driver string `envconfig:"LUNAKIDS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUNAKIDS_DB_HOST"`
	LegacyPort     int    `envconfig:"LUNAKIDS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUNAKIDS_DB_USER"`
	LegacyPassword string `envconfig:"LUNAKIDS_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUNAKIDS_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUNAKIDS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUNAKIDS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUNAKIDS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUNAKIDS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUNAKIDS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUNAKIDS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUNAKIDS_REDIS_ADDR"`
	Password     string        `envconfig:"LUNAKIDS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUNAKIDS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUNAKIDS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUNAKIDS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUNAKIDS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUNAKIDS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUNAKIDS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUNAKIDS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUNAKIDS_JWT_ISSUER" default:"lunakids"`
	ExpirationMinutes int    `envconfig:"LUNAKIDS_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUNAKIDS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUNAKIDS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUNAKIDS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUNAKIDS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUNAKIDS_ARGON_KEY_LEN" default:"32"`
}

type AdminRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"LUNAKIDS_ADMIN_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"LUNAKIDS_ADMIN_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUNAKIDS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUNAKIDS_AUTO_MIGRATE" default:"false"`
}

type WhatsAppConfig struct {
	// Number is the fallback order line when no settings row overrides it.
	Number string `envconfig:"LUNAKIDS_WHATSAPP_NUMBER"`
}

type PromoConfig struct {
	GrantTTL           time.Duration `envconfig:"LUNAKIDS_PROMO_GRANT_TTL" default:"24h"`
	SpinCooldown       time.Duration `envconfig:"LUNAKIDS_PROMO_SPIN_COOLDOWN" default:"24h"`
	ExitIntentPercent  int           `envconfig:"LUNAKIDS_PROMO_EXIT_INTENT_PERCENT" default:"10"`
	MaxDiscountPercent int           `envconfig:"LUNAKIDS_PROMO_MAX_DISCOUNT_PERCENT" default:"30"`
}

type ChatConfig struct {
	APIKey  string        `envconfig:"LUNAKIDS_CHAT_API_KEY"`
	BaseURL string        `envconfig:"LUNAKIDS_CHAT_BASE_URL" default:"https://api.openai.com/v1"`
	Model   string        `envconfig:"LUNAKIDS_CHAT_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"LUNAKIDS_CHAT_TIMEOUT" default:"30s"`
}

type CartConfig struct {
	// MutationLeaseTTL bounds how long a stock-dependent mutation may hold the
	// per-session busy lease before it is considered abandoned.
	MutationLeaseTTL time.Duration `envconfig:"LUNAKIDS_CART_MUTATION_LEASE_TTL" default:"10s"`
	// StaleAfter controls when the cleanup job may drop an untouched cart.
	StaleAfter time.Duration `envconfig:"LUNAKIDS_CART_STALE_AFTER" default:"720h"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"LUNAKIDS_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"LUNAKIDS_CRON_LOCK_TTL" default:"25h"`
	// PendingCancelAfter is how long a pending order may sit before the worker
	// assumes the WhatsApp conversation went nowhere and cancels it.
	PendingCancelAfter time.Duration `envconfig:"LUNAKIDS_CRON_PENDING_CANCEL_AFTER" default:"336h"`
	// CancelledRetention is how long cancelled orders are kept before deletion.
	CancelledRetention time.Duration `envconfig:"LUNAKIDS_CRON_CANCELLED_RETENTION" default:"2160h"`
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
