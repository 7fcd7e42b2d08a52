package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DB struct {
	Driver string
	DSN    string
	Debug  bool
}

type HTTP struct {
	Addr            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// AuthRateLimit is requests per minute per IP on /auth routes; 0 disables.
	AuthRateLimit int
}

// DevJWTSecret signs tokens when no secret is configured. Tokens signed with
// it are forgeable; initialize warns when it is in use.
const DevJWTSecret = "dev-secret"

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
	Header string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Payment struct {
	SecretKey   string
	AmountCents int64
	Currency    string
	Description string
	// breaker trips after this many consecutive processor failures
	FailureThreshold uint32
	OpenTimeout      time.Duration
	LockTTL          time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Feed struct {
	DefaultLimit int
	MaxLimit     int
}

type Config struct {
	HTTP    HTTP
	DB      DB
	JWT     JWT
	Redis   Redis
	Payment Payment
	Log     Log
	Feed    Feed
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("http.cors_origins", []string{})
	v.SetDefault("http.auth_rate_limit", 20)
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.debug", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "feedgate")
	v.SetDefault("jwt.exp_min", 60)
	v.SetDefault("jwt.header", "authToken")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("payment.amount_cents", 500)
	v.SetDefault("payment.currency", "usd")
	v.SetDefault("payment.description", "Feed Content Payment")
	v.SetDefault("payment.failure_threshold", 5)
	v.SetDefault("payment.open_timeout", "30s")
	v.SetDefault("payment.lock_ttl", "2m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("feed.default_limit", 5)
	v.SetDefault("feed.max_limit", 100)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names used by existing deployments
	_ = v.BindEnv("db.dsn", "DB_CONNECTION")
	_ = v.BindEnv("payment.secret_key", "STRIPE_SECRET_KEY")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET", "TOKEN_SECRET")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")
	return v
}

// Load reads the optional YAML file at path and overlays the environment.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTP{
			Addr:            v.GetString("http.addr"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			CORSOrigins:     v.GetStringSlice("http.cors_origins"),
			AuthRateLimit:   v.GetInt("http.auth_rate_limit"),
		},
		DB: DB{Driver: v.GetString("db.driver"), DSN: v.GetString("db.dsn"), Debug: v.GetBool("db.debug")},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
			ExpMin: v.GetInt("jwt.exp_min"),
			Header: v.GetString("jwt.header"),
		},
		Redis: Redis{Addr: v.GetString("redis.addr"), Password: v.GetString("redis.password"), DB: v.GetInt("redis.db")},
		Payment: Payment{
			SecretKey:        v.GetString("payment.secret_key"),
			AmountCents:      v.GetInt64("payment.amount_cents"),
			Currency:         v.GetString("payment.currency"),
			Description:      v.GetString("payment.description"),
			FailureThreshold: v.GetUint32("payment.failure_threshold"),
			OpenTimeout:      v.GetDuration("payment.open_timeout"),
			LockTTL:          v.GetDuration("payment.lock_ttl"),
		},
		Log:  Log{Level: v.GetString("log.level"), Format: v.GetString("log.format")},
		Feed: Feed{DefaultLimit: v.GetInt("feed.default_limit"), MaxLimit: v.GetInt("feed.max_limit")},
	}

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("db.dsn (DB_CONNECTION) is required")
	}
	switch cfg.DB.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported db.driver %q", cfg.DB.Driver)
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = DevJWTSecret
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	if cfg.JWT.Header == "" {
		cfg.JWT.Header = "authToken"
	}
	if cfg.Feed.DefaultLimit <= 0 {
		cfg.Feed.DefaultLimit = 5
	}
	if cfg.Feed.MaxLimit < cfg.Feed.DefaultLimit {
		cfg.Feed.MaxLimit = cfg.Feed.DefaultLimit
	}
	return cfg, nil
}

// Watch re-reads the config file whenever it changes on disk and hands the
// new values to onChange. Invalid intermediate states are skipped.
func Watch(path string, onChange func(*Config, fsnotify.Event)) error {
	if path == "" {
		return nil
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := fromViper(v)
		if err != nil {
			return
		}
		onChange(cfg, e)
	})
	v.WatchConfig()
	return nil
}
