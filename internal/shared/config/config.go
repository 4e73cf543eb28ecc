package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Log      LogConfig
	Outbox   OutboxConfig
}

type AppConfig struct {
	Env  string
	Port string
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker  string
	GroupID string
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	CookieName string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// legacyEnv maps config keys to the unprefixed variables used by existing .env
// files. The GEMTRACK_* form always wins when both are present.
var legacyEnv = map[string]string{
	"app.env":           "APP_ENV",
	"app.port":          "PORT",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.sslmode":  "DB_SSLMODE",
	"redis.addr":        "REDIS_ADDR",
	"kafka.broker":      "KAFKA_BROKER",
	"auth.jwt_secret":   "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")

	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gemtrack")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.group_id", "go-gemtrack-activity")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.session_ttl", 7*24*time.Hour)
	v.SetDefault("auth.cookie_name", "session-token")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("outbox.poll_interval", 3*time.Second)
	v.SetDefault("outbox.batch_size", 50)
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(viper.New())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("GEMTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, "GEMTRACK_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Server: ServerConfig{
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Database: DatabaseConfig{
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Name:       v.GetString("database.name"),
			SSLMode:    v.GetString("database.sslmode"),
			MaxRetries: v.GetInt("database.max_retries"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("redis.addr"),
		},
		Kafka: KafkaConfig{
			Broker:  v.GetString("kafka.broker"),
			GroupID: v.GetString("kafka.group_id"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			SessionTTL: v.GetDuration("auth.session_ttl"),
			CookieName: v.GetString("auth.cookie_name"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Outbox: OutboxConfig{
			PollInterval: v.GetDuration("outbox.poll_interval"),
			BatchSize:    v.GetInt("outbox.batch_size"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" && !strings.EqualFold(c.App.Env, "development") && !strings.EqualFold(c.App.Env, "test") {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if c.Database.MaxRetries < 1 {
		c.Database.MaxRetries = 1
	}
	return nil
}

// SessionSecret falls back to a fixed development key when none is set.
func (a AuthConfig) SessionSecret() []byte {
	if a.JWTSecret == "" {
		return []byte("supersecretkey")
	}
	return []byte(a.JWTSecret)
}
