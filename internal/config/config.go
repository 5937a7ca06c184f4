package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Env          string `yaml:"env" env:"APP_ENV" env-default:"development"`
	HTTPPort     string `yaml:"http-port" env:"PORT" env-default:"5175"`
	ClientOrigin string `yaml:"client-origin" env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
	DBPath       string `yaml:"db-path" env:"DB_PATH" env-default:"./data/app.db"`

	// memory | redis
	StoreBackend string `yaml:"store-backend" env:"STORE_BACKEND" env-default:"memory"`
	// sqlite | redis
	StatsBackend string        `yaml:"stats-backend" env:"STATS_BACKEND" env-default:"sqlite"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`

	Redis Redis `yaml:"redis"`
	Auth  Auth  `yaml:"auth"`
	Words Words `yaml:"words"`

	DailySalt string `yaml:"daily-salt" env:"DAILY_SALT" env-default:"local_dev_salt"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Auth struct {
	JWTSecret   string `yaml:"jwt-secret" env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	ExpiresDays int    `yaml:"expires-days" env:"JWT_EXPIRES_DAYS" env-default:"14"`
	CookieName  string `yaml:"cookie-name" env:"COOKIE_NAME" env-default:"wordle_token"`
}

type Words struct {
	AnswersFile string `yaml:"answers-file" env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `yaml:"allowed-file" env:"WORDS_ALLOWED_FILE"`
}

// Load reads path (YAML) when given, otherwise the environment only.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics, for main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (that *Config) validate() error {
	switch that.StoreBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: unknown store backend %q", that.StoreBackend)
	}
	switch that.StatsBackend {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("config: unknown stats backend %q", that.StatsBackend)
	}
	return nil
}

// Production reports whether cookies should be Secure/SameSite=None.
func (that *Config) Production() bool {
	return that.Env == "production"
}

// UsesRedis reports whether any backend needs a Redis connection.
func (that *Config) UsesRedis() bool {
	return that.StoreBackend == "redis" || that.StatsBackend == "redis"
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
