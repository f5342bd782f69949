package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Load читает .env (если ENV_CHEK не задан) и собирает конфигурацию из окружения.
func Load() (*Config, error) {
	if os.Getenv("ENV_CHEK") == "" {
		// .env не обязателен: в контейнере переменные приходят из окружения
		_ = godotenv.Load()
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv: AppEnv(GetEnv("APP_ENV", string(LocalEnv))),
		Database: Database{
			Driver: Driver(GetEnv("DB_DRIVER", string(PostgresDriver))),
			Postgres: Postgres{
				Host:     GetEnv("DB_HOST", "localhost"),
				Username: GetEnv("DB_USER", "postgres"),
				Password: os.Getenv("DB_PASSWORD"),
				Database: GetEnv("DB_NAME", "roomescape"),
			},
			MySQLDSN: os.Getenv("MYSQL_DSN"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Auth: Auth{
			AccessSecret: []byte(os.Getenv("JWT_ACCESS_SECRET")),
		},
		Waiting: Waiting{
			SweepCron: os.Getenv("WAITING_SWEEP_CRON"),
		},
	}

	var err error
	if cfg.LogLevel, err = logrus.ParseLevel(GetEnv("LOG_LEVEL", "info")); err != nil {
		return nil, errors.Wrap(err, "config: LOG_LEVEL")
	}
	if cfg.HTTP.Port, err = intEnv("HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.Database.Postgres.Port, err = intEnv("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.Database.Timeout, err = durationEnv("DB_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.Redis.Database, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.SlotTTL, err = durationEnv("SLOT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Waiting.RejectDuplicates, err = boolEnv("WAITING_REJECT_DUPLICATES", false); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case PostgresDriver, MemoryDriver:
	case MySQLDriver:
		if cfg.Database.MySQLDSN == "" {
			return nil, errors.New("config: MYSQL_DSN is required for DB_DRIVER=mysql")
		}
	default:
		return nil, errors.Errorf("config: unknown DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func GetEnv(key string, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func intEnv(key string, defaultVal int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "config: invalid %s", key)
	}
	return v, nil
}

func durationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "config: invalid %s", key)
	}
	return v, nil
}

func boolEnv(key string, defaultVal bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Wrapf(err, "config: invalid %s", key)
	}
	return v, nil
}
