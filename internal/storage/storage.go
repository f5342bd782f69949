package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"roomescape/internal/config"
)

// Open подключается к базе данных выбранного драйвера.
func Open(ctx context.Context, cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.PostgresDriver:
		dialector = postgres.Open(PostgresDSN(cfg.Postgres))
	case config.MySQLDriver:
		// для колонок DATE нужен parseTime=true в MYSQL_DSN
		dialector = mysql.Open(cfg.MySQLDSN)
	default:
		return nil, errors.Errorf("storage: driver %q has no sql database", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "storage: failed to open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "storage: failed to get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "storage: failed to ping database")
	}

	return db, nil
}

func PostgresDSN(cfg config.Postgres) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)
}

// OpenTesting подключается к тестовой базе из TEST_DB_*.
// Возвращает nil, nil, если TEST_DB_HOST не задан.
func OpenTesting(ctx context.Context) (*gorm.DB, error) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return nil, nil
	}

	cfg := config.Database{
		Driver: config.PostgresDriver,
		Postgres: config.Postgres{
			Host:     host,
			Username: os.Getenv("TEST_DB_USER"),
			Password: os.Getenv("TEST_DB_PASSWORD"),
			Database: os.Getenv("TEST_DB_NAME"),
			Port:     5432,
		},
	}
	if port := os.Getenv("TEST_DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, errors.Wrap(err, "storage: invalid TEST_DB_PORT")
		}
		cfg.Postgres.Port = p
	}
	return Open(ctx, cfg)
}

func NewRedisClient(ctx context.Context, cfg config.Redis, log *logrus.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "storage: redis %s is unreachable", cfg.Addr)
	}
	log.Infof("redis is running on %s on db %d", cfg.Addr, cfg.Database)

	return rdb, nil
}
