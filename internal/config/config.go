package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

type AppEnv string

const (
	ProductionEnv AppEnv = "production"
	StageEnv      AppEnv = "stage"
	DevelopEnv    AppEnv = "develop"
	LocalEnv      AppEnv = "local"
	TestEnv       AppEnv = "test"
)

type Driver string

const (
	PostgresDriver Driver = "postgres"
	MySQLDriver    Driver = "mysql"
	MemoryDriver   Driver = "memory"
)

type (
	Config struct {
		AppEnv   AppEnv
		LogLevel logrus.Level
		HTTP     HTTP
		Database Database
		Redis    Redis
		Auth     Auth
		Waiting  Waiting
	}

	HTTP struct {
		Port int
	}

	Database struct {
		Driver   Driver
		Postgres Postgres
		MySQLDSN string
		// Timeout ограничивает каждый отдельный вызов хранилища.
		Timeout time.Duration
	}

	Postgres struct {
		Host     string
		Port     int
		Username string
		Password string
		Database string
	}

	Redis struct {
		Addr     string
		Password string
		Database int
		SlotTTL  time.Duration
	}

	Auth struct {
		AccessSecret []byte
	}

	Waiting struct {
		RejectDuplicates bool
		SweepCron        string
	}
)

// CacheEnabled сообщает, настроен ли Redis для кэша расписаний.
func (r Redis) CacheEnabled() bool {
	return r.Addr != ""
}
