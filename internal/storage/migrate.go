package storage

import (
	stderrors "errors"

	"github.com/golang-migrate/migrate/v4"
	migratePsql "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"roomescape/internal/models"
)

const DefaultMigrationsDir = "file://migrations/postgres"

// Migrator применяет SQL-миграции (только postgres) или AutoMigrate gorm.
type Migrator struct {
	db     *gorm.DB
	source string
}

func NewMigrator(db *gorm.DB, source string) *Migrator {
	if source == "" {
		source = DefaultMigrationsDir
	}
	return &Migrator{db: db, source: source}
}

func (m *Migrator) Up(dbName string) error {
	mg, err := m.prepare(dbName)
	if err != nil {
		return err
	}
	if err := mg.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate up")
	}
	return nil
}

func (m *Migrator) Down(dbName string) error {
	mg, err := m.prepare(dbName)
	if err != nil {
		return err
	}
	if err := mg.Down(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrate down")
	}
	return nil
}

// Auto создаёт таблицы по моделям; работает для любого драйвера gorm.
func (m *Migrator) Auto() error {
	if err := m.db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

func (m *Migrator) prepare(dbName string) (*migrate.Migrate, error) {
	conn, err := m.db.DB()
	if err != nil {
		return nil, err
	}

	driver, err := migratePsql.WithInstance(conn, &migratePsql.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	mg, err := migrate.NewWithDatabaseInstance(m.source, dbName, driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrations instance")
	}
	return mg, nil
}
