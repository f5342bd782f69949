package command

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"roomescape/internal/config"
	"roomescape/internal/queue"
	"roomescape/internal/storage"
	"roomescape/internal/storage/memory"
	"roomescape/internal/tasks"
)

// backend собирает хранилище очереди и справочники слотов и участников под выбранный драйвер.
type backend struct {
	store   queue.Store
	purger  tasks.Purger
	members queue.MemberResolver
	slots   queue.SlotResolver
	db      *gorm.DB
}

func (b backend) Close() error {
	if b.db == nil {
		return nil
	}
	conn, err := b.db.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func openBackend(ctx context.Context, cfg config.Database) (backend, error) {
	if cfg.Driver == config.MemoryDriver {
		dir := memory.NewDirectory()
		store := memory.NewStore(dir)
		return backend{store: store, purger: store, members: dir, slots: dir}, nil
	}

	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return backend{}, errors.Wrapf(err, "failed to connect to %s", cfg.Driver)
	}
	store := storage.NewWaitingStore(db)
	dir := storage.NewDirectory(db)
	return backend{store: store, purger: store, members: dir, slots: dir, db: db}, nil
}
