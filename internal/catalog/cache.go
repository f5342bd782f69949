package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"roomescape/internal/queue"
)

const slotKeyPrefix = "roomescape:slot:"

// CachedSlots кэширует в Redis отображаемые данные слотов (тема, цена, дата, время).
// Кэшируется только то, чем владеет каталог; позиции в очереди сюда не попадают.
// Недоступный Redis не ломает чтение: запрос уходит напрямую в источник.
type CachedSlots struct {
	next   queue.SlotResolver
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedSlots(next queue.SlotResolver, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedSlots {
	return &CachedSlots{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func slotKey(id int64) string {
	return fmt.Sprintf("%s%d", slotKeyPrefix, id)
}

func (c *CachedSlots) ResolveSlot(ctx context.Context, id int64) (queue.SlotSummary, error) {
	key := slotKey(id)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var slot queue.SlotSummary
		if jsonErr := json.Unmarshal([]byte(cached), &slot); jsonErr == nil {
			return slot, nil
		}
		c.logger.WithContext(ctx).WithField("schedule_id", id).Warn("corrupted slot cache entry, reloading")
	case err != redis.Nil:
		c.logger.WithContext(ctx).WithError(err).Warn("slot cache read failed")
	}

	slot, err := c.next.ResolveSlot(ctx, id)
	if err != nil {
		// отсутствие слота не кэшируем: его могут создать в любой момент
		return queue.SlotSummary{}, err
	}

	payload, err := json.Marshal(slot)
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("slot cache write failed")
	}
	return slot, nil
}

// Invalidate убирает слот из кэша, например после изменения темы или цены.
func (c *CachedSlots) Invalidate(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, slotKey(id)).Err()
}
