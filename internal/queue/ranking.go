package queue

import "context"

// PositionOf возвращает 1 + число ещё существующих записей того же слота с меньшим id.
//
// Позиция пересчитывается при каждом вызове. Для снимка уже удалённой записи
// результат равен последней известной позиции, а свежий GetByID по такому id вернёт NotFoundError.
func PositionOf(ctx context.Context, c Counter, e Entry) (int, error) {
	ahead, err := c.CountAhead(ctx, e.ScheduleID, e.ID)
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
