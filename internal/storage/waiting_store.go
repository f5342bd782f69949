package storage

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomescape/internal/models"
	"roomescape/internal/queue"
)

const dateLayout = "2006-01-02"

// WaitingStore реализует queue.Store поверх таблицы waitings.
// Порядок очереди держится на автоинкременте id: база сама сериализует выдачу ключей.
type WaitingStore struct {
	db *gorm.DB
}

func NewWaitingStore(db *gorm.DB) *WaitingStore {
	return &WaitingStore{db: db}
}

// joined выбирает запись вместе со слотом, темой и участником одним запросом.
func (s *WaitingStore) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Joins("Member").
		Joins("Schedule").
		Joins("Schedule.Theme")
}

func (s *WaitingStore) Insert(ctx context.Context, scheduleID, memberID int64) (int64, error) {
	row := models.Waiting{ScheduleID: scheduleID, MemberID: memberID}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
	if err != nil {
		if kind, ok := foreignKeyTarget(err); ok {
			id := scheduleID
			if kind == queue.KindMember {
				id = memberID
			}
			return 0, &queue.NotFoundError{Kind: kind, ID: id}
		}
		return 0, translate(err, "insert", queue.KindWaiting, 0)
	}
	return row.ID, nil
}

func (s *WaitingStore) DeleteByID(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Waiting{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete", queue.KindWaiting, id)
	}
	if res.RowsAffected == 0 {
		return &queue.NotFoundError{Kind: queue.KindWaiting, ID: id}
	}
	return nil
}

func (s *WaitingStore) GetByID(ctx context.Context, id int64) (queue.Entry, error) {
	var row models.Waiting
	if err := s.joined(ctx).Where("waitings.id = ?", id).First(&row).Error; err != nil {
		return queue.Entry{}, translate(err, "get", queue.KindWaiting, id)
	}
	return toEntry(row), nil
}

func (s *WaitingStore) ListByMember(ctx context.Context, memberID int64) ([]queue.Entry, error) {
	var rows []models.Waiting
	err := s.joined(ctx).
		Where("waitings.member_id = ?", memberID).
		Order("waitings.id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list by member", queue.KindMember, memberID)
	}
	return toEntries(rows), nil
}

func (s *WaitingStore) ListBySchedule(ctx context.Context, scheduleID int64) ([]queue.Entry, error) {
	var rows []models.Waiting
	err := s.joined(ctx).
		Where("waitings.schedule_id = ?", scheduleID).
		Order("waitings.id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list by schedule", queue.KindSchedule, scheduleID)
	}
	return toEntries(rows), nil
}

func (s *WaitingStore) HeadOfLine(ctx context.Context, scheduleID int64) (queue.Entry, error) {
	var row models.Waiting
	err := s.joined(ctx).
		Where("waitings.schedule_id = ?", scheduleID).
		Order("waitings.id").
		Limit(1).
		Take(&row).Error
	if err != nil {
		return queue.Entry{}, translate(err, "head of line", queue.KindQueueHead, scheduleID)
	}
	return toEntry(row), nil
}

func (s *WaitingStore) CountAhead(ctx context.Context, scheduleID, id int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Waiting{}).
		Where("schedule_id = ? AND id < ?", scheduleID, id).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "count ahead", queue.KindWaiting, id)
	}
	return n, nil
}

// PurgeBefore удаляет записи на слоты с датой раньше cutoff (2006-01-02).
func (s *WaitingStore) PurgeBefore(ctx context.Context, cutoff string) (int64, error) {
	db := s.db.WithContext(ctx)
	past := db.Model(&models.Schedule{}).Select("id").Where("date < ?", cutoff)

	res := db.Where("schedule_id IN (?)", past).Delete(&models.Waiting{})
	if res.Error != nil {
		return 0, translate(res.Error, "purge", queue.KindWaiting, 0)
	}
	return res.RowsAffected, nil
}

func toEntries(rows []models.Waiting) []queue.Entry {
	entries := make([]queue.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, toEntry(r))
	}
	return entries
}

func toEntry(r models.Waiting) queue.Entry {
	return queue.Entry{
		ID:         r.ID,
		ScheduleID: r.ScheduleID,
		MemberID:   r.MemberID,
		Slot:       toSlot(r.Schedule),
		Member:     toMember(r.Member),
	}
}

func toSlot(s models.Schedule) queue.SlotSummary {
	return queue.SlotSummary{
		ID:        s.ID,
		ThemeName: s.Theme.Name,
		Price:     s.Theme.Price,
		Date:      s.Date.Format(dateLayout),
		Time:      clockTime(s.Time),
	}
}

func toMember(m models.Member) queue.MemberSummary {
	return queue.MemberSummary{
		ID:       m.ID,
		Username: m.Username,
		Name:     m.Name,
	}
}

// clockTime отрезает секунды: "13:00:00" -> "13:00".
func clockTime(raw string) string {
	if i := strings.LastIndex(raw, ":"); i > 2 && strings.Count(raw, ":") == 2 {
		return raw[:i]
	}
	return raw
}
